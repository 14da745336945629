package importer

import (
	"iter"
	"strings"
)

// Token is one flat tag from an OFX/QFX document. Value holds the text that
// follows an opening tag up to the next tag or line break; SGML-style
// documents leave leaf tags unclosed, so Value is the only place data lives.
type Token struct {
	Tag     string
	Value   string
	Closing bool
}

// Tokens lazily scans doc tag by tag. It never requires closing tags and
// never builds a tree, so unclosed or interleaved markup is tolerated.
// Text outside tags (the OFX header block) is ignored.
func Tokens(doc string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		rest := doc
		for {
			open := strings.IndexByte(rest, '<')
			if open < 0 {
				return
			}
			rest = rest[open+1:]

			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return
			}
			name := strings.TrimSpace(rest[:end])
			rest = rest[end+1:]

			tok := Token{}
			if strings.HasPrefix(name, "/") {
				tok.Closing = true
				name = strings.TrimSpace(name[1:])
			}
			if name == "" || strings.HasPrefix(name, "?") || strings.HasPrefix(name, "!") {
				continue
			}
			tok.Tag = strings.ToUpper(name)

			if !tok.Closing {
				text := rest
				if next := strings.IndexByte(text, '<'); next >= 0 {
					text = text[:next]
				}
				if nl := strings.IndexAny(text, "\r\n"); nl >= 0 {
					text = text[:nl]
				}
				tok.Value = strings.TrimSpace(text)
			}

			if !yield(tok) {
				return
			}
		}
	}
}
