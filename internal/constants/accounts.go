package constants

const (
	MaxNameLen = 100
	// AmountScale is the number of decimal places kept by the store.
	AmountScale = 2
)

const (
	MaxDescriptionLen = 255
	ReversalRefPrefix = "REV-"
)

var ReservedNames = map[string]bool{
	"assets":      true,
	"liabilities": true,
	"equity":      true,
	"income":      true,
	"expenses":    true,
}

// SystemAccountOpeningBalance is the equity account created on first run to
// carry opening balances.
const SystemAccountOpeningBalance = "Opening Balances"
