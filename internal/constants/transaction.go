package constants

const (
	// Date Layout
	DateFormat = "2006-01-02"

	// OFX dates start with YYYYMMDD; time and zone suffixes are ignored.
	OFXDateFormat = "20060102"

	DefaultDateWindowDays = 3
)
