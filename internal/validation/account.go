package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hance08/kea-ledger/internal/constants"
)

// ValidateAccountName validates a basic account name (without checking existence).
// Accepts any for survey compatibility.
func ValidateAccountName(val any) error {
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("account name must be a string")
	}

	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("account name can't be empty")
	}

	if constants.ReservedNames[strings.ToLower(name)] {
		return fmt.Errorf("'%s' is a reserved root account name", name)
	}

	if utf8.RuneCountInString(name) > constants.MaxNameLen {
		return fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateCurrency validates a currency code format
// Accepts both string and any (for survey compatibility)
func ValidateCurrency(val any) error {
	currency, ok := val.(string)
	if !ok {
		return fmt.Errorf("currency code must be a string")
	}

	currency = strings.TrimSpace(strings.ToUpper(currency))

	if currency == "" {
		return nil // Empty is allowed (will use default)
	}

	if len(currency) != 3 {
		return fmt.Errorf("currency code must be 3 characters (e.g. USD)")
	}

	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must contain only letters")
		}
	}

	return nil
}

// ValidateCheckNumber accepts empty or short alphanumeric check numbers.
func ValidateCheckNumber(val any) error {
	num, ok := val.(string)
	if !ok {
		return fmt.Errorf("check number must be a string")
	}
	num = strings.TrimSpace(num)
	if len(num) > 32 {
		return fmt.Errorf("check number too long (max 32 characters)")
	}
	for _, c := range num {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '-') {
			return fmt.Errorf("check number may only contain letters, digits and '-'")
		}
	}
	return nil
}
