package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccountName(t *testing.T) {
	assert.NoError(t, ValidateAccountName("Checking"))
	assert.Error(t, ValidateAccountName("  "))
	assert.Error(t, ValidateAccountName("Expenses"))
	assert.Error(t, ValidateAccountName(strings.Repeat("x", 101)))
	assert.Error(t, ValidateAccountName(42))
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency("usd"))
	assert.NoError(t, ValidateCurrency(""))
	assert.Error(t, ValidateCurrency("US"))
	assert.Error(t, ValidateCurrency("U5D"))
}

func TestValidateCheckNumber(t *testing.T) {
	assert.NoError(t, ValidateCheckNumber("1001"))
	assert.NoError(t, ValidateCheckNumber("A-12"))
	assert.Error(t, ValidateCheckNumber("10 01"))
	assert.Error(t, ValidateCheckNumber(strings.Repeat("9", 33)))
}
