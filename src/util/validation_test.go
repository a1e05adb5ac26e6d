package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane.doe+bank@example.com"))
	assert.False(t, ValidateEmail("jane.doe@example"))
	assert.False(t, ValidateEmail("not an email"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Adrian"))
	assert.False(t, ValidateName("   "))
	assert.False(t, ValidateName(string(make([]byte, 51))))
}

func TestValidatePassword(t *testing.T) {
	tests := map[string]bool{
		"Str0ng!pass": true,
		"short1!A":    true,
		"Sh0rt!":      false,
		"alllower1!":  false,
		"ALLUPPER1!":  false,
		"NoDigits!!":  false,
		"NoSpecial12": false,
	}
	for password, want := range tests {
		assert.Equal(t, want, ValidatePassword(password), password)
	}
}
