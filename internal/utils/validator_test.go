// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type slugHolder struct {
	Slug string `validate:"required,profile_slug"`
}

func TestProfileSlugValidation(t *testing.T) {
	valid := []string{"luna-crew", "abc", "crew-99", "a1b-2c3-d4e"}
	for _, slug := range valid {
		assert.NoError(t, ValidateStruct(slugHolder{Slug: slug}), slug)
	}

	invalid := []string{"", "ab", "-luna", "luna-", "Luna-Crew", "luna crew", "luna--crew", "luna_crew"}
	for _, slug := range invalid {
		assert.Error(t, ValidateStruct(slugHolder{Slug: slug}), slug)
	}
}

type passwordHolder struct {
	Password string `validate:"strong_password"`
}

func TestStrongPasswordValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(passwordHolder{Password: "Testpass123!"}))

	for _, pw := range []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoNumbers!", "NoSpecial123"} {
		assert.Error(t, ValidateStruct(passwordHolder{Password: pw}), pw)
	}
}

type usernameHolder struct {
	Username string `validate:"username"`
}

func TestUsernameValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(usernameHolder{Username: "luna_99"}))
	assert.Error(t, ValidateStruct(usernameHolder{Username: "ab"}))
	assert.Error(t, ValidateStruct(usernameHolder{Username: "has space"}))
}
