package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type switchPayload struct {
	Slug string `validate:"required,slug"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		err := ValidateStruct(loginPayload{
			Email:    "alice@acme.test",
			Password: "hunter22hunter22",
		})
		assert.NoError(t, err)
	})

	t.Run("missing fields are reported per field", func(t *testing.T) {
		err := ValidateStruct(loginPayload{})

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		fields := GetValidationFields(err)
		assert.Contains(t, fields["Email"], "required")
		assert.Contains(t, fields["Password"], "required")
	})

	t.Run("bad email and short password", func(t *testing.T) {
		err := ValidateStruct(loginPayload{
			Email:    "not-an-email",
			Password: "short",
		})

		require.Error(t, err)
		fields := GetValidationFields(err)
		assert.Contains(t, fields["Email"], "valid email")
		assert.Contains(t, fields["Password"], "at least 8")
	})
}

func TestSlugValidation(t *testing.T) {
	tests := []struct {
		name  string
		slug  string
		valid bool
	}{
		{"simple slug", "acme", true},
		{"slug with hyphens", "acme-corp-eu", true},
		{"slug with digits", "team42", true},
		{"uppercase rejected", "Acme", false},
		{"leading hyphen rejected", "-acme", false},
		{"trailing hyphen rejected", "acme-", false},
		{"double hyphen rejected", "acme--corp", false},
		{"spaces rejected", "acme corp", false},
		{"underscore rejected", "acme_corp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(switchPayload{Slug: tt.slug})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(&ValidationError{Message: "bad"}))
	assert.False(t, IsValidationError(errors.New("plain")))
	assert.Nil(t, GetValidationFields(errors.New("plain")))
}
