package validation_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/chromafy/chromafy-server/internal/errors"
	"github.com/chromafy/chromafy-server/internal/validation"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
	Name     string `json:"name" validate:"required"`
}

type saveRequest struct {
	Name   string   `json:"name,omitempty" validate:"max=80"`
	Mode   string   `json:"mode" validate:"omitempty,palettemode"`
	Colors []string `json:"colors" validate:"required,min=1,max=64,dive,hexcolor6"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(signupRequest{Email: "ada@example.com", Password: "secret", Name: "Ada"}))
	assert.NoError(t, v.Validate(saveRequest{Mode: "triadic", Colors: []string{"#7C3AED", "ffffff"}}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       any
		wantField string
	}{
		{"missing name", signupRequest{Email: "ada@example.com", Password: "secret"}, "name"},
		{"invalid email", signupRequest{Email: "nope", Password: "secret", Name: "Ada"}, "email"},
		{"short password", signupRequest{Email: "ada@example.com", Password: "abc", Name: "Ada"}, "password"},
		{"long password", signupRequest{Email: "ada@example.com", Password: strings.Repeat("x", 1025), Name: "Ada"}, "password"},
		{"bad colour", saveRequest{Colors: []string{"#000000", "#abc"}}, "colors[1]"},
		{"no colours", saveRequest{}, "colors"},
		{"unknown mode", saveRequest{Mode: "Pastel", Colors: []string{"#000000"}}, "mode"},
		{"long name", saveRequest{Name: strings.Repeat("n", 81), Colors: []string{"#000000"}}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
			assert.Contains(t, domainErr.Message, tt.wantField)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(signupRequest{Password: "secret", Name: "Ada"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "email")
	assert.NotContains(t, err.Error(), "Email")
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("base", "#7c3aed", validation.TagHexColor))

	err := v.Var("base", "purple", validation.TagHexColor)
	require.Error(t, err)
	assert.Equal(t, "base must be a 6-digit hex colour", err.Error())
}
