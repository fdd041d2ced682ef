package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeLimitExceeded, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := AlreadyExists(MsgUserExists)
	assert.True(t, Is(err, ErrAlreadyExists))
	assert.False(t, Is(err, ErrNotFound))
	assert.Equal(t, "User already exists", err.Error())
}

func TestError_WithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Internal(MsgServerError).WithCause(cause)

	assert.True(t, Is(err, cause))
	assert.True(t, Is(err, ErrInternal))
	assert.Equal(t, "Server error: disk full", err.Error())
}

func TestError_WithDetailsDoesNotMutate(t *testing.T) {
	base := Validation("bad input")
	withDetails := base.WithDetails(map[string]string{"email": "required"})

	assert.Nil(t, base.Details)
	require.NotNil(t, withDetails.Details)
	assert.Equal(t, CodeValidation, withDetails.Code)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "palette p-1 not found", NotFoundf("palette %s not found", "p-1").Message)
	assert.Equal(t, "100% literal", Validation("100% literal").Message)

	var domainErr *Error
	wrapped := Wrapf(stderrors.New("boom"), CodeInternal, "save %d", 3)
	require.True(t, As(wrapped, &domainErr))
	assert.Equal(t, "save 3", domainErr.Message)
}

func TestConstructors_KeepMessageVerbatim(t *testing.T) {
	const msg = "50% of %s used"

	tests := []struct {
		name string
		err  *Error
		code Code
	}{
		{"not found", NotFound(msg), CodeNotFound},
		{"already exists", AlreadyExists(msg), CodeAlreadyExists},
		{"unauthorized", Unauthorized(msg), CodeUnauthorized},
		{"forbidden", Forbidden(msg), CodeForbidden},
		{"validation", Validation(msg), CodeValidation},
		{"invalid credentials", InvalidCredentials(msg), CodeInvalidCredentials},
		{"token expired", TokenExpired(msg), CodeTokenExpired},
		{"limit exceeded", LimitExceeded(msg), CodeLimitExceeded},
		{"internal", Internal(msg), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, msg, tt.err.Message)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}
