package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("snippet", 42)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "snippet not found with id 42", err.Error())
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed("name", "name is required")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "name", err.Field)
	assert.Equal(t, "name is required", err.Error())
}

func TestConflict(t *testing.T) {
	err := Conflict("user", `username "admin" already exists`)

	assert.True(t, errors.Is(err, ErrConflict))
}

func TestUnauthorized(t *testing.T) {
	err := Unauthorized("anonymous users cannot add snippets")

	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestMissingCredential(t *testing.T) {
	err := MissingCredential("RAPIDAPI_KEY")

	assert.True(t, errors.Is(err, ErrMissingCredential))
	assert.Contains(t, err.Error(), "RAPIDAPI_KEY")
}

// Wrapping with %w must keep the sentinel reachable and the *AppError
// extractable; the handler layer depends on both.
func TestWrappedAppError(t *testing.T) {
	inner := NotFound("user", 7)
	wrapped := fmt.Errorf("loading profile: %w", inner)

	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, inner.Message, appErr.Message)
}
