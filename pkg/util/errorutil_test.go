package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesDomainErrorsThrough(t *testing.T) {
	t.Parallel()

	conflict := NewConflict("record already exists", map[string]any{"email": "a@b.c"})
	require.Same(t, conflict, ToDomainError(conflict))
}

func TestToDomainError_WrapsUnknownErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk gone")
	wrapped := ToDomainError(cause)
	require.Equal(t, "INTERNAL_ERROR", wrapped.Code)
	require.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
	require.ErrorIs(t, wrapped, cause)

	require.Nil(t, ToDomainError(nil))
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	err := NewMalformedInput("invalid category", map[string]any{"category": ".."})
	require.True(t, IsCode(err, "MALFORMED_INPUT"))
	require.False(t, IsCode(err, "CONFLICT"))
	require.False(t, IsCode(nil, "MALFORMED_INPUT"))
	require.False(t, IsCode(errors.New("plain"), "MALFORMED_INPUT"))
}

func TestNewNotFound_MessageAndStatus(t *testing.T) {
	t.Parallel()

	err := NewNotFound("account", nil)
	require.Equal(t, "account not found", err.Error())
	require.Equal(t, http.StatusNotFound, ToDomainError(err).HTTPStatus)
}
