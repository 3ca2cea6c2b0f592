package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssue_CodeFormat(t *testing.T) {
	t.Parallel()

	registry := NewCodeRegistry(5 * time.Minute)
	pattern := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 50; i++ {
		code, err := registry.Issue("someone@example.com")
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
	}
}

func TestVerify_Precedence(t *testing.T) {
	t.Parallel()

	registry := NewCodeRegistry(5 * time.Minute)
	now := time.Now()
	registry.now = func() time.Time { return now }

	// No entry yet.
	require.Equal(t, CodeNotIssued, registry.Verify("a@example.com", "123456"))

	code, err := registry.Issue("a@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// Entry exists, submission differs.
	require.Equal(t, CodeMismatch, registry.Verify("a@example.com", wrong))

	// Correct but expired reports expiry, never mismatch.
	now = now.Add(5*time.Minute + time.Second)
	require.Equal(t, CodeExpired, registry.Verify("a@example.com", code))
	require.Equal(t, CodeMismatch, registry.Verify("a@example.com", wrong))
}

func TestVerify_ValidConsumesEntry(t *testing.T) {
	t.Parallel()

	registry := NewCodeRegistry(5 * time.Minute)

	code, err := registry.Issue("b@example.com")
	require.NoError(t, err)

	require.Equal(t, CodeValid, registry.Verify("b@example.com", code))
	require.Equal(t, CodeNotIssued, registry.Verify("b@example.com", code))
}

func TestIssue_OverwritesPriorCode(t *testing.T) {
	t.Parallel()

	registry := NewCodeRegistry(5 * time.Minute)

	first, err := registry.Issue("c@example.com")
	require.NoError(t, err)
	second, err := registry.Issue("c@example.com")
	require.NoError(t, err)

	if first != second {
		require.Equal(t, CodeMismatch, registry.Verify("c@example.com", first))
	}
	require.Equal(t, CodeValid, registry.Verify("c@example.com", second))
}

func TestDrop(t *testing.T) {
	t.Parallel()

	registry := NewCodeRegistry(5 * time.Minute)

	code, err := registry.Issue("d@example.com")
	require.NoError(t, err)

	registry.Drop("d@example.com")
	require.Equal(t, CodeNotIssued, registry.Verify("d@example.com", code))
}
