package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// VerifyOutcome is the result of checking a submitted verification code.
type VerifyOutcome int

const (
	// CodeValid means the code matched within its validity window. The entry
	// is consumed; a second submission of the same code reports CodeNotIssued.
	CodeValid VerifyOutcome = iota
	// CodeNotIssued means no code is on record for the email.
	CodeNotIssued
	// CodeMismatch means a code is on record but the submission differs.
	CodeMismatch
	// CodeExpired means the submission matched but the code outlived its TTL.
	CodeExpired
)

type codeEntry struct {
	code     string
	issuedAt time.Time
}

// CodeRegistry maps an email address to a short-lived one-time verification
// code. State lives in process memory only: codes do not survive a restart,
// and separate processes cannot share them. Both are accepted limitations of
// short-lived codes.
type CodeRegistry struct {
	mu      sync.Mutex
	entries map[string]codeEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCodeRegistry builds a registry with the given code lifetime.
func NewCodeRegistry(ttl time.Duration) *CodeRegistry {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CodeRegistry{
		entries: make(map[string]codeEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue generates a 6-digit code for the email, overwriting any prior entry,
// and returns it for out-of-band delivery. Leading zeros are allowed.
func (r *CodeRegistry) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	r.mu.Lock()
	r.entries[email] = codeEntry{code: code, issuedAt: r.now()}
	r.mu.Unlock()
	return code, nil
}

// Verify checks a submitted code. The discriminator precedence is fixed:
// no entry, then mismatch, then expiry, then valid. A correct but expired
// code must report CodeExpired, never CodeMismatch. A valid entry is
// consumed on the spot.
func (r *CodeRegistry) Verify(email, submitted string) VerifyOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[email]
	if !ok {
		return CodeNotIssued
	}
	if entry.code != submitted {
		return CodeMismatch
	}
	if r.now().Sub(entry.issuedAt) > r.ttl {
		return CodeExpired
	}
	delete(r.entries, email)
	return CodeValid
}

// Drop removes any entry for the email without checking it.
func (r *CodeRegistry) Drop(email string) {
	r.mu.Lock()
	delete(r.entries, email)
	r.mu.Unlock()
}
