package service

import (
	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/domain"
)

// authorize verifies a bearer token for a protected operation. An empty token
// means the caller sent no Authorization header (401/1); anything that fails
// verification, for whatever reason, is reported as invalid (403/1).
func authorize(tokens *auth.TokenManager, token string) (*domain.Claims, *response.Result) {
	if token == "" {
		r := response.New(401, 1)
		return nil, &r
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		r := response.New(403, 1)
		return nil, &r
	}
	return claims, nil
}

// codeResult maps a verification outcome to its failure triple, or nil when
// the code was valid.
func codeResult(outcome auth.VerifyOutcome) *response.Result {
	switch outcome {
	case auth.CodeValid:
		return nil
	case auth.CodeNotIssued:
		r := response.New(403, 4)
		return &r
	case auth.CodeMismatch:
		r := response.New(403, 2)
		return &r
	case auth.CodeExpired:
		r := response.New(403, 5)
		return &r
	default:
		r := response.New(403, 5)
		return &r
	}
}
