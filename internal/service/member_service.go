package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/mail"
	"github.com/spec-kit/records-service/internal/repository"
)

// MemberService coordinates login, signup, email verification and profile
// maintenance. Every operation returns a response triple; no internal error
// leaves this layer.
type MemberService struct {
	accounts   repository.AccountRepository
	tokens     *auth.TokenManager
	codes      *auth.CodeRegistry
	mailer     mail.Mailer
	inviteCode string
	bcryptCost int
	dataDir    string
	logger     *zap.Logger
}

// MemberDependencies bundles collaborators for the member service.
type MemberDependencies struct {
	Accounts   repository.AccountRepository
	Tokens     *auth.TokenManager
	Codes      *auth.CodeRegistry
	Mailer     mail.Mailer
	InviteCode string
	BcryptCost int
	DataDir    string
}

// NewMemberService builds the service.
func NewMemberService(deps MemberDependencies, logger *zap.Logger) *MemberService {
	return &MemberService{
		accounts:   deps.Accounts,
		tokens:     deps.Tokens,
		codes:      deps.Codes,
		mailer:     deps.Mailer,
		inviteCode: deps.InviteCode,
		bcryptCost: deps.BcryptCost,
		dataDir:    deps.DataDir,
		logger:     logger,
	}
}

// SignupInput carries the signup form fields.
type SignupInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Password    string
	InviteCode  string
	EmailCode   string
}

// UpdateInput carries the profile-update form fields.
type UpdateInput struct {
	OriginalEmail string
	FirstName     string
	LastName      string
	PhoneNumber   string
	Email         string
	Password      string
	EmailCode     string
}

// Login authenticates by email and password and returns a fresh token.
func (s *MemberService) Login(ctx context.Context, email, password string) response.Result {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return response.New(200, 3)
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return response.New(500, 2)
	}

	if err := auth.ComparePassword(account.Password, password); err != nil {
		return response.New(200, 2)
	}

	token, _, err := s.tokens.Issue(claimsFor(account))
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err))
		return response.New(500, 1)
	}
	return response.WithData(200, 0, map[string]string{"token": token})
}

// Signup registers a new account. The email verification code is checked
// first, then the invite code, then uniqueness across the index and leaf
// stores; a fresh token is issued on success.
func (s *MemberService) Signup(ctx context.Context, in SignupInput) response.Result {
	if failure := codeResult(s.codes.Verify(in.Email, in.EmailCode)); failure != nil {
		return *failure
	}
	s.codes.Drop(in.Email)

	if in.InviteCode != s.inviteCode {
		return response.New(403, 3)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return response.New(500, 2)
	}

	account := &domain.Account{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    hash,
		Role:        domain.RoleSuperadmin,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if repository.IsDuplicate(err) {
			return response.New(409, 1)
		}
		s.logger.Error("account create failed", zap.Error(err))
		return response.New(500, 2)
	}

	token, _, err := s.tokens.Issue(claimsFor(account))
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err))
		return response.New(500, 1)
	}
	return response.WithData(201, 0, map[string]string{"token": token})
}

// SendVerificationCode issues a one-time code for the email and delivers it
// over SMTP. The registry entry is written before the send is attempted.
func (s *MemberService) SendVerificationCode(_ context.Context, email string) response.Result {
	code, err := s.codes.Issue(email)
	if err != nil {
		s.logger.Error("code issue failed", zap.Error(err))
		return response.New(500, 1)
	}
	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		s.logger.Error("verification mail failed", zap.Error(err))
		return response.New(500, 1)
	}
	return response.New(200, 6)
}

// Update rewrites the account identified by its original email. When the
// email changes, the new one must be unused; the verification code is bound
// to the new email. A fresh token reflecting the updated claims is returned.
func (s *MemberService) Update(ctx context.Context, in UpdateInput) response.Result {
	existing, err := s.accounts.FindByEmail(ctx, in.OriginalEmail)
	if err != nil {
		if repository.IsNotFound(err) {
			return response.New(200, 4)
		}
		s.logger.Error("update lookup failed", zap.Error(err))
		return response.New(500, 2)
	}

	if in.Email != in.OriginalEmail {
		taken, err := s.accounts.EmailExists(ctx, in.Email)
		if err != nil {
			s.logger.Error("update uniqueness check failed", zap.Error(err))
			return response.New(500, 2)
		}
		if taken {
			return response.New(409, 1)
		}
	}

	if failure := codeResult(s.codes.Verify(in.Email, in.EmailCode)); failure != nil {
		return *failure
	}
	s.codes.Drop(in.Email)

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return response.New(500, 2)
	}

	updated := &domain.Account{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    hash,
		Role:        existing.Role,
	}
	if err := s.accounts.Update(ctx, updated, in.OriginalEmail); err != nil {
		if repository.IsDuplicate(err) {
			return response.New(409, 1)
		}
		s.logger.Error("account update failed", zap.Error(err))
		return response.New(500, 2)
	}

	token, _, err := s.tokens.Issue(claimsFor(updated))
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err))
		return response.New(500, 1)
	}
	return response.WithData(200, 1, map[string]string{"token": token})
}

// GetUserInfo returns the account behind the token, without the password.
func (s *MemberService) GetUserInfo(ctx context.Context, token string) response.Result {
	claims, failure := authorize(s.tokens, token)
	if failure != nil {
		return *failure
	}

	account, err := s.accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return response.New(200, 3)
		}
		s.logger.Error("user info lookup failed", zap.Error(err))
		return response.New(500, 2)
	}

	account.Password = ""
	return response.WithData(200, 5, account)
}

// CheckIdentity reports whether the token is currently valid.
func (s *MemberService) CheckIdentity(_ context.Context, token string) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}
	return response.New(200, 5)
}

// GetProjects returns the standalone project data file to authenticated
// callers.
func (s *MemberService) GetProjects(_ context.Context, token string) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}

	data, err := os.ReadFile(filepath.Join(s.dataDir, "info_project.json"))
	if err != nil {
		s.logger.Error("project data read failed", zap.Error(err))
		return response.New(500, 2)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.Error("project data unreadable", zap.Error(err))
		return response.New(500, 2)
	}
	return response.WithData(200, 1, payload)
}

func claimsFor(account *domain.Account) domain.Claims {
	return domain.Claims{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      account.Role,
	}
}
