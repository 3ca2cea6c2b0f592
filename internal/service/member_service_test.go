package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	"github.com/spec-kit/records-service/internal/store"
)

const testInviteCode = "ProjectHub2024"

// stubMailer records deliveries instead of talking to SMTP.
type stubMailer struct {
	to   []string
	code []string
	fail bool
}

func (m *stubMailer) SendVerificationCode(to, code string) error {
	if m.fail {
		return errDelivery
	}
	m.to = append(m.to, to)
	m.code = append(m.code, code)
	return nil
}

var errDelivery = &deliveryError{}

type deliveryError struct{}

func (*deliveryError) Error() string { return "delivery failed" }

type memberFixture struct {
	service *MemberService
	mailer  *stubMailer
	codes   *auth.CodeRegistry
}

func newMemberFixture(t *testing.T) *memberFixture {
	t.Helper()

	dir := t.TempDir()
	logger := zap.NewNop()
	st := store.New(dir, logger)
	accounts := repository.NewAccountRepository(st, logger)
	codes := auth.NewCodeRegistry(5 * time.Minute)
	mailer := &stubMailer{}

	svc := NewMemberService(MemberDependencies{
		Accounts:   accounts,
		Tokens:     auth.NewTokenManager("test-secret", time.Hour),
		Codes:      codes,
		Mailer:     mailer,
		InviteCode: testInviteCode,
		BcryptCost: 4,
		DataDir:    dir,
	}, logger)

	return &memberFixture{service: svc, mailer: mailer, codes: codes}
}

func (f *memberFixture) signupInput(email, code string) SignupInput {
	return SignupInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "555-0100",
		Email:       email,
		Password:    "s3cret",
		InviteCode:  testInviteCode,
		EmailCode:   code,
	}
}

// issueCode requests a verification code through the full flow and returns
// what the mailer delivered.
func (f *memberFixture) issueCode(t *testing.T, email string) string {
	t.Helper()
	result := f.service.SendVerificationCode(context.Background(), email)
	require.Equal(t, 200, result.Status)
	require.Equal(t, 6, result.CodeIndex)
	return f.mailer.code[len(f.mailer.code)-1]
}

func TestSignup_SucceedsOnceThenConflicts(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)
	ctx := context.Background()

	code := f.issueCode(t, "ada@example.com")
	result := f.service.Signup(ctx, f.signupInput("ada@example.com", code))
	require.Equal(t, 201, result.Status)
	require.Equal(t, 0, result.CodeIndex)
	require.NotEmpty(t, result.Data.(map[string]string)["token"])

	code = f.issueCode(t, "ada@example.com")
	result = f.service.Signup(ctx, f.signupInput("ada@example.com", code))
	require.Equal(t, 409, result.Status)
	require.Equal(t, 1, result.CodeIndex)
}

func TestSignup_CodeOutcomes(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)
	ctx := context.Background()

	// No code requested yet.
	result := f.service.Signup(ctx, f.signupInput("x@example.com", "123456"))
	require.Equal(t, 403, result.Status)
	require.Equal(t, 4, result.CodeIndex)

	// Wrong code.
	code := f.issueCode(t, "x@example.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	result = f.service.Signup(ctx, f.signupInput("x@example.com", wrong))
	require.Equal(t, 403, result.Status)
	require.Equal(t, 2, result.CodeIndex)
}

func TestSignup_WrongInviteCode(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)

	code := f.issueCode(t, "y@example.com")
	in := f.signupInput("y@example.com", code)
	in.InviteCode = "wrong"

	result := f.service.Signup(context.Background(), in)
	require.Equal(t, 403, result.Status)
	require.Equal(t, 3, result.CodeIndex)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)
	ctx := context.Background()

	code := f.issueCode(t, "ada@example.com")
	require.Equal(t, 201, f.service.Signup(ctx, f.signupInput("ada@example.com", code)).Status)

	result := f.service.Login(ctx, "ada@example.com", "s3cret")
	require.Equal(t, 200, result.Status)
	require.Equal(t, 0, result.CodeIndex)
	require.NotEmpty(t, result.Data.(map[string]string)["token"])

	result = f.service.Login(ctx, "ada@example.com", "wrong")
	require.Equal(t, 200, result.Status)
	require.Equal(t, 2, result.CodeIndex)

	result = f.service.Login(ctx, "nobody@example.com", "s3cret")
	require.Equal(t, 200, result.Status)
	require.Equal(t, 3, result.CodeIndex)
}

func TestCheckIdentity(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)
	ctx := context.Background()

	code := f.issueCode(t, "ada@example.com")
	signup := f.service.Signup(ctx, f.signupInput("ada@example.com", code))
	token := signup.Data.(map[string]string)["token"]

	result := f.service.CheckIdentity(ctx, token)
	require.Equal(t, 200, result.Status)
	require.Equal(t, 5, result.CodeIndex)

	result = f.service.CheckIdentity(ctx, "garbage")
	require.Equal(t, 403, result.Status)
	require.Equal(t, 1, result.CodeIndex)

	result = f.service.CheckIdentity(ctx, "")
	require.Equal(t, 401, result.Status)
	require.Equal(t, 1, result.CodeIndex)
}

func TestGetUserInfo_OmitsPassword(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)
	ctx := context.Background()

	code := f.issueCode(t, "ada@example.com")
	signup := f.service.Signup(ctx, f.signupInput("ada@example.com", code))
	token := signup.Data.(map[string]string)["token"]

	result := f.service.GetUserInfo(ctx, token)
	require.Equal(t, 200, result.Status)
	require.Equal(t, 5, result.CodeIndex)

	account, ok := result.Data.(*domain.Account)
	require.True(t, ok)
	require.Equal(t, "ada@example.com", account.Email)
	require.Empty(t, account.Password, "password hash must not be echoed")
}

func TestUpdate_RewritesAccountAndReissuesToken(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)
	ctx := context.Background()

	code := f.issueCode(t, "old@example.com")
	require.Equal(t, 201, f.service.Signup(ctx, f.signupInput("old@example.com", code)).Status)

	// Code for the update is bound to the new email.
	code = f.issueCode(t, "new@example.com")
	result := f.service.Update(ctx, UpdateInput{
		OriginalEmail: "old@example.com",
		FirstName:     "Ada",
		LastName:      "King",
		PhoneNumber:   "555-0199",
		Email:         "new@example.com",
		Password:      "n3w-pass",
		EmailCode:     code,
	})
	require.Equal(t, 200, result.Status)
	require.Equal(t, 1, result.CodeIndex)
	require.NotEmpty(t, result.Data.(map[string]string)["token"])

	login := f.service.Login(ctx, "new@example.com", "n3w-pass")
	require.Equal(t, 0, login.CodeIndex)

	gone := f.service.Login(ctx, "old@example.com", "n3w-pass")
	require.Equal(t, 3, gone.CodeIndex)
}

func TestUpdate_UnknownOriginalEmail(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)

	result := f.service.Update(context.Background(), UpdateInput{
		OriginalEmail: "ghost@example.com",
		FirstName:     "G", LastName: "H", PhoneNumber: "1",
		Email: "ghost@example.com", Password: "p", EmailCode: "123456",
	})
	require.Equal(t, 200, result.Status)
	require.Equal(t, 4, result.CodeIndex)
}

func TestSendVerificationCode_MailFailure(t *testing.T) {
	t.Parallel()

	f := newMemberFixture(t)
	f.mailer.fail = true

	result := f.service.SendVerificationCode(context.Background(), "ada@example.com")
	require.Equal(t, 500, result.Status)
	require.Equal(t, 1, result.CodeIndex)
}
