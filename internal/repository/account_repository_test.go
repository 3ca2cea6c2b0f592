package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/store"
)

func newAccountRepo(t *testing.T) (AccountRepository, *store.Store) {
	t.Helper()
	st := store.New(t.TempDir(), zap.NewNop())
	return NewAccountRepository(st, zap.NewNop()), st
}

func testAccount(email string) *domain.Account {
	return &domain.Account{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       email,
		PhoneNumber: "555-0100",
		Password:    "hashed",
		Role:        domain.RoleSuperadmin,
	}
}

func TestCreateAndFind(t *testing.T) {
	t.Parallel()

	repo, _ := newAccountRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testAccount("ada@example.com")))

	account, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ada", account.FirstName)
	require.Equal(t, domain.RoleSuperadmin, account.Role)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo, _ := newAccountRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testAccount("dup@example.com")))
	require.True(t, IsDuplicate(repo.Create(ctx, testAccount("dup@example.com"))))
}

func TestFindByEmail_PurgesStaleIndexEntry(t *testing.T) {
	t.Parallel()

	repo, st := newAccountRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testAccount("stale@example.com")))

	// Remove the account from the leaf store directly, leaving the index
	// entry dangling.
	leaf, err := LeafPathForRole(domain.RoleSuperadmin)
	require.NoError(t, err)
	removed, err := st.Delete(leaf, "email", "stale@example.com")
	require.NoError(t, err)
	require.True(t, removed)

	_, err = repo.FindByEmail(ctx, "stale@example.com")
	require.True(t, IsNotFound(err))

	// The lookup must have repaired the index.
	inIndex, err := st.Exists(IndexPath, "email", "stale@example.com")
	require.NoError(t, err)
	require.False(t, inIndex, "stale index entry must be purged by the lookup")
}

func TestUpdate_ChangesEmailEverywhere(t *testing.T) {
	t.Parallel()

	repo, st := newAccountRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testAccount("old@example.com")))

	updated := testAccount("new@example.com")
	updated.PhoneNumber = "555-0199"
	require.NoError(t, repo.Update(ctx, updated, "old@example.com"))

	_, err := repo.FindByEmail(ctx, "old@example.com")
	require.True(t, IsNotFound(err))

	account, err := repo.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, "555-0199", account.PhoneNumber)

	inIndex, err := st.Exists(IndexPath, "email", "new@example.com")
	require.NoError(t, err)
	require.True(t, inIndex)
}

func TestUpdate_RejectsTakenEmail(t *testing.T) {
	t.Parallel()

	repo, _ := newAccountRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testAccount("one@example.com")))
	require.NoError(t, repo.Create(ctx, testAccount("two@example.com")))

	moved := testAccount("two@example.com")
	require.True(t, IsDuplicate(repo.Update(ctx, moved, "one@example.com")))
}
