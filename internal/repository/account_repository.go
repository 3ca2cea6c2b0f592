package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/store"
	apperrors "github.com/spec-kit/records-service/pkg/util"
)

// IndexPath is the account-index store: email -> leaf store path.
const IndexPath = "admin/baseInfo.json"

// LeafPathForRole maps an account role to the leaf store holding its full
// record.
func LeafPathForRole(role domain.Role) (string, error) {
	switch role {
	case domain.RoleSuperadmin:
		return "admin/private/specificInfo.json", nil
	default:
		return "", fmt.Errorf("no store for role %q", role)
	}
}

// AccountRepository defines persistence access for member accounts. Every
// lookup goes through the account index first; an index entry whose leaf no
// longer holds the email is purged before the miss is reported.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account, originalEmail string) error
}

type accountRepository struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAccountRepository returns a file-store-backed implementation.
func NewAccountRepository(st *store.Store, logger *zap.Logger) AccountRepository {
	return &accountRepository{store: st, logger: logger}
}

// resolveLeaf finds the leaf store path for an email, purging stale index
// entries as a side effect. Returns a not-found error when no live entry
// exists.
func (r *accountRepository) resolveLeaf(email string) (string, error) {
	doc, err := r.store.FindByField(IndexPath, "email", email)
	if err != nil {
		return "", err
	}
	var entry domain.MemberIndexEntry
	if err := fromDocument(doc, &entry); err != nil {
		return "", err
	}

	exists, err := r.store.Exists(entry.Path, "email", email)
	if err != nil {
		return "", err
	}
	if !exists {
		// Stale pointer: the leaf no longer holds this account. Repair the
		// index before reporting the miss.
		if _, err := r.store.Delete(IndexPath, "email", email); err != nil {
			r.logger.Warn("stale index purge failed", zap.String("email", email), zap.Error(err))
		}
		return "", apperrors.NewNotFound("account", map[string]any{"email": email})
	}
	return entry.Path, nil
}

func (r *accountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	leaf, err := r.resolveLeaf(email)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.FindByField(leaf, "email", email)
	if err != nil {
		return nil, err
	}
	var account domain.Account
	if err := fromDocument(doc, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) EmailExists(_ context.Context, email string) (bool, error) {
	return r.emailExists(email)
}

func (r *accountRepository) emailExists(email string) (bool, error) {
	inIndex, err := r.store.Exists(IndexPath, "email", email)
	if err != nil {
		return false, err
	}
	if inIndex {
		return true, nil
	}
	leaf, err := LeafPathForRole(domain.RoleSuperadmin)
	if err != nil {
		return false, err
	}
	return r.store.Exists(leaf, "email", email)
}

func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	exists, err := r.emailExists(account.Email)
	if err != nil {
		return err
	}
	if exists {
		return errDuplicate("email", account.Email)
	}

	leaf, err := LeafPathForRole(account.Role)
	if err != nil {
		return err
	}

	indexDoc, err := toDocument(domain.MemberIndexEntry{Email: account.Email, Path: leaf})
	if err != nil {
		return err
	}
	accountDoc, err := toDocument(account)
	if err != nil {
		return err
	}

	// Index first, then leaf. A failure between the two leaves a stale index
	// entry, which the next lookup repairs.
	if _, err := r.store.Insert(IndexPath, indexDoc); err != nil {
		return err
	}
	if _, err := r.store.Insert(leaf, accountDoc); err != nil {
		return err
	}
	return nil
}

func (r *accountRepository) Update(_ context.Context, account *domain.Account, originalEmail string) error {
	leaf, err := r.resolveLeaf(originalEmail)
	if err != nil {
		return err
	}

	if account.Email != originalEmail {
		exists, err := r.emailExists(account.Email)
		if err != nil {
			return err
		}
		if exists {
			return errDuplicate("email", account.Email)
		}
	}

	indexDoc, err := toDocument(domain.MemberIndexEntry{Email: account.Email, Path: leaf})
	if err != nil {
		return err
	}
	accountDoc, err := toDocument(account)
	if err != nil {
		return err
	}

	if _, err := r.store.Update(IndexPath, indexDoc, "email", originalEmail); err != nil {
		return err
	}
	updated, err := r.store.Update(leaf, accountDoc, "email", originalEmail)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NewNotFound("account", map[string]any{"email": originalEmail})
	}
	return nil
}
