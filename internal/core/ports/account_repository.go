package ports

import (
	"context"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

// AccountRepository defines persistence for accounts.
type AccountRepository interface {
	// Create stores a new account and returns it with its assigned ID.
	// A duplicate email yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// FindByIDs returns the accounts that exist among ids, keyed by ID.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error)
	// List returns matching accounts newest first, without password hashes.
	List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
	Count(ctx context.Context, filter domain.AccountFilter) (int64, error)
	// UpdateVerification sets status, verified flag and notes on an owner
	// account in one write and returns the updated account. Missing accounts
	// and non-owner accounts yield domain.ErrBusinessNotFound.
	UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, notes string) (*domain.Account, error)
}

// VerificationEventRepository persists the audit trail of business reviews.
type VerificationEventRepository interface {
	Insert(ctx context.Context, event *domain.VerificationEvent) error
}
