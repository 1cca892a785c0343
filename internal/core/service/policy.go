package service

import (
	"context"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

// Authenticator resolves a bearer token to an account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}

var _ ports.AccessPolicy = (*Policy)(nil)

// Policy layers role and verification gates on top of authentication.
type Policy struct {
	auth Authenticator
}

func NewPolicy(auth Authenticator) *Policy {
	return &Policy{auth: auth}
}

func (p *Policy) RequireAdmin(ctx context.Context, token string) (*domain.Account, error) {
	account, err := p.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}
	return account, nil
}

// RequireVerifiedOwner admits owners whose business has been approved.
// Pending and rejected owners are refused even with a valid token.
func (p *Policy) RequireVerifiedOwner(ctx context.Context, token string) (*domain.Account, error) {
	account, err := p.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !account.IsVerifiedOwner() {
		return nil, domain.ErrBusinessNotVerified
	}
	return account, nil
}
