package ports

import (
	"context"
	"time"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	Phone        string
	BusinessName string
	Address      string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, string, error)
	Login(ctx context.Context, email, password string) (*domain.Account, string, error)
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
	Logout(ctx context.Context, token string) error
}

// AccessPolicy gates requests by role and verification.
type AccessPolicy interface {
	RequireAdmin(ctx context.Context, token string) (*domain.Account, error)
	RequireVerifiedOwner(ctx context.Context, token string) (*domain.Account, error)
}

// TokenDenylist remembers revoked token IDs until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginLimiter throttles repeated failed logins for the same email.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
