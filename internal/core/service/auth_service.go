package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// AuthConfig holds the token and allowlist settings for AuthService.
type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	AdminEmails []string
}

// AuthService implements registration, login and bearer token resolution.
type AuthService struct {
	accounts    ports.AccountRepository
	denylist    ports.TokenDenylist
	limiter     ports.LoginLimiter
	jwtSecret   []byte
	tokenTTL    time.Duration
	adminEmails map[string]struct{}
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAuthService builds the service. denylist and limiter may be nil, which
// disables logout revocation and login throttling respectively.
func NewAuthService(accounts ports.AccountRepository, denylist ports.TokenDenylist, limiter ports.LoginLimiter, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		if e = domain.NormalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &AuthService{
		accounts:    accounts,
		denylist:    denylist,
		limiter:     limiter,
		jwtSecret:   []byte(cfg.JWTSecret),
		tokenTTL:    ttl,
		adminEmails: admins,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, string, error) {
	email := domain.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if name == "" || email == "" || input.Password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, "", err
	}

	now := s.now().UTC()
	account := &domain.Account{
		Name:               name,
		Email:              email,
		Phone:              strings.TrimSpace(input.Phone),
		VerificationStatus: domain.VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, ok := s.adminEmails[email]; ok {
		account.Role = domain.RoleAdmin
		account.ApplyVerification(domain.VerificationApproved, "")
	} else {
		role := domain.Role(strings.TrimSpace(input.Role))
		if !role.SelfAssignable() {
			return nil, "", fmt.Errorf("%w: role must be customer, owner or rider", domain.ErrValidation)
		}
		account.Role = role
		switch role {
		case domain.RoleOwner:
			account.BusinessName = strings.TrimSpace(input.BusinessName)
			if account.BusinessName == "" {
				return nil, "", fmt.Errorf("%w: businessName is required for owners", domain.ErrValidation)
			}
		case domain.RoleCustomer:
			account.Address = strings.TrimSpace(input.Address)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("account_id", created.ID).Str("role", string(created.Role)).Msg("account registered")
	return created, token, nil
}

// Login verifies credentials. Unknown emails and wrong passwords yield the
// same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		} else if !allowed {
			return nil, "", domain.ErrTooManyAttempts
		}
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, email)
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Authenticate resolves a bearer token to its account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, domain.ErrInvalidToken
		}
	}

	account, err := s.accounts.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return err
	}
	if s.denylist == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Info().Str("account_id", claims.Subject).Msg("token revoked")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter record failed")
	}
}

func (s *AuthService) issueToken(accountID string) (string, error) {
	now := s.now()
	claims := &jwt.RegisteredClaims{
		Subject:   accountID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(token string) (*jwt.RegisteredClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
