package ports

import (
	"context"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

// VerifyBusinessInput carries one admin review decision.
type VerifyBusinessInput struct {
	ReviewerID string
	TargetID   string
	Status     string
	Notes      string
}

type AdminService interface {
	ListBusinesses(ctx context.Context) ([]*domain.Account, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	VerifyBusiness(ctx context.Context, input VerifyBusinessInput) (*domain.Account, error)
	ListAllAccounts(ctx context.Context) ([]*domain.Account, error)
}
