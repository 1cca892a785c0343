package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

type AdminService struct {
	accounts ports.AccountRepository
	events   ports.VerificationEventRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAdminService builds the service. events may be nil to skip the review audit trail.
func NewAdminService(accounts ports.AccountRepository, events ports.VerificationEventRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{accounts: accounts, events: events, logger: logger, now: time.Now}
}

// ListBusinesses returns every owner account, newest first.
func (s *AdminService) ListBusinesses(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx, domain.AccountFilter{Role: domain.RoleOwner})
}

func (s *AdminService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	counters := []struct {
		filter domain.AccountFilter
		dst    *int64
	}{
		{domain.AccountFilter{Role: domain.RoleOwner}, &stats.TotalBusinesses},
		{domain.AccountFilter{Role: domain.RoleCustomer}, &stats.TotalCustomers},
		{domain.AccountFilter{Role: domain.RoleRider}, &stats.TotalRiders},
		{domain.AccountFilter{Role: domain.RoleOwner, VerificationStatus: domain.VerificationPending}, &stats.PendingVerifications},
		{domain.AccountFilter{Role: domain.RoleOwner, VerificationStatus: domain.VerificationApproved}, &stats.ApprovedBusinesses},
	}
	for _, c := range counters {
		n, err := s.accounts.Count(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("count accounts: %w", err)
		}
		*c.dst = n
	}
	return stats, nil
}

// VerifyBusiness records an admin review on an owner account. Status, flag and
// notes are written together in one update; concurrent reviews are last-write-wins.
func (s *AdminService) VerifyBusiness(ctx context.Context, input ports.VerifyBusinessInput) (*domain.Account, error) {
	status := domain.VerificationStatus(strings.TrimSpace(input.Status))
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be approved, rejected or pending", domain.ErrValidation)
	}
	if strings.TrimSpace(input.TargetID) == "" {
		return nil, domain.ErrBusinessNotFound
	}

	account, err := s.accounts.UpdateVerification(ctx, input.TargetID, status, input.Notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("business_id", account.ID).
		Str("reviewed_by", input.ReviewerID).
		Str("status", string(status)).
		Msg("business verification updated")

	if s.events != nil {
		event := &domain.VerificationEvent{
			BusinessID: account.ID,
			ReviewedBy: input.ReviewerID,
			Status:     status,
			Notes:      input.Notes,
			ReviewedAt: s.now().UTC(),
		}
		if err := s.events.Insert(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("business_id", account.ID).Msg("failed to record verification event")
		}
	}
	return account, nil
}

// ListAllAccounts returns every account, newest first.
func (s *AdminService) ListAllAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx, domain.AccountFilter{})
}
