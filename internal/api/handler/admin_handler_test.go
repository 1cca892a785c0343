package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

type stubAdminService struct {
	listBusinessesFn  func(ctx context.Context) ([]*domain.Account, error)
	dashboardStatsFn  func(ctx context.Context) (*domain.DashboardStats, error)
	verifyBusinessFn  func(ctx context.Context, input ports.VerifyBusinessInput) (*domain.Account, error)
	listAllAccountsFn func(ctx context.Context) ([]*domain.Account, error)
}

func (s *stubAdminService) ListBusinesses(ctx context.Context) ([]*domain.Account, error) {
	return s.listBusinessesFn(ctx)
}

func (s *stubAdminService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.dashboardStatsFn(ctx)
}

func (s *stubAdminService) VerifyBusiness(ctx context.Context, input ports.VerifyBusinessInput) (*domain.Account, error) {
	return s.verifyBusinessFn(ctx, input)
}

func (s *stubAdminService) ListAllAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.listAllAccountsFn(ctx)
}

var testAdmin = &domain.Account{ID: "admin-1", Role: domain.RoleAdmin}

func TestAdminHandler_Businesses(t *testing.T) {
	stub := &stubAdminService{
		listBusinessesFn: func(context.Context) ([]*domain.Account, error) {
			return []*domain.Account{{
				ID:                 "owner-1",
				Name:               "Jane",
				Email:              "jane@shop.test",
				PasswordHash:       "$2a$10$hash",
				Role:               domain.RoleOwner,
				BusinessName:       "Corner Shop",
				VerificationStatus: domain.VerificationPending,
				CreatedAt:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newRequestContext(http.MethodGet, "/admin/businesses", "")
	if err := asAccount(c, testAdmin, h.Businesses); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)

	body := rec.Body.String()
	if strings.Contains(body, "hash") || strings.Contains(body, "role") {
		t.Fatalf("summary must only carry the listed fields: %s", body)
	}

	var resp []businessSummary
	decodeBody(t, rec, &resp)
	if len(resp) != 1 || resp[0].BusinessName != "Corner Shop" || resp[0].VerificationStatus != "pending" {
		t.Fatalf("unexpected summaries: %+v", resp)
	}
}

func TestAdminHandler_DashboardStats(t *testing.T) {
	stub := &stubAdminService{
		dashboardStatsFn: func(context.Context) (*domain.DashboardStats, error) {
			return &domain.DashboardStats{TotalBusinesses: 3, TotalCustomers: 2, TotalRiders: 1, PendingVerifications: 1, ApprovedBusinesses: 1}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newRequestContext(http.MethodGet, "/admin/dashboard-stats", "")
	if err := asAccount(c, testAdmin, h.DashboardStats); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)

	var resp map[string]float64
	decodeBody(t, rec, &resp)
	if resp["totalBusinesses"] != 3 || resp["pendingVerifications"] != 1 || resp["approvedBusinesses"] != 1 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

func TestAdminHandler_VerifyBusiness(t *testing.T) {
	stub := &stubAdminService{
		verifyBusinessFn: func(_ context.Context, in ports.VerifyBusinessInput) (*domain.Account, error) {
			if in.ReviewerID != "admin-1" || in.TargetID != "owner-1" || in.Status != "approved" || in.Notes != "docs ok" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{
				ID:                 "owner-1",
				Name:               "Jane",
				BusinessName:       "Corner Shop",
				BusinessVerified:   true,
				VerificationStatus: domain.VerificationApproved,
			}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newRequestContext(http.MethodPut, "/admin/verify-business/owner-1", `{"status":"approved","notes":"docs ok"}`)
	c.SetParamNames("id")
	c.SetParamValues("owner-1")
	if err := asAccount(c, testAdmin, h.VerifyBusiness); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)

	var resp verifyBusinessResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Business approved successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if !resp.Business.BusinessVerified || resp.Business.VerificationStatus != "approved" {
		t.Fatalf("unexpected business view: %+v", resp.Business)
	}
}

func TestAdminHandler_VerifyBusiness_InvalidStatus(t *testing.T) {
	stub := &stubAdminService{
		verifyBusinessFn: func(context.Context, ports.VerifyBusinessInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAdminHandler(stub)

	for _, body := range []string{`{"status":"maybe"}`, `{}`} {
		c, _ := newRequestContext(http.MethodPut, "/admin/verify-business/owner-1", body)
		c.SetParamNames("id")
		c.SetParamValues("owner-1")
		assertHTTPError(t, asAccount(c, testAdmin, h.VerifyBusiness), http.StatusBadRequest)
	}
}

func TestAdminHandler_VerifyBusiness_NotFound(t *testing.T) {
	stub := &stubAdminService{
		verifyBusinessFn: func(context.Context, ports.VerifyBusinessInput) (*domain.Account, error) {
			return nil, domain.ErrBusinessNotFound
		},
	}
	h := NewAdminHandler(stub)

	c, _ := newRequestContext(http.MethodPut, "/admin/verify-business/customer-1", `{"status":"rejected"}`)
	c.SetParamNames("id")
	c.SetParamValues("customer-1")
	if err := asAccount(c, testAdmin, h.VerifyBusiness); !errors.Is(err, domain.ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func TestAdminHandler_Users_StoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	stub := &stubAdminService{
		listAllAccountsFn: func(context.Context) ([]*domain.Account, error) { return nil, boom },
	}
	h := NewAdminHandler(stub)

	c, _ := newRequestContext(http.MethodGet, "/admin/users", "")
	if err := asAccount(c, testAdmin, h.Users); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
