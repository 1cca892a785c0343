package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory account repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Account
	order    []string
	seq      int
	countErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

// put stores an account directly, bypassing registration.
func (r *stubAccountRepo) put(a *domain.Account) *domain.Account {
	created, err := r.Create(context.Background(), a)
	if err != nil {
		panic(err)
	}
	return created
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	clone := cloneAccount(a)
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("acc-%d", r.seq)
	}
	r.byID[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneAccount(clone), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Account, len(ids))
	for _, id := range ids {
		if a, ok := r.byID[id]; ok {
			out[id] = cloneAccount(a)
		}
	}
	return out, nil
}

func (r *stubAccountRepo) matching(f domain.AccountFilter) []*domain.Account {
	var matched []*domain.Account
	for _, id := range r.order {
		a := r.byID[id]
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		if f.VerificationStatus != "" && a.VerificationStatus != f.VerificationStatus {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

func (r *stubAccountRepo) List(_ context.Context, f domain.AccountFilter) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.matching(f)
	out := make([]*domain.Account, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		clone := cloneAccount(matched[i])
		clone.PasswordHash = ""
		out = append(out, clone)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubAccountRepo) Count(_ context.Context, f domain.AccountFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.matching(f))), nil
}

func (r *stubAccountRepo) UpdateVerification(_ context.Context, id string, status domain.VerificationStatus, notes string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.Role != domain.RoleOwner {
		return nil, domain.ErrBusinessNotFound
	}
	a.ApplyVerification(status, notes)
	return cloneAccount(a), nil
}

// ---------------------------------------------------------------------------
// In-memory product repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Product
	order     []string
	seq       int
	createErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	if p.Images != nil {
		clone.Images = append([]string{}, p.Images...)
	}
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := cloneProduct(p)
	clone.ID = fmt.Sprintf("prod-%d", r.seq)
	r.byID[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneProduct(clone), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id, businessID string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || (businessID != "" && p.BusinessID != businessID) {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[p.ID]
	if !ok || existing.BusinessID != p.BusinessID {
		return domain.ErrProductNotFound
	}
	r.byID[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id, businessID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.BusinessID != businessID {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) matching(f domain.ProductFilter) []*domain.Product {
	var matched []*domain.Product
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.byID[r.order[i]]
		if !ok {
			continue
		}
		if f.BusinessID != "" && p.BusinessID != f.BusinessID {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.MaxStock != nil && p.Stock > *f.MaxStock {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func (r *stubProductRepo) List(_ context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.matching(f)
	out := make([]*domain.Product, 0, len(matched))
	for _, p := range matched {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) Count(_ context.Context, f domain.ProductFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(f))), nil
}

// ---------------------------------------------------------------------------
// Redis-backed collaborators
// ---------------------------------------------------------------------------

type stubDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[id] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}

type stubLimiter struct {
	max      int
	failures map[string]int
	err      error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, failures: make(map[string]int)}
}

func (l *stubLimiter) Allow(_ context.Context, email string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[email] < l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	delete(l.failures, email)
	return nil
}

type stubEventRepo struct {
	events []*domain.VerificationEvent
	err    error
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.VerificationEvent) error {
	if r.err != nil {
		return r.err
	}
	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// steppingClock returns a clock that advances one second per call so
// "newest first" ordering is deterministic.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func verifiedOwner(repo *stubAccountRepo, name string) *domain.Account {
	return repo.put(&domain.Account{
		Name:               name,
		Email:              name + "@shop.test",
		Role:               domain.RoleOwner,
		BusinessName:       name + " Store",
		BusinessVerified:   true,
		VerificationStatus: domain.VerificationApproved,
	})
}

func pendingOwner(repo *stubAccountRepo, name string) *domain.Account {
	return repo.put(&domain.Account{
		Name:               name,
		Email:              name + "@shop.test",
		Role:               domain.RoleOwner,
		BusinessName:       name + " Store",
		VerificationStatus: domain.VerificationPending,
	})
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
