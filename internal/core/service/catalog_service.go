package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

// CatalogService implements product use cases. Owner-scoped calls refuse
// accounts that are not verified owners and look products up by
// (id, owner) so another owner's product is indistinguishable from a missing one.
type CatalogService struct {
	products ports.ProductRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCatalogService(products ports.ProductRepository, accounts ports.AccountRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, accounts: accounts, logger: logger, now: time.Now}
}

func requireVerifiedOwner(owner *domain.Account) error {
	if !owner.IsVerifiedOwner() {
		return domain.ErrBusinessNotVerified
	}
	return nil
}

// ListMine returns all of the owner's products, inactive ones included.
func (s *CatalogService) ListMine(ctx context.Context, owner *domain.Account) ([]*domain.Product, error) {
	if err := requireVerifiedOwner(owner); err != nil {
		return nil, err
	}
	return s.products.List(ctx, domain.ProductFilter{BusinessID: owner.ID})
}

// ListPublic returns active products, optionally narrowed by category and
// business, each with its owning business attached.
func (s *CatalogService) ListPublic(ctx context.Context, input ports.ListPublicInput) ([]*domain.ProductListing, error) {
	filter := domain.ProductFilter{
		BusinessID: strings.TrimSpace(input.BusinessID),
		ActiveOnly: true,
	}
	if c := strings.TrimSpace(input.Category); c != "" && c != domain.CategoryAll {
		filter.Category = domain.Category(c)
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.BusinessID]; ok {
			continue
		}
		seen[p.BusinessID] = struct{}{}
		ids = append(ids, p.BusinessID)
	}

	owners := map[string]*domain.Account{}
	if len(ids) > 0 {
		owners, err = s.accounts.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("lookup businesses: %w", err)
		}
	}

	listings := make([]*domain.ProductListing, 0, len(products))
	for _, p := range products {
		listings = append(listings, &domain.ProductListing{
			Product:  *p,
			Business: businessRef(owners[p.BusinessID]),
		})
	}
	return listings, nil
}

// GetOne returns any product by id, active or not, with its owning business attached.
func (s *CatalogService) GetOne(ctx context.Context, id string) (*domain.ProductListing, error) {
	p, err := s.products.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}

	listing := &domain.ProductListing{Product: *p}
	owner, err := s.accounts.FindByID(ctx, p.BusinessID)
	switch {
	case err == nil:
		listing.Business = businessRef(owner)
	case errors.Is(err, domain.ErrAccountNotFound):
	default:
		return nil, fmt.Errorf("lookup business: %w", err)
	}
	return listing, nil
}

func (s *CatalogService) Create(ctx context.Context, owner *domain.Account, input ports.CreateProductInput) (*domain.Product, error) {
	if err := requireVerifiedOwner(owner); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	category := domain.Category(strings.TrimSpace(input.Category))
	switch {
	case name == "" || description == "":
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	case input.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	case !category.Valid():
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	case input.Stock != nil && *input.Stock < 0:
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	images := []string{}
	if input.Images != nil {
		images = append(images, input.Images...)
	}

	now := s.now().UTC()
	product := &domain.Product{
		Name:          name,
		Description:   description,
		Price:         input.Price,
		Category:      category,
		Images:        images,
		Stock:         stock,
		LowStockAlert: domain.DefaultLowStockAlert,
		IsActive:      true,
		BusinessID:    owner.ID,
		BusinessName:  owner.BusinessName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", created.ID).Str("business_id", owner.ID).Msg("product created")
	return created, nil
}

// Update applies a partial update to one of the owner's products. See
// domain.ProductPatch for which zero values are ignored.
func (s *CatalogService) Update(ctx context.Context, owner *domain.Account, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if err := requireVerifiedOwner(owner); err != nil {
		return nil, err
	}
	switch {
	case patch.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	case patch.Category != "" && !patch.Category.Valid():
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, patch.Category)
	case patch.Stock != nil && *patch.Stock < 0:
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}

	product, err := s.products.FindByID(ctx, id, owner.ID)
	if err != nil {
		return nil, err
	}

	product.Apply(patch)
	product.UpdatedAt = s.now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, owner *domain.Account, id string) error {
	if err := requireVerifiedOwner(owner); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id, owner.ID); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Str("business_id", owner.ID).Msg("product deleted")
	return nil
}

// BusinessStats counts the owner's products. Low stock uses the fixed
// domain.LowStockThreshold, not each product's LowStockAlert.
func (s *CatalogService) BusinessStats(ctx context.Context, owner *domain.Account) (*domain.BusinessStats, error) {
	if err := requireVerifiedOwner(owner); err != nil {
		return nil, err
	}

	threshold := domain.LowStockThreshold
	total, err := s.products.Count(ctx, domain.ProductFilter{BusinessID: owner.ID})
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	active, err := s.products.Count(ctx, domain.ProductFilter{BusinessID: owner.ID, ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}
	low, err := s.products.Count(ctx, domain.ProductFilter{BusinessID: owner.ID, ActiveOnly: true, MaxStock: &threshold})
	if err != nil {
		return nil, fmt.Errorf("count low stock products: %w", err)
	}
	return &domain.BusinessStats{TotalProducts: total, ActiveProducts: active, LowStockProducts: low}, nil
}

func businessRef(a *domain.Account) *domain.BusinessRef {
	if a == nil {
		return nil
	}
	return &domain.BusinessRef{ID: a.ID, BusinessName: a.BusinessName, BusinessVerified: a.BusinessVerified}
}
