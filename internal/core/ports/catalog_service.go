package ports

import (
	"context"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

// CreateProductInput carries the fields accepted when creating a product.
// Stock and Images are optional.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       *int
	Images      []string
}

// ListPublicInput carries the public listing query.
type ListPublicInput struct {
	Category   string // empty or "all" = every category
	BusinessID string
}

// CatalogService defines product use cases. Every mutating call takes the
// acting owner; ownership is enforced inside the service.
type CatalogService interface {
	ListMine(ctx context.Context, owner *domain.Account) ([]*domain.Product, error)
	ListPublic(ctx context.Context, input ListPublicInput) ([]*domain.ProductListing, error)
	GetOne(ctx context.Context, id string) (*domain.ProductListing, error)
	Create(ctx context.Context, owner *domain.Account, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, owner *domain.Account, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, owner *domain.Account, id string) error
	BusinessStats(ctx context.Context, owner *domain.Account) (*domain.BusinessStats, error)
}
