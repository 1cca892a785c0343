package ports

import (
	"context"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// FindByID retrieves a product. When businessID is non-empty the lookup is
	// additionally scoped to that owner, so another owner's product reads as
	// domain.ErrProductNotFound.
	FindByID(ctx context.Context, id, businessID string) (*domain.Product, error)
	// Update writes the mutable fields of p, scoped to p.BusinessID.
	Update(ctx context.Context, p *domain.Product) error
	// Delete removes the product owned by businessID.
	Delete(ctx context.Context, id, businessID string) error
	// List returns matching products newest first.
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Count(ctx context.Context, filter domain.ProductFilter) (int64, error)
}
