package domain

import "time"

// Category is one of the fixed catalog sections.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategoryOther       Category = "other"
)

// CategoryAll is the query sentinel meaning "no category filter".
const CategoryAll = "all"

var categories = map[Category]struct{}{
	CategoryElectronics: {},
	CategoryClothing:    {},
	CategoryFood:        {},
	CategoryBooks:       {},
	CategoryHome:        {},
	CategoryOther:       {},
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

const (
	// DefaultLowStockAlert is stored on every new product. It is informational only.
	DefaultLowStockAlert = 10
	// LowStockThreshold is what business stats actually count against,
	// regardless of each product's LowStockAlert.
	LowStockThreshold = 10
)

// Product is a catalog item owned by exactly one owner account.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      Category  `json:"category"`
	Images        []string  `json:"images"`
	Stock         int       `json:"stock"`
	LowStockAlert int       `json:"lowStockAlert"`
	IsActive      bool      `json:"isActive"`
	BusinessID    string    `json:"businessId"`
	BusinessName  string    `json:"businessName"` // snapshot taken at creation, never resynced
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductPatch carries a partial update.
//
// Name, Description, Price, Category and Images are applied only when they
// hold a non-zero value (an empty string or a zero price is ignored; a
// non-nil but empty Images slice still replaces the list). Stock and IsActive
// are applied whenever they are present, so zero and false are honoured.
type ProductPatch struct {
	Name        string
	Description string
	Price       float64
	Category    Category
	Images      []string
	Stock       *int
	IsActive    *bool
}

// Apply merges the patch into p following the replace-if-provided rules above.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Name != "" {
		p.Name = patch.Name
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.Price != 0 {
		p.Price = patch.Price
	}
	if patch.Category != "" {
		p.Category = patch.Category
	}
	if patch.Images != nil {
		p.Images = append(make([]string, 0, len(patch.Images)), patch.Images...)
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
}

// IsLowStock reports whether the product counts toward the low-stock figure.
func (p *Product) IsLowStock() bool {
	return p.IsActive && p.Stock <= LowStockThreshold
}

// BusinessRef is the owning business information attached to public product reads.
type BusinessRef struct {
	ID               string `json:"id"`
	BusinessName     string `json:"businessName"`
	BusinessVerified bool   `json:"businessVerified"`
}

// ProductListing is a product together with its owning business.
type ProductListing struct {
	Product
	Business *BusinessRef `json:"business,omitempty"`
}

// ProductFilter narrows product listings and counts.
type ProductFilter struct {
	BusinessID string // empty = any business
	Category   Category
	ActiveOnly bool
	MaxStock   *int // inclusive upper bound on stock
}

// BusinessStats summarises one owner's catalog.
type BusinessStats struct {
	TotalProducts    int64 `json:"totalProducts"`
	ActiveProducts   int64 `json:"activeProducts"`
	LowStockProducts int64 `json:"lowStockProducts"`
}
