package handler

import "github.com/bizsphere/marketplace/internal/core/domain"

// --- Request / Response types ---

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Category    string   `json:"category"    validate:"required,oneof=electronics clothing food books home other"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
	Images      []string `json:"images"`
}

// updateProductRequest mirrors domain.ProductPatch: zero values of the plain
// fields mean "keep", while Stock and IsActive are pointers so that an
// explicit 0 or false is honoured.
type updateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Category    string   `json:"category"    validate:"omitempty,oneof=electronics clothing food books home other"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

type listProductsQuery struct {
	Category string `query:"category"`
	Business string `query:"business"`
}

type productMessageResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}
