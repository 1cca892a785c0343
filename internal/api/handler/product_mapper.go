package handler

import (
	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

// toCreateInput maps the HTTP request to the service DTO.
func toCreateInput(r createProductRequest) ports.CreateProductInput {
	in := ports.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Stock:       r.Stock,
		Images:      r.Images,
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	return in
}

func toProductPatch(r updateProductRequest) domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    domain.Category(r.Category),
		Images:      r.Images,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
	}
}

func toBusinessSummary(a *domain.Account) businessSummary {
	return businessSummary{
		ID:                 a.ID,
		Name:               a.Name,
		Email:              a.Email,
		Phone:              a.Phone,
		BusinessName:       a.BusinessName,
		VerificationStatus: string(a.VerificationStatus),
		CreatedAt:          a.CreatedAt,
	}
}

func toVerificationView(a *domain.Account) businessVerificationView {
	return businessVerificationView{
		ID:                 a.ID,
		Name:               a.Name,
		BusinessName:       a.BusinessName,
		VerificationStatus: string(a.VerificationStatus),
		BusinessVerified:   a.BusinessVerified,
	}
}
