package handler

import "github.com/bizsphere/marketplace/internal/core/domain"

// messageResponse is the envelope for plain confirmations and for every
// 4xx/5xx response.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Name         string `json:"name"         validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Password     string `json:"password"     validate:"required"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

type meResponse struct {
	User *domain.Account `json:"user"`
}
