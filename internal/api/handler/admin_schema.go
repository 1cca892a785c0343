package handler

import "time"

type businessSummary struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	BusinessName       string    `json:"businessName"`
	VerificationStatus string    `json:"verificationStatus"`
	CreatedAt          time.Time `json:"createdAt"`
}

type verifyBusinessRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected pending"`
	Notes  string `json:"notes"`
}

type businessVerificationView struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	BusinessName       string `json:"businessName"`
	VerificationStatus string `json:"verificationStatus"`
	BusinessVerified   bool   `json:"businessVerified"`
}

type verifyBusinessResponse struct {
	Message  string                   `json:"message"`
	Business businessVerificationView `json:"business"`
}
