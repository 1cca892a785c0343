package domain

import "time"

// VerificationEvent records one admin review decision on an owner account.
type VerificationEvent struct {
	BusinessID string
	ReviewedBy string
	Status     VerificationStatus
	Notes      string
	ReviewedAt time.Time
}
