package domain

import (
	"strings"
	"time"
)

// Role classifies what an account may do in the marketplace.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleRider    Role = "rider"
	RoleAdmin    Role = "admin"
)

// SelfAssignable reports whether the role can be requested at registration.
// Admin is granted only through the allowlist.
func (r Role) SelfAssignable() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleRider:
		return true
	}
	return false
}

// VerificationStatus is the review state of an owner account.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Valid reports whether s is one of the three known review states.
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

// Account models any registered actor: customer, business owner, rider or admin.
type Account struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	Role               Role               `json:"role"`
	Phone              string             `json:"phone"`
	BusinessName       string             `json:"businessName"`
	Address            string             `json:"address"`
	BusinessVerified   bool               `json:"businessVerified"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerificationNotes  string             `json:"verificationNotes"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// IsVerifiedOwner reports whether the account may manage products.
// Pending and rejected owners keep their account but lose this capability.
func (a *Account) IsVerifiedOwner() bool {
	return a != nil && a.Role == RoleOwner && a.BusinessVerified
}

// ApplyVerification sets the review outcome. BusinessVerified always follows
// the status so the two fields never disagree.
func (a *Account) ApplyVerification(status VerificationStatus, notes string) {
	a.VerificationStatus = status
	a.BusinessVerified = status == VerificationApproved
	a.VerificationNotes = notes
}

// NormalizeEmail is the single casing policy used for every email comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccountFilter narrows account listings and counts. Empty fields match everything.
type AccountFilter struct {
	Role               Role
	VerificationStatus VerificationStatus
}

// DashboardStats summarises accounts for the admin dashboard.
type DashboardStats struct {
	TotalBusinesses      int64 `json:"totalBusinesses"`
	TotalCustomers       int64 `json:"totalCustomers"`
	TotalRiders          int64 `json:"totalRiders"`
	PendingVerifications int64 `json:"pendingVerifications"`
	ApprovedBusinesses   int64 `json:"approvedBusinesses"`
}
