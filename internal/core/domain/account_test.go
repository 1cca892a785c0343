package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_SelfAssignable(t *testing.T) {
	assert.True(t, RoleCustomer.SelfAssignable())
	assert.True(t, RoleOwner.SelfAssignable())
	assert.True(t, RoleRider.SelfAssignable())
	assert.False(t, RoleAdmin.SelfAssignable())
	assert.False(t, Role("").SelfAssignable())
}

func TestVerificationStatus_Valid(t *testing.T) {
	for _, s := range []VerificationStatus{VerificationPending, VerificationApproved, VerificationRejected} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, VerificationStatus("Approved").Valid())
	assert.False(t, VerificationStatus("").Valid())
}

func TestAccount_ApplyVerification(t *testing.T) {
	a := &Account{Role: RoleOwner, VerificationStatus: VerificationPending}

	a.ApplyVerification(VerificationApproved, "ok")
	assert.True(t, a.BusinessVerified)
	assert.True(t, a.IsVerifiedOwner())
	assert.Equal(t, "ok", a.VerificationNotes)

	a.ApplyVerification(VerificationRejected, "")
	assert.False(t, a.BusinessVerified)
	assert.False(t, a.IsVerifiedOwner())
	assert.Equal(t, VerificationRejected, a.VerificationStatus)
}

func TestAccount_Predicates(t *testing.T) {
	var nilAccount *Account
	assert.False(t, nilAccount.IsAdmin())
	assert.False(t, nilAccount.IsVerifiedOwner())

	admin := &Account{Role: RoleAdmin, BusinessVerified: true}
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsVerifiedOwner())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
