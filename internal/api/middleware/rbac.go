package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bizsphere/marketplace/internal/core/ports"
)

// AdminOnly admits requests whose token belongs to an admin account.
func AdminOnly(policy ports.AccessPolicy) echo.MiddlewareFunc {
	return Guard(policy.RequireAdmin)
}

// VerifiedOwnerOnly admits requests whose token belongs to an owner with an
// approved business.
func VerifiedOwnerOnly(policy ports.AccessPolicy) echo.MiddlewareFunc {
	return Guard(policy.RequireVerifiedOwner)
}
