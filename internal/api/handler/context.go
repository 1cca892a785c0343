package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bizsphere/marketplace/internal/api/middleware"
	"github.com/bizsphere/marketplace/internal/core/domain"
)

// ctxAccount returns the account resolved by the Guard middleware. A missing
// account means the route was registered without a guard; it is rejected
// as unauthenticated rather than served anonymously.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, ok := middleware.AccountFrom(c)
	if !ok {
		return nil, domain.ErrMissingToken
	}
	return account, nil
}
