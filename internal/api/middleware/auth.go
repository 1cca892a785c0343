package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

const accountKey = "account"

// Gate resolves a bearer token to an account, or refuses it.
type Gate func(ctx context.Context, token string) (*domain.Account, error)

// Guard runs gate on the request's bearer token and injects the resolved
// account into the context. Refusals are returned as domain errors for the
// central error handler to map.
func Guard(gate Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c)
			if err != nil {
				return err
			}

			account, err := gate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(accountKey, account)
			return next(c)
		}
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	authHeader := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if authHeader == "" {
		return "", domain.ErrMissingToken
	}

	scheme, token, _ := strings.Cut(authHeader, " ")
	if !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingToken
	}
	return token, nil
}

// AccountFrom returns the account injected by Guard.
func AccountFrom(c echo.Context) (*domain.Account, bool) {
	account, ok := c.Get(accountKey).(*domain.Account)
	return account, ok && account != nil
}
