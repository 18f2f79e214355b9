package middleware

import (
	"context"
	"net/http"

	"rentease/internal/common"
	"rentease/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ResolveAccount runs after the JWT middleware and turns the verified token
// into an account identity on the request context. The account row is loaded
// so that a deleted account stops authenticating even with a live token.
func ResolveAccount(accountRepo repositories.AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			accountID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			account, err := accountRepo.GetByID(c.Request().Context(), accountID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
			}

			ctx := context.WithValue(c.Request().Context(), common.AccountIDKey, account.ID)
			ctx = context.WithValue(ctx, common.AccountRoleKey, account.Role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireRoles rejects requests whose account role is not in the allowed set.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetAccountRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account not authenticated")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
