package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// Premium only lets premium users through. It must run after Auth.
func Premium(op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ctxUser).(*domain.SessionUser)
			if user == nil {
				return domain.WithOp(op, domain.ErrSessionNotFound)
			}
			if !user.IsPremium {
				return domain.WithOp(op, domain.ErrPremiumRequired)
			}
			return next(c)
		}
	}
}
