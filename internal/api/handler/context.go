package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// ctxUser returns the user view injected by the Auth middleware. A missing
// value means the route was mounted without Auth.
func ctxUser(c echo.Context, op domain.Operation) (*domain.SessionUser, error) {
	user, _ := c.Get("user").(*domain.SessionUser)
	if user == nil {
		return nil, domain.WithOp(op, domain.ErrSessionNotFound)
	}
	return user, nil
}

// ctxSessionID returns the session id set by Auth or Session, or "" for
// anonymous requests.
func ctxSessionID(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}
