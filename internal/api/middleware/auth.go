package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// Context keys set by Auth and Session. Handlers read the same literals.
const (
	ctxSessionID = "session_id"
	ctxUser      = "user"
)

var errMissingToken = errors.New("missing bearer token")

// SessionResolver turns a session id into the current user view.
type SessionResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*domain.SessionUser, error)
}

// Auth validates the JWT, resolves its session and injects the session id
// and user view into context. Failures are reported against op.
func Auth(jwtSecret string, sessions SessionResolver, op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, err := sessionIDFromRequest(c, jwtSecret)
			if err != nil {
				return domain.WithOp(op, domain.ErrSessionNotFound)
			}

			user, err := sessions.CurrentUser(c.Request().Context(), sid)
			if err != nil {
				return domain.WithOp(op, err)
			}

			c.Set(ctxSessionID, sid)
			c.Set(ctxUser, user)

			return next(c)
		}
	}
}

// Session injects the session id when a valid token is present and never
// rejects the request. Used by routes that also serve anonymous callers.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sid, err := sessionIDFromRequest(c, jwtSecret); err == nil {
				c.Set(ctxSessionID, sid)
			}
			return next(c)
		}
	}
}

func sessionIDFromRequest(c echo.Context, jwtSecret string) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errMissingToken
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}
