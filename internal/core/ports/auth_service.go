package ports

import (
	"context"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	SessionID string
	User      *domain.SessionUser
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.SessionUser, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*domain.SessionUser, error)
	IsPremium(ctx context.Context, sessionID string) (bool, error)
	UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error
	Subscribe(ctx context.Context, email string) (*domain.SessionUser, error)
	CancelSubscription(ctx context.Context, email string) (*domain.SessionUser, error)
}
