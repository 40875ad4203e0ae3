package ports

import (
	"context"
	"time"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// UserRepository is a keyed record store for user accounts. Email is the key
// and implementations must reject a second record with the same email.
type UserRepository interface {
	// List returns every stored user ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)
	// Create stores a new user, or returns domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdatePassword sets only the password hash of the record keyed by email.
	// It returns domain.ErrUserNotFound when no record matches.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	// UpdateSubscription sets only the plan fields of the record keyed by email.
	// A nil since clears the subscription date.
	UpdateSubscription(ctx context.Context, email string, isPremium bool, since *time.Time) error
}

// SessionStore maps session ids to the email of the logged-in user.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete is idempotent; it reports whether a session was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
