package localstore

import (
	"context"
	"time"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// storedUser is the persisted shape of a user under the ecotrip_users key.
type storedUser struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Password         string     `json:"password"`
	IsPremium        bool       `json:"isPremium"`
	SubscriptionDate *time.Time `json:"subscriptionDate"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func fromDomain(u *domain.User) storedUser {
	return storedUser{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Password:         u.PasswordHash,
		IsPremium:        u.IsPremium,
		SubscriptionDate: u.SubscriptionDate,
		CreatedAt:        u.CreatedAt,
	}
}

func (su storedUser) toDomain() *domain.User {
	u := &domain.User{
		ID:           su.ID,
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: su.Password,
		IsPremium:    su.IsPremium,
		CreatedAt:    su.CreatedAt,
	}
	if su.SubscriptionDate != nil {
		ts := *su.SubscriptionDate
		u.SubscriptionDate = &ts
	}
	return u
}

// UserRepository implements ports.UserRepository over the ecotrip_users array.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var stored []storedUser
	if _, err := r.store.read(ctx, usersKey, &stored); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(stored))
	for _, su := range stored {
		users = append(users, su.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	var stored []storedUser
	return r.store.mutate(ctx, usersKey, &stored, func() error {
		if indexOf(stored, user.Email) >= 0 {
			return domain.ErrUserExists
		}
		stored = append(stored, fromDomain(user))
		return nil
	})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var stored []storedUser
	if _, err := r.store.read(ctx, usersKey, &stored); err != nil {
		return nil, err
	}
	i := indexOf(stored, email)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	return stored[i].toDomain(), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return r.modify(ctx, email, func(su *storedUser) {
		su.Password = passwordHash
	})
}

func (r *UserRepository) UpdateSubscription(ctx context.Context, email string, isPremium bool, since *time.Time) error {
	return r.modify(ctx, email, func(su *storedUser) {
		su.IsPremium = isPremium
		su.SubscriptionDate = nil
		if since != nil {
			ts := *since
			su.SubscriptionDate = &ts
		}
	})
}

// modify edits one record in place inside the store transaction.
func (r *UserRepository) modify(ctx context.Context, email string, fn func(*storedUser)) error {
	var stored []storedUser
	return r.store.mutate(ctx, usersKey, &stored, func() error {
		i := indexOf(stored, email)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		fn(&stored[i])
		return nil
	})
}

func indexOf(users []storedUser, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}
