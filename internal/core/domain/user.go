package domain

import "time"

// User is the stored account record. Email is the record key and is
// compared case-sensitively.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	IsPremium        bool       `json:"isPremium"`
	SubscriptionDate *time.Time `json:"subscriptionDate"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// SessionUser is the read-only view of a User handed to clients. It never
// carries the password hash.
type SessionUser struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	IsPremium        bool       `json:"isPremium"`
	SubscriptionDate *time.Time `json:"subscriptionDate"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// View derives the session view from the stored record.
func (u *User) View() *SessionUser {
	if u == nil {
		return nil
	}
	v := &SessionUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsPremium: u.IsPremium,
		CreatedAt: u.CreatedAt,
	}
	if u.SubscriptionDate != nil {
		ts := *u.SubscriptionDate
		v.SubscriptionDate = &ts
	}
	return v
}

// Session binds an opaque session id to the email of the logged-in user.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
