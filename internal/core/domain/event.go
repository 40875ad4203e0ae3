package domain

import "time"

// AccountEventKind names a state change on a user account.
type AccountEventKind string

const (
	EventRegistered            AccountEventKind = "registered"
	EventLoggedIn              AccountEventKind = "logged_in"
	EventLoggedOut             AccountEventKind = "logged_out"
	EventPasswordChanged       AccountEventKind = "password_changed"
	EventSubscribed            AccountEventKind = "subscribed"
	EventSubscriptionCancelled AccountEventKind = "subscription_cancelled"
)

// AccountEvent is an audit record emitted after a successful account operation.
type AccountEvent struct {
	Email     string           `json:"email" bson:"email"`
	Name      string           `json:"name,omitempty" bson:"name,omitempty"`
	Kind      AccountEventKind `json:"kind" bson:"kind"`
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
}

// NotifiesUser reports whether the event should trigger an email to the user.
func (k AccountEventKind) NotifiesUser() bool {
	return k == EventSubscribed || k == EventSubscriptionCancelled
}
