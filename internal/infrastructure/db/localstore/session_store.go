package localstore

import (
	"context"
	"time"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// SessionStore implements ports.SessionStore over the ecotrip_session object.
// Expired sessions are pruned on every write.
type SessionStore struct {
	store *Store
	now   func() time.Time
}

func NewSessionStore(store *Store) *SessionStore {
	return &SessionStore{store: store, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	sessions := map[string]*domain.Session{}
	return s.store.mutate(ctx, sessionsKey, &sessions, func() error {
		if sessions == nil {
			sessions = map[string]*domain.Session{}
		}
		s.prune(sessions)
		clone := *session
		sessions[session.ID] = &clone
		return nil
	})
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	sessions := map[string]*domain.Session{}
	if _, err := s.store.read(ctx, sessionsKey, &sessions); err != nil {
		return nil, err
	}
	session, ok := sessions[id]
	if !ok || session.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	sessions := map[string]*domain.Session{}
	var removed bool
	err := s.store.mutate(ctx, sessionsKey, &sessions, func() error {
		if session, ok := sessions[id]; ok {
			removed = !session.Expired(s.now())
			delete(sessions, id)
		}
		s.prune(sessions)
		return nil
	})
	return removed, err
}

func (s *SessionStore) prune(sessions map[string]*domain.Session) {
	now := s.now()
	for id, session := range sessions {
		if session == nil || session.Expired(now) {
			delete(sessions, id)
		}
	}
}
