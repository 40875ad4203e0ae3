package localstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// EventLog is the audit trail used with the local store: events go to the
// structured log instead of a collection.
type EventLog struct {
	log zerolog.Logger
}

func NewEventLog(log zerolog.Logger) *EventLog {
	return &EventLog{log: log}
}

func (l *EventLog) InsertEvent(_ context.Context, event *domain.AccountEvent) error {
	l.log.Info().
		Str("email", event.Email).
		Str("kind", string(event.Kind)).
		Time("timestamp", event.Timestamp).
		Msg("account event")
	return nil
}
