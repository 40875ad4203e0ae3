package ports

import (
	"context"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// EventPublisher hands account events to the asynchronous pipeline.
// Publish must not block the caller.
type EventPublisher interface {
	Publish(event domain.AccountEvent)
}

// AccountEventService processes account events taken off the queue.
type AccountEventService interface {
	Process(ctx context.Context, event domain.AccountEvent) error
}

// Notifier sends user-facing notifications for account events.
type Notifier interface {
	Notify(ctx context.Context, event domain.AccountEvent) error
}
