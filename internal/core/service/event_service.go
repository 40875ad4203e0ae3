package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

type accountEventService struct {
	eventRepo ports.AccountEventRepository
	notifier  ports.Notifier
	log       zerolog.Logger
}

// NewAccountEventService returns an AccountEventService implementation.
// notifier may be nil, in which case no emails are sent.
func NewAccountEventService(
	eventRepo ports.AccountEventRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) ports.AccountEventService {
	return &accountEventService{
		eventRepo: eventRepo,
		notifier:  notifier,
		log:       log,
	}
}

// Process records the event in the audit trail and notifies the user for
// subscription changes. A failed notification is logged, not returned.
func (s *accountEventService) Process(ctx context.Context, event domain.AccountEvent) error {
	if event.Email == "" || event.Kind == "" {
		return fmt.Errorf("process account event: %w", domain.ErrInvalidInput)
	}

	if err := s.eventRepo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("process account event: insert: %w", err)
	}

	if s.notifier != nil && event.Kind.NotifiesUser() {
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("kind", string(event.Kind)).Msg("failed to notify user")
		}
	}

	s.log.Debug().
		Str("kind", string(event.Kind)).
		Msg("account event processed")

	return nil
}
