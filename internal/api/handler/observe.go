package handler

import (
	"errors"

	"github.com/ecopilot/trip-planner/internal/api/metrics"
	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// observe records the outcome of an account operation.
func observe(op domain.Operation, err error) {
	metrics.AuthOperationsTotal.WithLabelValues(string(op), resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrUserExists):
		return "user_exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return "already_subscribed"
	case errors.Is(err, domain.ErrNotSubscribed):
		return "not_subscribed"
	case errors.Is(err, domain.ErrPersistFailed):
		return "persist_failed"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found"
	}
	return "error"
}
