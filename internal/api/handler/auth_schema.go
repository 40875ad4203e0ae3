package handler

import "github.com/ecopilot/trip-planner/internal/core/domain"

// errorResponse documents the failure envelope rendered by the error handler.
type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message"`
}

// messageResponse is the bare success envelope.
type messageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}

// --- Request / Response types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required"`
}

type userResponse struct {
	Success bool                `json:"success" example:"true"`
	Message string              `json:"message,omitempty"`
	User    *domain.SessionUser `json:"user"`
}

type loginResponse struct {
	Success bool                `json:"success" example:"true"`
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    *domain.SessionUser `json:"user"`
}

type premiumResponse struct {
	Success   bool `json:"success" example:"true"`
	IsPremium bool `json:"isPremium"`
}
