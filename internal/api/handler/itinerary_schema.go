package handler

import "github.com/ecopilot/trip-planner/internal/core/domain"

type generateItinerariesRequest struct {
	Destination string `json:"destination" validate:"required"`
	Dates       string `json:"dates"`
	Theme       string `json:"theme"`
}

type itinerariesResponse struct {
	Success     bool               `json:"success" example:"true"`
	Message     string             `json:"message"`
	Destination string             `json:"destination"`
	Theme       string             `json:"theme"`
	Itineraries []domain.Itinerary `json:"itineraries"`
	Map         *domain.MapView    `json:"map,omitempty"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
