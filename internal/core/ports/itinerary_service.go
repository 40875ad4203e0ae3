package ports

import (
	"context"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

// Geocoder resolves free-text destinations to places.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Place, error)
}

// DatasetSource provides the current theme dataset.
type DatasetSource interface {
	Current() domain.Dataset
}

// GenerateItinerariesInput carries the trip form values.
type GenerateItinerariesInput struct {
	Destination string
	Dates       string
	Theme       string
}

// ItineraryResult is returned by Generate. Map is nil when the destination
// could not be geocoded.
type ItineraryResult struct {
	Destination string
	Theme       domain.Theme
	Itineraries []domain.Itinerary
	Map         *domain.MapView
}

type ItineraryService interface {
	Generate(ctx context.Context, input GenerateItinerariesInput) (*ItineraryResult, error)
	Suggest(ctx context.Context, query string) ([]string, error)
}
