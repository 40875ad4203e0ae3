package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

const (
	minSuggestQueryLen = 3
	suggestLimit       = 5
	mapZoom            = 12
	markerSpread       = 0.05
	basePrice          = 1500
	priceStep          = 300
	itineraryDuration  = "5 Dias"
	imageHost          = "https://loremflickr.com/800/600"
	detailsPage        = "hospedagem.html"
)

// ItineraryService builds mock itineraries from the theme dataset.
type ItineraryService struct {
	geocoder ports.Geocoder
	dataset  ports.DatasetSource
	delay    time.Duration
	logger   zerolog.Logger
}

// NewItineraryService returns an ItineraryService. delay simulates the
// processing time of a real generator; zero disables it.
func NewItineraryService(geocoder ports.Geocoder, dataset ports.DatasetSource, delay time.Duration, logger zerolog.Logger) *ItineraryService {
	return &ItineraryService{
		geocoder: geocoder,
		dataset:  dataset,
		delay:    delay,
		logger:   logger,
	}
}

// Generate produces the itinerary variations for a destination. Geocoding is
// best-effort: when it fails the result simply carries no map.
func (s *ItineraryService) Generate(ctx context.Context, input ports.GenerateItinerariesInput) (*ports.ItineraryResult, error) {
	destination := strings.TrimSpace(input.Destination)
	if destination == "" {
		return nil, domain.ErrInvalidInput
	}

	theme, data, err := s.themeData(input.Theme)
	if err != nil {
		return nil, err
	}

	center := s.locate(ctx, destination)

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	// Accommodation photos are searched by the theme as requested, even when
	// the data fell back to the default theme.
	imageTopic := strings.TrimSpace(input.Theme)
	if imageTopic == "" {
		imageTopic = string(theme)
	}

	itineraries := make([]domain.Itinerary, 0, domain.ItinerariesPerRequest)
	for i := 0; i < domain.ItinerariesPerRequest; i++ {
		itineraries = append(itineraries, s.buildItinerary(i, destination, imageTopic, data))
	}

	result := &ports.ItineraryResult{
		Destination: destination,
		Theme:       theme,
		Itineraries: itineraries,
	}
	if center != nil {
		result.Map = s.buildMap(*center, itineraries)
	}

	s.logger.Info().
		Str("destination", destination).
		Str("theme", string(theme)).
		Bool("has_map", result.Map != nil).
		Msg("itineraries generated")

	return result, nil
}

// Suggest returns destination names for autocomplete. Short queries and
// geocoder failures yield an empty list.
func (s *ItineraryService) Suggest(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestQueryLen {
		return []string{}, nil
	}

	places, err := s.geocoder.Search(ctx, query, suggestLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("suggestion lookup failed")
		return []string{}, nil
	}

	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.DisplayName)
	}
	return names, nil
}

func (s *ItineraryService) themeData(requested string) (domain.Theme, domain.ThemeData, error) {
	ds := s.dataset.Current()

	theme := domain.Theme(requested)
	data, ok := ds[theme]
	if !ok {
		theme = domain.DefaultTheme
		data, ok = ds[theme]
	}
	if !ok || !data.Complete() {
		return "", domain.ThemeData{}, fmt.Errorf("dataset: theme %q is missing or incomplete", theme)
	}
	return theme, data, nil
}

func (s *ItineraryService) locate(ctx context.Context, destination string) *domain.Coordinates {
	places, err := s.geocoder.Search(ctx, destination, 1)
	if err != nil {
		s.logger.Warn().Err(err).Msg("geocoding service unavailable, proceeding without map")
		return nil
	}
	if len(places) == 0 {
		s.logger.Warn().Str("destination", destination).Msg("destination coordinates not found, proceeding without map")
		return nil
	}
	c := places[0].Coordinates
	return &c
}

func (s *ItineraryService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *ItineraryService) buildItinerary(i int, destination, imageTopic string, data domain.ThemeData) domain.Itinerary {
	rating := fmt.Sprintf("%.1f", 4.5+rand.Float64()*0.5)
	title := fmt.Sprintf("%s em %s", data.Titles[i], destination)
	image := fmt.Sprintf("%s/%s,Brazil,landscape/all?lock=%d", imageHost, url.PathEscape(destination), i)
	accommodationImage := fmt.Sprintf("%s/pousada,hotel,Brazil,%s/all?lock=%d", imageHost, url.PathEscape(imageTopic), i+10)

	details := url.Values{}
	details.Set("name", data.Accommodations[i])
	details.Set("image", accommodationImage)
	details.Set("rating", rating)
	details.Set("location", title)

	return domain.Itinerary{
		ID:                 i,
		Title:              title,
		Duration:           itineraryDuration,
		Price:              fmt.Sprintf("R$ %d", basePrice+i*priceStep),
		Rating:             rating,
		Accommodation:      data.Accommodations[i],
		Image:              image,
		AccommodationImage: accommodationImage,
		Highlights:         append([]string(nil), data.Activities[:domain.ItinerariesPerRequest]...),
		EcoScore:           domain.EcoScoreFor(i),
		DetailsURL:         detailsPage + "?" + details.Encode(),
	}
}

func (s *ItineraryService) buildMap(center domain.Coordinates, itineraries []domain.Itinerary) *domain.MapView {
	markers := make([]domain.MapMarker, 0, len(itineraries))
	for _, it := range itineraries {
		markers = append(markers, domain.MapMarker{
			Coordinates: domain.Coordinates{
				Lat: center.Lat + (rand.Float64()-0.5)*markerSpread,
				Lng: center.Lng + (rand.Float64()-0.5)*markerSpread,
			},
			Title:         it.Title,
			Accommodation: it.Accommodation,
		})
	}
	return &domain.MapView{Center: center, Zoom: mapZoom, Markers: markers}
}
