package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

type stubGeocoder struct {
	places []domain.Place
	err    error
	calls  []string
}

func (g *stubGeocoder) Search(_ context.Context, query string, _ int) ([]domain.Place, error) {
	g.calls = append(g.calls, query)
	return g.places, g.err
}

type staticDataset domain.Dataset

func (d staticDataset) Current() domain.Dataset { return domain.Dataset(d) }

func testDataset() staticDataset {
	return staticDataset{
		domain.ThemeNature: {
			Titles:         []string{"N1", "N2", "N3"},
			Activities:     []string{"a1", "a2", "a3"},
			Accommodations: []string{"h1", "h2", "h3"},
		},
		domain.ThemeCulture: {
			Titles:         []string{"C1", "C2", "C3"},
			Activities:     []string{"c1", "c2", "c3"},
			Accommodations: []string{"p1", "p2", "p3"},
		},
	}
}

func newItinerarySvc(geo *stubGeocoder) *ItineraryService {
	return NewItineraryService(geo, testDataset(), 0, zerolog.Nop())
}

func TestItineraryService_Generate_WithMap(t *testing.T) {
	geo := &stubGeocoder{places: []domain.Place{{DisplayName: "Bonito", Coordinates: domain.Coordinates{Lat: -21.1, Lng: -56.5}}}}
	svc := newItinerarySvc(geo)

	res, err := svc.Generate(context.Background(), ports.GenerateItinerariesInput{Destination: "Bonito", Theme: "culture"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Theme != domain.ThemeCulture {
		t.Fatalf("expected culture theme, got %s", res.Theme)
	}
	if len(res.Itineraries) != 3 {
		t.Fatalf("expected 3 itineraries, got %d", len(res.Itineraries))
	}

	for i, it := range res.Itineraries {
		if it.Title != "C"+strconv.Itoa(i+1)+" em Bonito" {
			t.Errorf("unexpected title %q", it.Title)
		}
		if it.Price != "R$ "+strconv.Itoa(1500+i*300) {
			t.Errorf("unexpected price %q", it.Price)
		}
		rating, err := strconv.ParseFloat(it.Rating, 64)
		if err != nil || rating < 4.5 || rating > 5.0 {
			t.Errorf("rating out of range: %q", it.Rating)
		}
		if len(it.Highlights) != 3 || it.Highlights[0] != "c1" {
			t.Errorf("unexpected highlights %v", it.Highlights)
		}
		if !strings.HasSuffix(it.Image, "lock="+strconv.Itoa(i)) {
			t.Errorf("unexpected image url %q", it.Image)
		}
		if !strings.HasSuffix(it.AccommodationImage, "lock="+strconv.Itoa(i+10)) {
			t.Errorf("unexpected accommodation image url %q", it.AccommodationImage)
		}
		if !strings.HasPrefix(it.DetailsURL, "hospedagem.html?") {
			t.Errorf("unexpected details url %q", it.DetailsURL)
		}
	}
	if res.Itineraries[0].EcoScore.Class != "high" || res.Itineraries[2].EcoScore.Class != "low" {
		t.Fatalf("unexpected eco scores")
	}

	if res.Map == nil {
		t.Fatalf("expected map")
	}
	if len(res.Map.Markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(res.Map.Markers))
	}
	for _, m := range res.Map.Markers {
		if abs(m.Coordinates.Lat-(-21.1)) > 0.025 || abs(m.Coordinates.Lng-(-56.5)) > 0.025 {
			t.Errorf("marker too far from center: %+v", m.Coordinates)
		}
	}
}

func TestItineraryService_Generate_UnknownThemeFallsBack(t *testing.T) {
	svc := newItinerarySvc(&stubGeocoder{})

	res, err := svc.Generate(context.Background(), ports.GenerateItinerariesInput{Destination: "Recife", Theme: "space"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Theme != domain.ThemeNature {
		t.Fatalf("expected fallback to nature, got %s", res.Theme)
	}
	for _, it := range res.Itineraries {
		if !strings.Contains(it.AccommodationImage, "/pousada,hotel,Brazil,space/") {
			t.Errorf("accommodation image should use the requested theme, got %q", it.AccommodationImage)
		}
		if it.Accommodation != "h1" && it.Accommodation != "h2" && it.Accommodation != "h3" {
			t.Errorf("expected nature accommodations, got %q", it.Accommodation)
		}
	}
}

func TestItineraryService_Generate_EmptyThemeUsesDefaultForImages(t *testing.T) {
	svc := newItinerarySvc(&stubGeocoder{})

	res, err := svc.Generate(context.Background(), ports.GenerateItinerariesInput{Destination: "Recife"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Itineraries[0].AccommodationImage, ",Brazil,"+string(domain.ThemeNature)+"/") {
		t.Errorf("unexpected accommodation image url %q", res.Itineraries[0].AccommodationImage)
	}
}

func TestItineraryService_Generate_GeocodeFailureIsSoft(t *testing.T) {
	svc := newItinerarySvc(&stubGeocoder{err: errors.New("offline")})

	res, err := svc.Generate(context.Background(), ports.GenerateItinerariesInput{Destination: "Recife", Theme: "nature"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Map != nil {
		t.Fatalf("expected no map when geocoding fails")
	}
	if len(res.Itineraries) != 3 {
		t.Fatalf("expected itineraries despite geocoding failure")
	}
}

func TestItineraryService_Generate_EmptyDestination(t *testing.T) {
	svc := newItinerarySvc(&stubGeocoder{})

	if _, err := svc.Generate(context.Background(), ports.GenerateItinerariesInput{Destination: "  "}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestItineraryService_Generate_DelayHonoursContext(t *testing.T) {
	svc := NewItineraryService(&stubGeocoder{}, testDataset(), time.Hour, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Generate(ctx, ports.GenerateItinerariesInput{Destination: "Recife"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestItineraryService_Generate_IncompleteDataset(t *testing.T) {
	ds := staticDataset{domain.ThemeNature: {Titles: []string{"only one"}}}
	svc := NewItineraryService(&stubGeocoder{}, ds, 0, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), ports.GenerateItinerariesInput{Destination: "Recife"}); err == nil {
		t.Fatalf("expected error for incomplete dataset")
	}
}

func TestItineraryService_Suggest(t *testing.T) {
	geo := &stubGeocoder{places: []domain.Place{{DisplayName: "Bonito, MS"}, {DisplayName: "Bonito, PE"}}}
	svc := newItinerarySvc(geo)

	names, err := svc.Suggest(context.Background(), "Bo")
	if err != nil || len(names) != 0 {
		t.Fatalf("short query should return nothing: %v %v", names, err)
	}
	if len(geo.calls) != 0 {
		t.Fatalf("short query must not hit the geocoder")
	}

	names, err = svc.Suggest(context.Background(), "Bon")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(names) != 2 || names[0] != "Bonito, MS" {
		t.Fatalf("unexpected suggestions %v", names)
	}
}

func TestItineraryService_Suggest_GeocoderError(t *testing.T) {
	svc := newItinerarySvc(&stubGeocoder{err: errors.New("offline")})

	names, err := svc.Suggest(context.Background(), "Bonito")
	if err != nil || len(names) != 0 {
		t.Fatalf("expected empty result on failure, got %v %v", names, err)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
