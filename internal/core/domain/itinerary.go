package domain

// Theme identifies a travel style in the itinerary dataset.
type Theme string

const (
	ThemeNature     Theme = "nature"
	ThemeCulture    Theme = "culture"
	ThemeGastronomy Theme = "gastronomy"
	ThemeRelaxation Theme = "relaxation"
)

// DefaultTheme is used when a request names a theme the dataset lacks.
const DefaultTheme = ThemeNature

// ItinerariesPerRequest is the number of variations produced per request.
const ItinerariesPerRequest = 3

// ThemeData holds the fixed options a theme contributes to itineraries.
// Each slice is expected to hold at least ItinerariesPerRequest entries.
type ThemeData struct {
	Titles         []string `json:"titles"`
	Activities     []string `json:"activities"`
	Accommodations []string `json:"accommodations"`
}

// Complete reports whether the theme has enough entries to build every variation.
func (t ThemeData) Complete() bool {
	return len(t.Titles) >= ItinerariesPerRequest &&
		len(t.Activities) >= ItinerariesPerRequest &&
		len(t.Accommodations) >= ItinerariesPerRequest
}

// Dataset maps themes to their data.
type Dataset map[Theme]ThemeData

// EcoScore rates the environmental impact of an itinerary.
type EcoScore struct {
	Label string `json:"label"`
	Class string `json:"class"`
	Icon  string `json:"icon"`
}

// EcoScoreFor returns the score for the i-th variation: 0 high, 1 medium, anything else low.
func EcoScoreFor(i int) EcoScore {
	switch i {
	case 0:
		return EcoScore{Label: "Alto Impacto Positivo", Class: "high", Icon: "🌿"}
	case 1:
		return EcoScore{Label: "Médio Impacto", Class: "medium", Icon: "⚠️"}
	default:
		return EcoScore{Label: "Baixo Impacto", Class: "low", Icon: "🛑"}
	}
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a geocoder match.
type Place struct {
	DisplayName string      `json:"display_name"`
	Coordinates Coordinates `json:"coordinates"`
}

// Itinerary is one generated trip card.
type Itinerary struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Duration           string   `json:"duration"`
	Price              string   `json:"price"`
	Rating             string   `json:"rating"`
	Accommodation      string   `json:"accommodation"`
	Image              string   `json:"image"`
	AccommodationImage string   `json:"accommodationImage"`
	Highlights         []string `json:"highlights"`
	EcoScore           EcoScore `json:"ecoScore"`
	DetailsURL         string   `json:"detailsUrl"`
}

// MapMarker pins one itinerary near the destination center.
type MapMarker struct {
	Coordinates   Coordinates `json:"coordinates"`
	Title         string      `json:"title"`
	Accommodation string      `json:"accommodation"`
}

// MapView is the map data for a generated set of itineraries.
type MapView struct {
	Center  Coordinates `json:"center"`
	Zoom    int         `json:"zoom"`
	Markers []MapMarker `json:"markers"`
}
