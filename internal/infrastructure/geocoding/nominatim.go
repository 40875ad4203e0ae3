// Package geocoding resolves destination names through a Nominatim-compatible
// search API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ecopilot/trip-planner/internal/api/metrics"
	"github.com/ecopilot/trip-planner/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Nominatim calls GET <baseURL>/search?format=json&q=<query>&limit=<n>.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatim returns a client for baseURL. Nominatim's usage policy
// rejects requests without an identifying User-Agent.
func NewNominatim(baseURL, userAgent string, client *http.Client) *Nominatim {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    client,
	}
}

// Search returns up to limit places matching query, in upstream order.
// Entries with unparsable coordinates are skipped.
func (n *Nominatim) Search(ctx context.Context, query string, limit int) (places []domain.Place, err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.GeocodeRequestDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode returned %s", resp.Status)
	}

	var raw []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	places = make([]domain.Place, 0, len(raw))
	for _, p := range raw {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lng, lngErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		places = append(places, domain.Place{
			DisplayName: p.DisplayName,
			Coordinates: domain.Coordinates{Lat: lat, Lng: lng},
		})
		if limit > 0 && len(places) == limit {
			break
		}
	}
	return places, nil
}
