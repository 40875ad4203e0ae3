package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/api/metrics"
	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

const defaultGeocodeTTL = 24 * time.Hour

// CachedGeocoder memoises geocoder results in Redis.
// Key format: geocode:<limit>:<query>
type CachedGeocoder struct {
	next   ports.Geocoder
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedGeocoder wraps next with a Redis cache. Cache failures fall
// through to next.
func NewCachedGeocoder(next ports.Geocoder, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedGeocoder {
	if ttl <= 0 {
		ttl = defaultGeocodeTTL
	}
	return &CachedGeocoder{next: next, client: client, ttl: ttl, log: log}
}

func (g *CachedGeocoder) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	key := g.key(query, limit)

	raw, err := g.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var places []domain.Place
		if jsonErr := json.Unmarshal(raw, &places); jsonErr == nil {
			metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
			return places, nil
		}
		g.log.Warn().Str("key", key).Msg("discarding undecodable geocode cache entry")
	case !errors.Is(err, redis.Nil):
		g.log.Warn().Err(err).Msg("geocode cache read failed")
	}
	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()

	places, err := g.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(places); err == nil {
		if err := g.client.Set(ctx, key, payload, g.ttl).Err(); err != nil {
			g.log.Warn().Err(err).Msg("geocode cache write failed")
		}
	}
	return places, nil
}

func (g *CachedGeocoder) key(query string, limit int) string {
	return fmt.Sprintf("geocode:%d:%s", limit, query)
}
