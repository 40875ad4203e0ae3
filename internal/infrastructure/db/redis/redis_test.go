package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = client.Close()

	_, err = Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	now := time.Now().UTC()
	session := &domain.Session{ID: "s1", Email: "ana@x.com", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", got.Email)

	removed, err := store.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "s1", Email: "ana@x.com", ExpiresAt: now.Add(time.Minute)}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_RejectsExpiredSession(t *testing.T) {
	_, client := newTestClient(t)
	store := NewSessionStore(client)

	err := store.Save(context.Background(), &domain.Session{ID: "s1", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}

type countingGeocoder struct {
	calls  int
	places []domain.Place
	err    error
}

func (g *countingGeocoder) Search(context.Context, string, int) ([]domain.Place, error) {
	g.calls++
	return g.places, g.err
}

func TestCachedGeocoder_HitAfterMiss(t *testing.T) {
	mr, client := newTestClient(t)
	next := &countingGeocoder{places: []domain.Place{{DisplayName: "Bonito", Coordinates: domain.Coordinates{Lat: 1, Lng: 2}}}}
	geo := NewCachedGeocoder(next, client, time.Hour, zerolog.Nop())
	ctx := context.Background()

	first, err := geo.Search(ctx, "Bonito", 5)
	require.NoError(t, err)
	second, err := geo.Search(ctx, "Bonito", 5)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("geocode:5:Bonito"))

	_, err = geo.Search(ctx, "Bonito", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "limit is part of the cache key")
}

func TestCachedGeocoder_ErrorsAreNotCached(t *testing.T) {
	mr, client := newTestClient(t)
	next := &countingGeocoder{err: errors.New("offline")}
	geo := NewCachedGeocoder(next, client, time.Hour, zerolog.Nop())

	_, err := geo.Search(context.Background(), "Bonito", 5)
	require.Error(t, err)
	assert.False(t, mr.Exists("geocode:5:Bonito"))
}

func TestCachedGeocoder_RedisDownFallsThrough(t *testing.T) {
	mr, client := newTestClient(t)
	next := &countingGeocoder{places: []domain.Place{{DisplayName: "Bonito"}}}
	geo := NewCachedGeocoder(next, client, time.Hour, zerolog.Nop())
	mr.Close()

	places, err := geo.Search(context.Background(), "Bonito", 5)
	require.NoError(t, err)
	assert.Len(t, places, 1)
}
