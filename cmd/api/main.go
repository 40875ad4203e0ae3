// Command api runs the EcoPilot HTTP API.
//
// @title                       EcoPilot API
// @version                     1.0
// @description                 Accounts, premium subscriptions and sustainable trip itineraries.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/api"
	"github.com/ecopilot/trip-planner/internal/api/handler"
	"github.com/ecopilot/trip-planner/internal/core/ports"
	"github.com/ecopilot/trip-planner/internal/core/service"
	"github.com/ecopilot/trip-planner/internal/infrastructure/dataset"
	"github.com/ecopilot/trip-planner/internal/infrastructure/db/localstore"
	mongostore "github.com/ecopilot/trip-planner/internal/infrastructure/db/mongo"
	redisstore "github.com/ecopilot/trip-planner/internal/infrastructure/db/redis"
	"github.com/ecopilot/trip-planner/internal/infrastructure/geocoding"
	"github.com/ecopilot/trip-planner/internal/infrastructure/notify"
	"github.com/ecopilot/trip-planner/internal/infrastructure/queue"
	"github.com/ecopilot/trip-planner/internal/pkg/config"
	"github.com/ecopilot/trip-planner/pkg/logger"
)

const (
	shutdownTimeout   = 10 * time.Second
	eventDrainTimeout = 5 * time.Second
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "ecopilot-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger.For(log, "store"))
	if err != nil {
		return err
	}
	defer store.close()

	// --- Account events ---
	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notify.NewEmailNotifier(cfg.SMTP, logger.For(log, "notify"))
	}
	eventService := service.NewAccountEventService(store.events, notifier, logger.For(log, "account_events"))
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, eventService, logger.For(log, "dispatcher"))
	dispatcher.Start()
	// Runs after e.Shutdown has returned, so events published by drained
	// requests still reach the workers, and before the store closes.
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), eventDrainTimeout)
		defer cancel()
		if err := dispatcher.Stop(drainCtx); err != nil {
			log.Warn().Err(err).Msg("account event drain incomplete")
		}
	}()

	// --- Itineraries ---
	themes := dataset.NewSource(cfg.Itinerary.DatasetPath, logger.For(log, "dataset"))
	if cfg.Itinerary.DatasetReloadCron != "" {
		if err := themes.Schedule(cfg.Itinerary.DatasetReloadCron); err != nil {
			return err
		}
		defer themes.Stop()
	}

	var geocoder ports.Geocoder = geocoding.NewNominatim(cfg.Itinerary.GeocoderURL, cfg.Itinerary.GeocoderUserAgent, nil)
	if store.redis != nil {
		geocoder = redisstore.NewCachedGeocoder(geocoder, store.redis, cfg.Itinerary.GeocodeCacheTTL, logger.For(log, "geocode_cache"))
	}

	// --- Services ---
	authService := service.NewAuthService(store.users, store.sessions, dispatcher, cfg.JWTSecret, cfg.SessionTTL, logger.For(log, "auth"))
	itineraryService := service.NewItineraryService(geocoder, themes, cfg.Itinerary.Delay, logger.For(log, "itineraries"))

	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Itineraries: itineraryService,
		Health:      handler.NewHealthHandler(store.health...),
		JWTSecret:   cfg.JWTSecret,
		Log:         logger.For(log, "http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// backend bundles the account persistence selected by STORE_DRIVER.
type backend struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	events   ports.AccountEventRepository
	redis    *goredis.Client
	health   []handler.Dependency
	closers  []func()
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	if cfg.StoreDriver == config.DriverFile {
		return openFileStore(cfg, log)
	}
	return openMongoStore(ctx, cfg, log)
}

func openFileStore(cfg *config.Config, log zerolog.Logger) (*backend, error) {
	store, err := localstore.Open(cfg.StoreFile)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.StoreFile).Msg("using local file store")

	return &backend{
		users:    localstore.NewUserRepository(store),
		sessions: localstore.NewSessionStore(store),
		events:   localstore.NewEventLog(log),
		health:   []handler.Dependency{{Name: "store", Check: store.Ping}},
		closers: []func(){func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("closing local store")
			}
		}},
	}, nil
}

func openMongoStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	b := &backend{}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("disconnecting mongo")
		}
	})

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		b.close()
		return nil, err
	}
	b.closers = append(b.closers, func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis")
		}
	})

	users := mongostore.NewUserRepository(db)
	events := mongostore.NewEventRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, events); err != nil {
		b.close()
		return nil, err
	}

	b.users = users
	b.events = events
	b.sessions = redisstore.NewSessionStore(rdb)
	b.redis = rdb
	b.health = []handler.Dependency{
		{Name: "mongodb", Check: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo and redis store")
	return b, nil
}
