package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ecopilot/trip-planner/docs"
	"github.com/ecopilot/trip-planner/internal/api/handler"
	"github.com/ecopilot/trip-planner/internal/api/middleware"
	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

const metricsSubsystem = "ecopilot"

// Deps are the services the router exposes over HTTP.
type Deps struct {
	Auth        ports.AuthService
	Itineraries ports.ItineraryService
	Health      *handler.HealthHandler
	JWTSecret   string
	Log         zerolog.Logger

	// Registerer receives the HTTP request metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: deps.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	itineraryHandler := handler.NewItineraryHandler(deps.Itineraries)

	requireSession := middleware.Auth(deps.JWTSecret, deps.Auth, domain.OpSession)
	optionalSession := middleware.Session(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, optionalSession)
	e.GET("/auth/premium", authHandler.Premium, optionalSession)
	e.GET("/auth/me", authHandler.Me, requireSession)
	e.PUT("/auth/password", authHandler.UpdatePassword, middleware.Auth(deps.JWTSecret, deps.Auth, domain.OpUpdatePassword))

	// --- Subscription routes ---
	e.POST("/subscription", authHandler.Subscribe, middleware.Auth(deps.JWTSecret, deps.Auth, domain.OpSubscribe))
	e.DELETE("/subscription", authHandler.CancelSubscription, middleware.Auth(deps.JWTSecret, deps.Auth, domain.OpCancel))

	// --- Itinerary routes ---
	e.GET("/destinations/suggest", itineraryHandler.Suggest)
	e.POST("/itineraries", itineraryHandler.Generate,
		middleware.Auth(deps.JWTSecret, deps.Auth, domain.OpItinerary),
		middleware.Premium(domain.OpItinerary),
	)

	// --- Health checks (no auth required) ---
	if deps.Health != nil {
		e.GET("/health", deps.Health.Liveness)        // liveness  – is the process alive?
		e.GET("/health/ready", deps.Health.Readiness) // readiness – are dependencies up?
	}

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
