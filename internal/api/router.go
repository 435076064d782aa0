package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/shophub/storefront/internal/api/handler"
	"github.com/shophub/storefront/internal/api/middleware"
	"github.com/shophub/storefront/internal/core/ports"
	"github.com/shophub/storefront/internal/core/service"
	_ "github.com/shophub/storefront/internal/docs"
	"github.com/shophub/storefront/internal/infrastructure/http/handlers"
)

// Deps are the services the storefront routes are built on.
type Deps struct {
	Sessions    ports.SessionService
	Catalog     ports.CatalogService
	Cart        ports.CartService
	Idempotency ports.IdempotencyStore
	Readiness   map[string]handlers.Check
	Log         zerolog.Logger

	// Registry receives the HTTP request metrics. Nil uses the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	cartHandler := handler.NewCartHandler(deps.Cart, deps.Idempotency, deps.Log)
	guard := middleware.Guard(service.NewAccessGuard(deps.Sessions))

	// --- Session routes ---
	e.POST("/signin", sessionHandler.SignIn)
	e.POST("/signup", sessionHandler.SignUp)
	e.POST("/signout", sessionHandler.SignOut)
	e.GET("/session", sessionHandler.Current)

	// --- Protected views ---
	e.GET("/products", catalogHandler.List, guard)
	e.GET("/cart", cartHandler.Get, guard)
	e.POST("/cart/items", cartHandler.AddItem, guard)
	e.DELETE("/cart/items/:id", cartHandler.RemoveItem, guard)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
