// Package http is the stand-in upstream's HTTP surface: account and catalog
// routes shaped like the remote service the storefront talks to.
package http

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/api/middleware"
	"github.com/shophub/storefront/internal/core/ports"
	"github.com/shophub/storefront/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the stand-in routes need.
type Deps struct {
	Accounts  handlers.AccountService
	Products  ports.ProductRepository
	JWTSecret string
	Readiness map[string]handlers.Check
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))

	// --- Dependencies ---
	accountHandler := handlers.NewAccountHandler(deps.Accounts, deps.Log)
	productHandler := handlers.NewProductHandler(deps.Products, deps.Log)

	// --- Account routes ---
	e.POST("/signup", accountHandler.SignUp)
	e.POST("/signin", accountHandler.SignIn)

	// --- Catalog (bearer token required) ---
	e.GET("/products", productHandler.List, middleware.Auth(deps.JWTSecret))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
