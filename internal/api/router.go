package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-client/internal/api/handler"
	"github.com/learnhub/learnhub-client/internal/api/middleware"
	"github.com/learnhub/learnhub-client/internal/core/ports"
	"github.com/learnhub/learnhub-client/internal/guard"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Session ports.Session
	API     ports.APIClient
	Storage ports.SessionStorage
	Guard   *guard.Guard
	Remote  handler.RemotePinger
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("learnhub"))

	// --- Session API ---
	authHandler := handler.NewAuthHandler(deps.Session, deps.API)
	courseHandler := handler.NewCourseHandler(deps.API)

	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.POST("/auth/refresh", authHandler.Refresh)
	apiGroup.GET("/auth/me", authHandler.Me)
	apiGroup.GET("/courses", courseHandler.List)
	apiGroup.GET("/courses/:id", courseHandler.Get)

	// --- Navigable pages, gated by the route guard ---
	pageHandler := handler.NewPageHandler(deps.Session)
	guarded := middleware.Guard(deps.Guard)
	for path := range guard.Routes() {
		e.GET(path, pageHandler.Render, guarded)
	}
	// Unmatched paths go through the guard too, which redirects them to the
	// login route.
	e.GET("/*", pageHandler.Render, guarded)

	// --- Health probes and metrics (no guard) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Remote, deps.Storage)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
