package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cmsforge/translate-gateway/internal/api/handler"
	"github.com/cmsforge/translate-gateway/internal/api/middleware"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
	"github.com/cmsforge/translate-gateway/internal/core/service"
	"github.com/cmsforge/translate-gateway/pkg/logger"
)

// RouterDeps carries everything the router needs. History and Redis are
// optional: their routes and probes are skipped when nil.
type RouterDeps struct {
	Service  ports.TranslationService
	Backend  ports.BackendClient
	Verifier ports.TokenVerifier
	History  ports.TranslationRepository
	MongoDB  *mongo.Database
	Redis    *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("translator"))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Backend, deps.MongoDB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	translateHandler := handler.NewTranslateHandler(deps.Service)
	summaryHandler := handler.NewSummaryHandler(deps.Service)

	v1 := e.Group("/v1", middleware.Auth(deps.Verifier, service.NewAccessPolicy()))
	v1.POST("/translate", translateHandler.Translate)
	v1.POST("/summarize", summaryHandler.Summarize)

	if deps.History != nil {
		historyHandler := handler.NewHistoryHandler(deps.History)
		v1.GET("/translations", historyHandler.List)
	}

	return e
}
