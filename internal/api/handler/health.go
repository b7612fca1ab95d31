package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Probes the Ollama backend (and Mongo/Redis when configured) before
// declaring the service ready.
type ReadinessHandler struct {
	backend ports.BackendClient
	mongo   *mongo.Database // nil when history is disabled
	redis   *redis.Client   // nil when caching is disabled
}

func NewReadinessHandler(backend ports.BackendClient, db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{backend: backend, mongo: db, redis: rdb}
}

type dependencyStatus struct {
	Status    string `json:"status"`
	CheckedAt string `json:"checked_at,omitempty"`
	Error     string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 6*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Ollama listing probe ---
	health := h.backend.CheckHealth(ctx)
	if health.Reachable {
		deps["ollama"] = dependencyStatus{Status: "ok", CheckedAt: health.CheckedAt.Format(time.RFC3339)}
	} else {
		deps["ollama"] = dependencyStatus{Status: "unhealthy", CheckedAt: health.CheckedAt.Format(time.RFC3339)}
		healthy = false
	}

	// --- MongoDB ping (optional dependency) ---
	if h.mongo != nil {
		if err := h.mongo.Client().Ping(ctx, nil); err != nil {
			deps["mongodb"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["mongodb"] = dependencyStatus{Status: "ok"}
		}
	}

	// --- Redis ping (optional dependency) ---
	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
