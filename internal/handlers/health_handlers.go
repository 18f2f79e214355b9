package handlers

import (
	"context"
	"net/http"

	"rentease/internal/caching"
	"rentease/internal/common"
	"rentease/internal/services"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable. *pgxpool.Pool
// satisfies it directly.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers reports liveness of the API and its backing stores.
type HealthHandlers struct {
	db      Pinger
	cache   caching.CacheService
	storage services.StorageService
}

func NewHealthHandlers(db Pinger, cache caching.CacheService, storage services.StorageService) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache, storage: storage}
}

// Health handles GET /api/health
func (h *HealthHandlers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
		"storage":  "ok",
	}
	healthy := true

	// Client errors can carry DSN fragments, so only a fixed marker is
	// reported per service.
	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unavailable"
		healthy = false
	}
	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "unavailable"
		healthy = false
	}
	if err := h.storage.Ping(ctx); err != nil {
		checks["storage"] = "unavailable"
		healthy = false
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, common.Envelope{
			Success: false,
			Message: "Service degraded",
			Data:    checks,
		})
	}

	return common.SendSuccess(c, http.StatusOK, "Service healthy", checks)
}
