package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sharecalc/services"
)

// SystemHandlers reports process health
type SystemHandlers struct {
	startedAt time.Time
	cache     *services.CacheService
	scenarios *services.ScenarioService
}

func NewSystemHandlers(cache *services.CacheService, scenarios *services.ScenarioService) *SystemHandlers {
	return &SystemHandlers{
		startedAt: time.Now(),
		cache:     cache,
		scenarios: scenarios,
	}
}

// GetHealth returns OK
func (h *SystemHandlers) GetHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// GetStatus returns backend status
func (h *SystemHandlers) GetStatus(c echo.Context) error {
	status := map[string]interface{}{
		"status":      "running",
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
		"cacheMode":   string(h.cache.GetCacheMode()),
		"persistence": h.scenarios.PersistenceEnabled(),
		"scenarios":   len(h.scenarios.ListScenarios()),
		"timestamp":   time.Now(),
	}
	return c.JSON(http.StatusOK, status)
}
