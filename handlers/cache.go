package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sharecalc/services"
)

type CacheHandlers struct {
	cache *services.CacheService
}

func NewCacheHandlers(cache *services.CacheService) *CacheHandlers {
	return &CacheHandlers{
		cache: cache,
	}
}

// GetCacheStatus returns cache health and statistics
func (h *CacheHandlers) GetCacheStatus(c echo.Context) error {
	mode := h.cache.GetCacheMode()

	response := map[string]interface{}{
		"mode":    string(mode),
		"healthy": mode != services.CacheModeDisabled,
		"stats":   h.cache.GetCacheStats(),
	}

	return c.JSON(http.StatusOK, response)
}

// ClearCache drops all memoized results (admin endpoint)
func (h *CacheHandlers) ClearCache(c echo.Context) error {
	if err := h.cache.ClearCache(); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Cache cleared successfully",
	})
}
