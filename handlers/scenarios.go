package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sharecalc/models"
	"sharecalc/services"
)

// ScenarioHandlers manages saved scenarios
type ScenarioHandlers struct {
	scenarioService *services.ScenarioService
}

func NewScenarioHandlers(scenarioService *services.ScenarioService) *ScenarioHandlers {
	return &ScenarioHandlers{
		scenarioService: scenarioService,
	}
}

// CreateScenario godoc
func (sh *ScenarioHandlers) CreateScenario(c echo.Context) error {
	var scenario models.Scenario
	if err := c.Bind(&scenario); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := sh.scenarioService.CreateScenario(&scenario); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, scenario)
}

// ListScenarios godoc
func (sh *ScenarioHandlers) ListScenarios(c echo.Context) error {
	return c.JSON(http.StatusOK, sh.scenarioService.ListScenarios())
}

// GetScenario godoc
func (sh *ScenarioHandlers) GetScenario(c echo.Context) error {
	scenario, found := sh.scenarioService.GetScenario(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "scenario not found"})
	}
	return c.JSON(http.StatusOK, scenario)
}

// UpdateScenario godoc
func (sh *ScenarioHandlers) UpdateScenario(c echo.Context) error {
	var scenario models.Scenario
	if err := c.Bind(&scenario); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := sh.scenarioService.UpdateScenario(c.Param("id"), &scenario); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, scenario)
}

// DeleteScenario godoc
func (sh *ScenarioHandlers) DeleteScenario(c echo.Context) error {
	if err := sh.scenarioService.DeleteScenario(c.Param("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetScenarioStats godoc
func (sh *ScenarioHandlers) GetScenarioStats(c echo.Context) error {
	if !sh.scenarioService.PersistenceEnabled() {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "scenario persistence is disabled"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	stats, err := sh.scenarioService.Stats(ctx)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
