package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sharecalc/config"
	"sharecalc/models"
	"sharecalc/services"
	"sharecalc/utils"
)

// CalculatorHandlers manages projection endpoints
type CalculatorHandlers struct {
	calcService       *services.CalculatorService
	comparisonService *services.ComparisonService
	geo               *utils.GeoResolver
	versions          *utils.ScheduleVersionConfig
}

func NewCalculatorHandlers(cfg *config.Config, calcService *services.CalculatorService, comparisonService *services.ComparisonService, geo *utils.GeoResolver) *CalculatorHandlers {
	return &CalculatorHandlers{
		calcService:       calcService,
		comparisonService: comparisonService,
		geo:               geo,
		versions:          cfg.ScheduleVersionConfig(),
	}
}

// CondoRequest pairs a condominium input with an optional main network plan
type CondoRequest struct {
	Input models.CondoInput `json:"input"`
	Plan  *models.PlanInput `json:"plan,omitempty"`
}

// ComputePlan godoc
func (ch *CalculatorHandlers) ComputePlan(c echo.Context) error {
	input, err := bindPlanInput(c)
	if err != nil {
		return errorJSON(c, err)
	}

	result := ch.calcService.ComputePlan(input, viewModeParam(c))
	return resultJSON(c, result)
}

// ComputeCondo godoc
func (ch *CalculatorHandlers) ComputeCondo(c echo.Context) error {
	var req CondoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if strict(c) {
		if err := services.ValidateCondoInput(req.Input); err != nil {
			return errorJSON(c, err)
		}
		if req.Plan != nil {
			if err := services.ValidatePlanInput(*req.Plan); err != nil {
				return errorJSON(c, err)
			}
		}
	}

	result := ch.calcService.ComputeCondo(req.Input, req.Plan)
	return resultJSON(c, result)
}

// ComparePlan godoc
func (ch *CalculatorHandlers) ComparePlan(c echo.Context) error {
	input, err := bindPlanInput(c)
	if err != nil {
		return errorJSON(c, err)
	}

	comparison := ch.comparisonService.Compare(input, viewModeParam(c))
	return resultJSON(c, comparison)
}

// ExportPlanCSV godoc
func (ch *CalculatorHandlers) ExportPlanCSV(c echo.Context) error {
	input, err := bindPlanInput(c)
	if err != nil {
		return errorJSON(c, err)
	}

	req := c.Request()
	locale := ch.geo.ResolveLocale(c.QueryParam("lang"), req.Header.Get("Accept-Language"), c.RealIP())

	result := ch.calcService.ComputePlan(input, viewModeParam(c))

	var buf bytes.Buffer
	if err := services.WritePlanCSV(&buf, result, locale); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="plan.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetRates godoc
func (ch *CalculatorHandlers) GetRates(c echo.Context) error {
	rates := ch.calcService.Rates()
	status, supported := utils.CheckScheduleVersion(rates.Version, ch.versions)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"rates":     rates,
		"status":    status,
		"supported": supported,
		"message":   utils.GetScheduleMessage(rates.Version, ch.versions),
	})
}

func bindPlanInput(c echo.Context) (models.PlanInput, error) {
	var input models.PlanInput
	if err := c.Bind(&input); err != nil {
		return input, errBadBody
	}
	if strict(c) {
		if err := services.ValidatePlanInput(input); err != nil {
			return input, err
		}
	}
	return input, nil
}

func viewModeParam(c echo.Context) models.ViewMode {
	return models.ViewMode(c.QueryParam("view_mode"))
}

func strict(c echo.Context) bool {
	v := c.QueryParam("strict")
	return v == "true" || v == "1"
}

var errBadBody = errors.New("invalid request body")
