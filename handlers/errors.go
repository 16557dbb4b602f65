package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sharecalc/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// errorJSON maps service errors to status codes
func errorJSON(c echo.Context, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input", Details: verr.Fields})
	case errors.Is(err, services.ErrScenarioNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// resultJSON writes a projection result. Inputs near the float64 limit can
// project to ±Inf, which JSON cannot carry.
func resultJSON(c echo.Context, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "projection exceeds the representable range",
			Details: []string{err.Error()},
		})
	}
	return c.JSONBlob(http.StatusOK, raw)
}
