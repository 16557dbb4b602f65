package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RecoverMiddleware turns handler panics into a 500 with the API's error body
func RecoverMiddleware() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Printf("Recovered from panic on %s %s: %v\n%s", c.Request().Method, c.Request().URL.Path, err, stack)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "internal server error",
			})
		},
	})
}
