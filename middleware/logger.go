package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// quietPaths are polled by load balancers and not worth a log line
var quietPaths = map[string]bool{
	"/health": true,
}

func LoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			if quietPaths[req.URL.Path] {
				return nil
			}

			stop := time.Now()
			res := c.Response()

			path := req.URL.Path
			if req.URL.RawQuery != "" {
				path += "?" + req.URL.RawQuery
			}

			// [2026-10-18 10:30:15] POST /api/plan -> 200 OK (3ms, 2048B) from 127.0.0.1
			fmt.Printf("[%s] %s %s -> %d %s (%dms, %dB) from %s\n",
				stop.Format("2006-01-02 15:04:05"),
				req.Method,
				path,
				res.Status,
				http.StatusText(res.Status),
				stop.Sub(start).Milliseconds(),
				res.Size,
				c.RealIP())

			return nil
		}
	}
}
