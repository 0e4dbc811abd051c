package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/infinitidrive/infiniti-drive/internal/metrics"
)

const problemContentType = "application/problem+json"

// panicProblem is the body written for a recovered panic. It has the same
// shape as the huma error documents the API returns, plus the request ID so
// a customer report can be matched to the log line.
type panicProblem struct {
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// Recovery returns Echo middleware that turns a handler panic into a 500
// problem document and logs it with the stack and request ID. Panics with
// http.ErrAbortHandler are re-raised so net/http can abort the connection.
// If the handler had already started the response, nothing more is written.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				route := c.Path()
				if route == "" {
					route = unmatchedPath
				}
				metrics.HTTPPanicsTotal.WithLabelValues(route).Inc()

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				reqID := RequestID(c)

				log.Error("panic recovered",
					"panic", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"route", route,
					"request_id", reqID,
					"committed", c.Response().Committed,
					"stack", string(stack),
				)

				if c.Response().Committed {
					return
				}

				c.Response().Header().Set(echo.HeaderContentType, problemContentType)
				err = c.JSON(http.StatusInternalServerError, panicProblem{
					Title:     http.StatusText(http.StatusInternalServerError),
					Status:    http.StatusInternalServerError,
					Detail:    "the request could not be completed",
					RequestID: reqID,
				})
			}()
			return next(c)
		}
	}
}
