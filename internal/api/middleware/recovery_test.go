package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinitidrive/infiniti-drive/internal/metrics"
)

// newPanicServer wires RequestLog and Recovery the way the server does and
// registers one route that panics with value.
func newPanicServer(log *slog.Logger, route string, value any) *echo.Echo {
	e := echo.New()
	e.Use(Recovery(log))
	e.Use(RequestLog(log))
	e.GET(route, func(echo.Context) error { panic(value) })
	e.GET("/api/v1/brands", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{"BMW"})
	})
	return e
}

func TestRecovery_ProblemDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		route     string
		path      string
		value     any
		reqID     string
		wantPanic string
	}{
		{
			name:      "string panic on listing detail",
			route:     "/api/v1/listings/:id",
			path:      "/api/v1/listings/3",
			value:     "nil snapshot",
			reqID:     "req-listing-3",
			wantPanic: "panic=\"nil snapshot\"",
		},
		{
			name:      "error panic on enquiries",
			route:     "/api/v1/enquiries",
			path:      "/api/v1/enquiries",
			value:     errors.New("dispatcher gone"),
			reqID:     "req-enquiry",
			wantPanic: "panic=\"dispatcher gone\"",
		},
		{
			name:      "non-error value gets a generated request id",
			route:     "/api/v1/home",
			path:      "/api/v1/home",
			value:     42,
			wantPanic: "panic=42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := newPanicServer(slog.New(slog.NewTextHandler(&buf, nil)), tt.route, tt.value)

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.reqID != "" {
				req.Header.Set(requestIDHeader, tt.reqID)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, problemContentType, rec.Header().Get(echo.HeaderContentType))

			var body panicProblem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusInternalServerError, body.Status)
			assert.Equal(t, "Internal Server Error", body.Title)
			assert.NotEmpty(t, body.Detail)
			assert.NotContains(t, rec.Body.String(), "panic", "panic value stays in the log")

			respID := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, respID)
			assert.Equal(t, respID, body.RequestID)
			if tt.reqID != "" {
				assert.Equal(t, tt.reqID, body.RequestID)
			}

			logs := buf.String()
			assert.Contains(t, logs, "panic recovered")
			assert.Contains(t, logs, tt.wantPanic)
			assert.Contains(t, logs, "route="+tt.route)
			assert.Contains(t, logs, "request_id="+body.RequestID)
			assert.Contains(t, logs, "stack=")
		})
	}
}

func TestRecovery_CountsPanicsByRoute(t *testing.T) {
	t.Parallel()

	const route = "/api/v1/listings/:id/recovery-count"
	e := newPanicServer(slog.New(slog.DiscardHandler), route, "boom")
	counter := metrics.HTTPPanicsTotal.WithLabelValues(route)
	before := ptestutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/listings/"+id+"/recovery-count", http.NoBody))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	}

	assert.InDelta(t, before+2, ptestutil.ToFloat64(counter), 0.001)
}

func TestRecovery_HealthyRouteUntouched(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newPanicServer(slog.New(slog.NewTextHandler(&buf, nil)), "/api/v1/home", "unused")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["BMW"]`, rec.Body.String())
	assert.NotContains(t, buf.String(), "panic recovered")
}

func TestRecovery_CommittedResponseNotRewritten(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := echo.New()
	e.Use(Recovery(slog.New(slog.NewTextHandler(&buf, nil))))
	e.GET("/api/v1/listings", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c.Response().WriteHeader(http.StatusOK)
		_, _ = c.Response().Write([]byte(`{"sections":[`))
		panic("encoder failed mid-body")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/listings", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"sections":[`, rec.Body.String())
	assert.Contains(t, buf.String(), "committed=true")
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/site", http.NoBody), httptest.NewRecorder())
	handler := Recovery(slog.New(slog.DiscardHandler))(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = handler(c) })
}
