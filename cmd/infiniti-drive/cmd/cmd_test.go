package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/infinitidrive/infiniti-drive/internal/cms"
	cmsMocks "github.com/infinitidrive/infiniti-drive/internal/cms/mocks"
	"github.com/infinitidrive/infiniti-drive/internal/config"
	"github.com/infinitidrive/infiniti-drive/internal/enquiry"
	"github.com/infinitidrive/infiniti-drive/pkg/catalogue/catalogtest"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.CMS.BaseURL = "http://cms.invalid"
	cfg.CMS.RefreshInterval = time.Hour
	cfg.CMS.FetchTimeout = 5 * time.Second
	cfg.Enquiry.Backend = "noop"
	cfg.Enquiry.QueueSize = 4
	cfg.Enquiry.Workers = 1
	cfg.Enquiry.Timeout = time.Second
	cfg.Enquiry.MaxAttempts = 1
	cfg.Catalogue.FeaturedCount = 3
	cfg.Site.Name = "Infiniti Drive"
	return cfg
}

func TestNewApp_ServesRoutes(t *testing.T) {
	t.Parallel()

	src := cmsMocks.NewMockSource(t)
	src.EXPECT().FetchListings(mock.Anything).
		Return(&cms.FetchResult{Listings: catalogtest.Bikes(), Pages: 1, Total: 7}, nil).
		Once()

	a, err := newApp(testConfig(), src, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		rec := httptest.NewRecorder()
		a.echo.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz").Code)

	require.NoError(t, a.inventory.Refresh(context.Background()))

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/healthz", wantStatus: http.StatusOK, wantBody: `"ok"`},
		{path: "/readyz", wantStatus: http.StatusOK, wantBody: `"ready"`},
		{path: "/api/v1/home", wantStatus: http.StatusOK, wantBody: `"featured"`},
		{path: "/api/v1/listings?brand=BMW", wantStatus: http.StatusOK, wantBody: `"BMW GS 310"`},
		{path: "/api/v1/listings/4", wantStatus: http.StatusOK, wantBody: `"Ducati Panigale V4"`},
		{path: "/api/v1/listings/404", wantStatus: http.StatusNotFound},
		{path: "/api/v1/brands", wantStatus: http.StatusOK, wantBody: `"Royal Enfield"`},
		{path: "/api/v1/site", wantStatus: http.StatusOK, wantBody: `"Infiniti Drive"`},
		{path: "/openapi.json", wantStatus: http.StatusOK, wantBody: `"/api/v1/enquiries"`},
		{path: "/swagger", wantStatus: http.StatusMovedPermanently},
		{path: "/metrics", wantStatus: http.StatusOK, wantBody: "idrive_"},
	}

	for _, tt := range tests {
		rec := get(tt.path)
		assert.Equal(t, tt.wantStatus, rec.Code, tt.path)
		if tt.wantBody != "" {
			assert.Contains(t, rec.Body.String(), tt.wantBody, tt.path)
		}
	}
}

func TestNewApp_EnquiryQueued(t *testing.T) {
	t.Parallel()

	a, err := newApp(testConfig(), cmsMocks.NewMockSource(t), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	a.dispatcher.Start()
	t.Cleanup(func() { _ = a.dispatcher.Stop(context.Background()) })

	body := bytes.NewBufferString(`{"name":"Asha","email":"asha@example.com","message":"Is the Z900 available?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"queued"`)
}

func TestNewSubmitter(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	assert.IsType(t, &enquiry.NoOpSubmitter{}, newSubmitter(&config.EnquiryConfig{Backend: "noop"}, log))
	assert.IsType(t, &enquiry.WebhookSubmitter{}, newSubmitter(&config.EnquiryConfig{
		Backend:    "webhook",
		WebhookURL: "http://inbox.invalid",
	}, log))
	assert.IsType(t, &enquiry.DiscordSubmitter{}, newSubmitter(&config.EnquiryConfig{
		Backend:    "discord",
		WebhookURL: "https://discord.invalid/api/webhooks/1/x",
	}, log))
}

func TestRenderOpenAPI(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out, err := renderOpenAPI("json")
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(out, &doc))
		paths, ok := doc["paths"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, paths, "/api/v1/listings")
		assert.Contains(t, paths, "/api/v1/listings/{id}")
		assert.Contains(t, paths, "/api/v1/enquiries")
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		out, err := renderOpenAPI("yaml")
		require.NoError(t, err)
		assert.Contains(t, string(out), "openapi: 3.1")

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(out, &doc))
		assert.Contains(t, doc, "paths")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := renderOpenAPI("toml")
		require.Error(t, err)
	})
}

func TestPrintListings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printListings(&buf, catalogtest.Bikes()[:2]))
	assert.Contains(t, buf.String(), "Kawasaki Z900")
	assert.Contains(t, buf.String(), "952000")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := versionCommand()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)
	assert.Equal(t, "infiniti-drive dev\n", buf.String())
}
