// Package main implements a mock CMS for local development. It serves the
// bike collection from a JSON fixture with Strapi-style pagination and accepts
// enquiry webhooks, so the server can run without a real CMS.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

// listing keeps each fixture entry as raw JSON so the loose field types the
// CMS sends are served unchanged.
type listing = json.RawMessage

type fixtureFile struct {
	Data []listing `json:"data"`
}

type pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type listingsResponse struct {
	Data []listing `json:"data"`
	Meta struct {
		Pagination pagination `json:"pagination"`
	} `json:"meta"`
}

// inbox records enquiries posted to the webhook endpoint.
type inbox struct {
	mu       sync.Mutex
	received []json.RawMessage
}

func (i *inbox) add(m json.RawMessage) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.received = append(i.received, m)
	return len(i.received)
}

func (i *inbox) list() []json.RawMessage {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]json.RawMessage, len(i.received))
	copy(out, i.received)
	return out
}

func main() {
	port := flag.Int("port", 1337, "port to listen on")
	fixturePath := flag.String("fixture", "tools/mock-cms/testdata/bikes.json", "path to listings fixture")
	token := flag.String("token", "", "require this bearer token (empty disables auth)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixturePath, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "listings", len(fixture.Data))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock CMS", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(logger, fixture, &inbox{}, *token),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixtureFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f fixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

func newMux(logger *slog.Logger, fixture *fixtureFile, box *inbox, token string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bikes", listingsHandler(logger, fixture))
	mux.HandleFunc("POST /api/enquiries", enquiryHandler(logger, box))
	mux.HandleFunc("GET /api/enquiries", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": box.list()})
	})
	return requestLogger(logger, requireToken(token, mux))
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func requireToken(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error": map[string]any{"status": http.StatusUnauthorized, "name": "UnauthorizedError", "message": "Missing or invalid credentials"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func listingsHandler(logger *slog.Logger, fixture *fixtureFile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := positiveInt(r.URL.Query().Get("pagination[page]"), 1)
		pageSize := positiveInt(r.URL.Query().Get("pagination[pageSize]"), 25)

		total := len(fixture.Data)
		pageCount := (total + pageSize - 1) / pageSize

		start := min((page-1)*pageSize, total)
		end := min(start+pageSize, total)

		resp := listingsResponse{Data: fixture.Data[start:end]}
		resp.Meta.Pagination = pagination{
			Page:      page,
			PageSize:  pageSize,
			PageCount: pageCount,
			Total:     total,
		}

		writeJSON(w, http.StatusOK, resp)
		logger.Info("listings", "page", page, "page_size", pageSize, "returned", end-start, "total", total)
	}
}

func enquiryHandler(logger *slog.Logger, box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
			return
		}

		var payload struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || len(payload.Data) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected {\"data\": {...}}"})
			return
		}

		n := box.add(payload.Data)
		writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"id": n}})
		logger.Info("enquiry received", "count", n)
	}
}

func positiveInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
