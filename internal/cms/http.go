package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/infinitidrive/infiniti-drive/internal/metrics"
)

const (
	defaultListingsPath = "/api/bikes"
	defaultPageSize     = 100
	defaultMaxPages     = 20
)

// HTTPSource implements Source against the CMS REST collection endpoint.
type HTTPSource struct {
	baseURL      string
	listingsPath string
	apiToken     string
	pageSize     int
	maxPages     int
	client       *http.Client
	rateLimiter  *RateLimiter
	log          *slog.Logger
}

// Option configures the HTTPSource.
type Option func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *HTTPSource) {
		s.client = hc
	}
}

// WithAPIToken sets the bearer token sent with every request.
func WithAPIToken(token string) Option {
	return func(s *HTTPSource) {
		s.apiToken = token
	}
}

// WithListingsPath overrides the collection path, "/api/bikes" by default.
func WithListingsPath(p string) Option {
	return func(s *HTTPSource) {
		s.listingsPath = p
	}
}

// WithPageSize overrides the default page size.
func WithPageSize(n int) Option {
	return func(s *HTTPSource) {
		s.pageSize = n
	}
}

// WithMaxPages caps how many pages a single fetch will read.
func WithMaxPages(n int) Option {
	return func(s *HTTPSource) {
		s.maxPages = n
	}
}

// WithRateLimiter injects a rate limiter. When set, every page request goes
// through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(s *HTTPSource) {
		s.rateLimiter = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *HTTPSource) {
		s.log = l
	}
}

// NewHTTPSource creates a CMS client rooted at baseURL.
func NewHTTPSource(baseURL string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		baseURL:      strings.TrimRight(baseURL, "/"),
		listingsPath: defaultListingsPath,
		pageSize:     defaultPageSize,
		maxPages:     defaultMaxPages,
		client:       &http.Client{Timeout: 30 * time.Second},
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pageSize <= 0 {
		s.pageSize = defaultPageSize
	}
	if s.maxPages <= 0 {
		s.maxPages = defaultMaxPages
	}
	return s
}

// FetchListings implements Source by reading every page of the collection
// and converting the entries into domain listings. A failure on any page
// fails the whole fetch so callers never see a partial collection.
func (s *HTTPSource) FetchListings(ctx context.Context) (*FetchResult, error) {
	start := time.Now()
	defer func() {
		metrics.CMSFetchDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		raw   []RawListing
		pages int
		total int
	)

	for page := 1; page <= s.maxPages; page++ {
		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			metrics.CMSErrorsTotal.Inc()
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		pages++
		raw = append(raw, resp.Data...)
		total = resp.Meta.Pagination.Total

		if len(resp.Data) == 0 || page >= resp.Meta.Pagination.PageCount {
			break
		}
		if page == s.maxPages {
			s.log.Warn("cms page cap reached",
				"max_pages", s.maxPages,
				"page_count", resp.Meta.Pagination.PageCount,
			)
		}
	}

	listings, skipped := ToListings(raw, s.baseURL)
	if skipped > 0 {
		metrics.CMSSkippedListingsTotal.Add(float64(skipped))
		s.log.Warn("cms entries skipped", "skipped", skipped)
	}

	if total == 0 {
		total = len(raw)
	}

	return &FetchResult{
		Listings: listings,
		Skipped:  skipped,
		Pages:    pages,
		Total:    total,
	}, nil
}

func (s *HTTPSource) fetchPage(ctx context.Context, page int) (*ListingsPage, error) {
	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	metrics.CMSRequestsTotal.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL(page), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%w (status %d): %s",
			ErrUnexpectedStatus,
			resp.StatusCode,
			string(body),
		)
	}

	var p ListingsPage
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parsing listings response: %w", err)
	}
	return &p, nil
}

func (s *HTTPSource) pageURL(page int) string {
	params := url.Values{}
	params.Set("pagination[page]", strconv.Itoa(page))
	params.Set("pagination[pageSize]", strconv.Itoa(s.pageSize))
	params.Set("populate", "image")
	return s.baseURL + s.listingsPath + "?" + params.Encode()
}
