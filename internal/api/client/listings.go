package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// CollectionStatus mirrors the collection state carried by catalogue responses.
type CollectionStatus struct {
	State    domain.ViewState `json:"state"`
	Error    string           `json:"error,omitempty"`
	LoadedAt *time.Time       `json:"loaded_at,omitempty"`
	Stale    bool             `json:"stale,omitempty"`
}

// Section is one list of listings in a catalogue response.
type Section struct {
	Name     string           `json:"name"`
	State    domain.ViewState `json:"state"`
	Listings []domain.Listing `json:"listings"`
}

// ListingsResponse is the catalogue query response.
type ListingsResponse struct {
	CollectionStatus
	View     string          `json:"view"`
	Criteria domain.Criteria `json:"criteria"`
	Total    int             `json:"total"`
	Shown    int             `json:"shown"`
	Brands   []string        `json:"brands"`
	Sections []Section       `json:"sections"`
}

// ListListingsParams defines query parameters for catalogue queries. Zero
// values are omitted so the server applies its defaults.
type ListListingsParams struct {
	Search      string
	Brand       string
	PriceMin    int
	PriceMax    int
	Visibility  string
	Sort        string
	Partitioned bool
}

// ListListings runs a catalogue query.
func (c *Client) ListListings(
	ctx context.Context,
	params *ListListingsParams,
) (*ListingsResponse, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Brand != "" {
		q.Set("brand", params.Brand)
	}
	if params.PriceMin > 0 {
		q.Set("price_min", strconv.Itoa(params.PriceMin))
	}
	if params.PriceMax > 0 {
		q.Set("price_max", strconv.Itoa(params.PriceMax))
	}
	if params.Visibility != "" {
		q.Set("visibility", params.Visibility)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Partitioned {
		q.Set("view", "partitioned")
	}

	path := "/api/v1/listings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListingsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetListing returns a single listing by ID.
func (c *Client) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	if err := c.get(ctx, "/api/v1/listings/"+url.PathEscape(id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// HomeResponse is the home page summary.
type HomeResponse struct {
	CollectionStatus
	Featured        []domain.Listing `json:"featured"`
	Total           int              `json:"total"`
	Available       int              `json:"available"`
	Sold            int              `json:"sold"`
	Brands          []string         `json:"brands"`
	DefaultCriteria domain.Criteria  `json:"default_criteria"`
	SortKeys        []domain.SortKey `json:"sort_keys"`
}

// Home returns the home page summary.
func (c *Client) Home(ctx context.Context) (*HomeResponse, error) {
	var resp HomeResponse
	if err := c.get(ctx, "/api/v1/home", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BrandsResponse lists the brands in the collection.
type BrandsResponse struct {
	CollectionStatus
	Brands []string `json:"brands"`
}

// ListBrands returns the distinct brands in the collection.
func (c *Client) ListBrands(ctx context.Context) (*BrandsResponse, error) {
	var resp BrandsResponse
	if err := c.get(ctx, "/api/v1/brands", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
