package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/infinitidrive/infiniti-drive/internal/inventory"
	"github.com/infinitidrive/infiniti-drive/internal/metrics"
	"github.com/infinitidrive/infiniti-drive/pkg/catalogue"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

const (
	viewSingle      = "single"
	viewPartitioned = "partitioned"

	sectionAll       = "all"
	sectionAvailable = "available"
	sectionSold      = "sold"
)

// CatalogueHandler serves the home page summary and the catalogue query.
type CatalogueHandler struct {
	inv           InventoryReader
	featuredCount int
}

// NewCatalogueHandler creates a new CatalogueHandler.
func NewCatalogueHandler(inv InventoryReader, featuredCount int) *CatalogueHandler {
	return &CatalogueHandler{inv: inv, featuredCount: featuredCount}
}

// --- Input/Output types ---

// CollectionStatus describes the listing collection behind a response.
type CollectionStatus struct {
	State    domain.ViewState `json:"state"               doc:"Which view to render: loading, results, empty, or error" enum:"loading,results,empty,error"`
	Error    string           `json:"error,omitempty"     doc:"Why the collection could not be loaded"`
	LoadedAt *time.Time       `json:"loaded_at,omitempty" doc:"When the collection was last loaded"`
	Stale    bool             `json:"stale,omitempty"     doc:"The last refresh failed and an older collection is being served"`
}

// HomeInput is the input for the home page summary.
type HomeInput struct{}

// HomeOutput is the response for the home page summary.
type HomeOutput struct {
	Body struct {
		CollectionStatus
		Featured        []domain.Listing `json:"featured"`
		Total           int              `json:"total"`
		Available       int              `json:"available"`
		Sold            int              `json:"sold"`
		Brands          []string         `json:"brands"`
		DefaultCriteria domain.Criteria  `json:"default_criteria"`
		SortKeys        []domain.SortKey `json:"sort_keys"`
	}
}

// ListListingsInput is the catalogue query. Every field is free text;
// malformed values fall back to their defaults rather than failing.
type ListListingsInput struct {
	Search     string `query:"search"     doc:"Case-insensitive substring of the listing name"`
	Brand      string `query:"brand"      doc:"Exact brand, or 'any' (default) for every brand"`
	PriceMin   string `query:"price_min"  doc:"Inclusive lower price bound (default 0)"`
	PriceMax   string `query:"price_max"  doc:"Inclusive upper price bound (default 5000000; unparsable text means unbounded)"`
	Visibility string `query:"visibility" doc:"all (default), available, or sold"`
	Sort       string `query:"sort"       doc:"name (default), price-low, price-high, year-new, year-old, km-low, km-high"`
	View       string `query:"view"       doc:"single (default) or partitioned into available and sold sections"`
}

// Section is one list of listings in a catalogue response.
type Section struct {
	Name     string           `json:"name"     enum:"all,available,sold"`
	State    domain.ViewState `json:"state"    enum:"loading,results,empty,error"`
	Listings []domain.Listing `json:"listings"`
}

// ListListingsOutput is the response for the catalogue query.
type ListListingsOutput struct {
	Body struct {
		CollectionStatus
		View     string          `json:"view"     enum:"single,partitioned"`
		Criteria domain.Criteria `json:"criteria" doc:"The criteria after defaults were applied"`
		Total    int             `json:"total"    doc:"Listings in the collection before filtering"`
		Shown    int             `json:"shown"    doc:"Listings across all sections after filtering"`
		Brands   []string        `json:"brands"`
		Sections []Section       `json:"sections"`
	}
}

// GetListingInput is the input for getting a single listing.
type GetListingInput struct {
	ID string `path:"id" doc:"Listing ID"`
}

// GetListingOutput is the response for getting a single listing.
type GetListingOutput struct {
	Body domain.Listing
}

// ListBrandsInput is the input for listing brands.
type ListBrandsInput struct{}

// ListBrandsOutput is the response for listing brands.
type ListBrandsOutput struct {
	Body struct {
		CollectionStatus
		Brands []string `json:"brands"`
	}
}

// --- Handlers ---

// Home returns the featured listings and collection totals.
func (h *CatalogueHandler) Home(
	_ context.Context,
	_ *HomeInput,
) (*HomeOutput, error) {
	snap := h.inv.Snapshot()

	resp := &HomeOutput{}
	resp.Body.Featured = catalogue.Featured(snap.Listings, h.featuredCount)
	resp.Body.CollectionStatus = collectionStatus(snap, len(resp.Body.Featured))
	resp.Body.Brands = catalogue.Brands(snap.Listings)
	resp.Body.DefaultCriteria = catalogue.DefaultCriteria()
	resp.Body.SortKeys = domain.SortKeys

	available, sold := catalogue.Partition(snap.Listings)
	resp.Body.Total = len(snap.Listings)
	resp.Body.Available = len(available)
	resp.Body.Sold = len(sold)

	return resp, nil
}

// ListListings runs the catalogue query against the current collection.
func (h *CatalogueHandler) ListListings(
	_ context.Context,
	input *ListListingsInput,
) (*ListListingsOutput, error) {
	snap := h.inv.Snapshot()
	criteria := catalogue.ParseCriteria(catalogue.RawCriteria{
		Search:     input.Search,
		Brand:      input.Brand,
		PriceMin:   input.PriceMin,
		PriceMax:   input.PriceMax,
		Visibility: input.Visibility,
		Sort:       input.Sort,
	})

	resp := &ListListingsOutput{}
	resp.Body.Criteria = criteria
	resp.Body.Total = len(snap.Listings)
	resp.Body.Brands = catalogue.Brands(snap.Listings)

	if input.View == viewPartitioned {
		available, sold := catalogue.QueryPartitioned(snap.Listings, criteria)
		resp.Body.View = viewPartitioned
		resp.Body.Sections = []Section{
			newSection(sectionAvailable, snap.Status, available),
			newSection(sectionSold, snap.Status, sold),
		}
		resp.Body.Shown = len(available) + len(sold)
	} else {
		results := catalogue.Query(snap.Listings, criteria)
		resp.Body.View = viewSingle
		resp.Body.Sections = []Section{newSection(sectionAll, snap.Status, results)}
		resp.Body.Shown = len(results)
	}

	resp.Body.CollectionStatus = collectionStatus(snap, resp.Body.Shown)

	metrics.CatalogueQueriesTotal.WithLabelValues(string(criteria.Sort)).Inc()
	metrics.CatalogueResultSize.Observe(float64(resp.Body.Shown))

	return resp, nil
}

// GetListing returns a single listing by ID.
func (h *CatalogueHandler) GetListing(
	_ context.Context,
	input *GetListingInput,
) (*GetListingOutput, error) {
	l, err := h.inv.Listing(input.ID)
	switch {
	case err == nil:
		return &GetListingOutput{Body: l}, nil
	case errors.Is(err, inventory.ErrNotFound):
		return nil, huma.Error404NotFound("listing not found")
	case errors.Is(err, inventory.ErrNotLoaded):
		return nil, huma.Error503ServiceUnavailable("listings are still loading")
	default:
		return nil, huma.Error502BadGateway("listings could not be loaded: " + err.Error())
	}
}

// ListBrands returns the distinct brands in the collection.
func (h *CatalogueHandler) ListBrands(
	_ context.Context,
	_ *ListBrandsInput,
) (*ListBrandsOutput, error) {
	snap := h.inv.Snapshot()

	resp := &ListBrandsOutput{}
	resp.Body.Brands = catalogue.Brands(snap.Listings)
	resp.Body.CollectionStatus = collectionStatus(snap, len(resp.Body.Brands))
	return resp, nil
}

func newSection(name string, status domain.LoadStatus, listings []domain.Listing) Section {
	return Section{
		Name:     name,
		State:    catalogue.Classify(status, len(listings)),
		Listings: listings,
	}
}

func collectionStatus(snap *inventory.Snapshot, n int) CollectionStatus {
	cs := CollectionStatus{State: catalogue.Classify(snap.Status, n)}
	if snap.Err != nil {
		cs.Error = snap.Err.Error()
	}
	if snap.Ready() {
		loadedAt := snap.LoadedAt
		cs.LoadedAt = &loadedAt
		cs.Stale = snap.LastError != nil
	}
	return cs
}

// RegisterCatalogueRoutes registers home and catalogue endpoints with the Huma API.
func RegisterCatalogueRoutes(api huma.API, h *CatalogueHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-home",
		Method:      http.MethodGet,
		Path:        "/api/v1/home",
		Summary:     "Home page summary",
		Description: "Returns the featured listings, collection totals, brands, and the default catalogue criteria.",
		Tags:        []string{"catalogue"},
	}, h.Home)

	huma.Register(api, huma.Operation{
		OperationID: "list-listings",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings",
		Summary:     "Query the catalogue",
		Description: "Filters the listing collection by search text, brand, price range, and sold visibility, then sorts it. " +
			"With view=partitioned the same criteria are applied separately to available and sold listings.",
		Tags: []string{"catalogue"},
	}, h.ListListings)

	huma.Register(api, huma.Operation{
		OperationID: "get-listing",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}",
		Summary:     "Get a listing by ID",
		Description: "Returns a single listing. Responds 503 while the collection is loading and 502 if it failed to load.",
		Tags:        []string{"catalogue"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.GetListing)

	huma.Register(api, huma.Operation{
		OperationID: "list-brands",
		Method:      http.MethodGet,
		Path:        "/api/v1/brands",
		Summary:     "List brands",
		Description: "Returns the distinct brands in the collection in first-seen order.",
		Tags:        []string{"catalogue"},
	}, h.ListBrands)
}
