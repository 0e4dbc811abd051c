package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/infinitidrive/infiniti-drive/internal/config"
)

// SiteHandler serves the dealership contact details.
type SiteHandler struct {
	site config.SiteConfig
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(site config.SiteConfig) *SiteHandler {
	return &SiteHandler{site: site}
}

// SiteOutput is the response for the site details endpoint.
type SiteOutput struct {
	Body config.SiteConfig
}

// Get returns the configured dealership details.
func (h *SiteHandler) Get(_ context.Context, _ *struct{}) (*SiteOutput, error) {
	return &SiteOutput{Body: h.site}, nil
}

// RegisterSiteRoutes registers the site details endpoint with the Huma API.
func RegisterSiteRoutes(api huma.API, h *SiteHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-site",
		Method:      http.MethodGet,
		Path:        "/api/v1/site",
		Summary:     "Dealership details",
		Description: "Returns the phone numbers, email addresses, address, and opening hours shown on the contact page.",
		Tags:        []string{"site"},
	}, h.Get)
}
