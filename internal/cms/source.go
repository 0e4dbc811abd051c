// Package cms fetches the listing collection from the headless CMS and
// translates it into domain listings.
package cms

import (
	"context"
	"errors"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// ErrUnexpectedStatus is returned when the CMS answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected CMS response status")

// FetchResult is one complete read of the listing collection.
type FetchResult struct {
	Listings []domain.Listing
	// Skipped counts CMS entries dropped for a missing or duplicate ID.
	Skipped int
	Pages   int
	// Total is the entry count the CMS reported, before skipping.
	Total int
}

// Source defines the interface for reading the listing collection.
type Source interface {
	FetchListings(ctx context.Context) (*FetchResult, error)
}
