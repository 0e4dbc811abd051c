// Package handlers implements HTTP handlers for the infiniti-drive API.
package handlers

import (
	"github.com/infinitidrive/infiniti-drive/internal/inventory"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// InventoryReader provides read access to the current listing collection.
type InventoryReader interface {
	Snapshot() *inventory.Snapshot
	Listing(id string) (domain.Listing, error)
}
