package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/infinitidrive/infiniti-drive/internal/inventory"
	"github.com/infinitidrive/infiniti-drive/pkg/catalogue"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

var loadedAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// fakeInventory implements handlers.InventoryReader over a fixed snapshot.
type fakeInventory struct {
	snap *inventory.Snapshot
}

func (f *fakeInventory) Snapshot() *inventory.Snapshot {
	return f.snap
}

func (f *fakeInventory) Listing(id string) (domain.Listing, error) {
	switch f.snap.Status {
	case domain.LoadPending:
		return domain.Listing{}, inventory.ErrNotLoaded
	case domain.LoadFailed:
		return domain.Listing{}, f.snap.Err
	}
	l, ok := catalogue.Find(f.snap.Listings, id)
	if !ok {
		return domain.Listing{}, inventory.ErrNotFound
	}
	return l, nil
}

func readyInventory(listings []domain.Listing) *fakeInventory {
	return &fakeInventory{snap: &inventory.Snapshot{
		Status:   domain.LoadReady,
		Listings: listings,
		LoadedAt: loadedAt,
	}}
}

func pendingInventory() *fakeInventory {
	return &fakeInventory{snap: &inventory.Snapshot{Status: domain.LoadPending}}
}

func failedInventory() *fakeInventory {
	return &fakeInventory{snap: &inventory.Snapshot{
		Status: domain.LoadFailed,
		Err:    errors.New("cms unreachable"),
	}}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
