// Package inventory holds the current listing collection fetched from the CMS
// and refreshes it on a schedule.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/infinitidrive/infiniti-drive/internal/cms"
	"github.com/infinitidrive/infiniti-drive/internal/metrics"
	"github.com/infinitidrive/infiniti-drive/pkg/catalogue"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// ErrNotLoaded is returned by Listing while no collection has loaded yet.
var ErrNotLoaded = errors.New("inventory not loaded")

// ErrNotFound is returned by Listing when no listing has the requested ID.
var ErrNotFound = errors.New("listing not found")

// Snapshot is an immutable view of the collection at one point in time.
type Snapshot struct {
	Status   domain.LoadStatus
	Listings []domain.Listing
	// Err is the error of the load that produced a failed snapshot.
	Err error
	// LastError is the most recent refresh failure, kept alongside a ready
	// collection when a later refresh fails.
	LastError error
	LoadedAt  time.Time
}

// Ready reports whether the snapshot holds a usable collection.
func (s *Snapshot) Ready() bool {
	return s.Status == domain.LoadReady
}

// Inventory serves the latest snapshot to concurrent readers while refreshes
// replace it wholesale.
type Inventory struct {
	source  cms.Source
	log     *slog.Logger
	current atomic.Pointer[Snapshot]
	nowFunc func() time.Time

	// refreshMu serializes refreshes so a slow fetch cannot overwrite a newer one.
	refreshMu sync.Mutex
}

// Option configures the Inventory.
type Option func(*Inventory)

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(i *Inventory) {
		i.nowFunc = f
	}
}

// New creates an Inventory in the pending state.
func New(source cms.Source, log *slog.Logger, opts ...Option) *Inventory {
	inv := &Inventory{
		source:  source,
		log:     log,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(inv)
	}
	inv.current.Store(&Snapshot{Status: domain.LoadPending})
	return inv
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (i *Inventory) Snapshot() *Snapshot {
	return i.current.Load()
}

// Refresh fetches the collection from the source and swaps in a new
// snapshot. If the fetch fails and a collection has loaded before, the old
// collection stays ready and the failure is recorded in LastError.
func (i *Inventory) Refresh(ctx context.Context) error {
	i.refreshMu.Lock()
	defer i.refreshMu.Unlock()

	res, err := i.source.FetchListings(ctx)
	if err != nil {
		metrics.InventoryRefreshFailuresTotal.Inc()
		i.storeFailure(err)
		return fmt.Errorf("fetching listings: %w", err)
	}

	now := i.nowFunc()
	i.current.Store(&Snapshot{
		Status:   domain.LoadReady,
		Listings: res.Listings,
		LoadedAt: now,
	})

	available, sold := catalogue.Partition(res.Listings)
	metrics.InventoryListings.WithLabelValues("available").Set(float64(len(available)))
	metrics.InventoryListings.WithLabelValues("sold").Set(float64(len(sold)))
	metrics.InventoryLastRefreshTimestamp.Set(float64(now.Unix()))

	i.log.Info("inventory refreshed",
		"listings", len(res.Listings),
		"available", len(available),
		"sold", len(sold),
		"skipped", res.Skipped,
		"pages", res.Pages,
	)
	return nil
}

func (i *Inventory) storeFailure(err error) {
	prev := i.current.Load()
	if prev.Ready() {
		next := *prev
		next.LastError = err
		i.current.Store(&next)
		i.log.Warn("inventory refresh failed, serving previous collection",
			"error", err,
			"loaded_at", prev.LoadedAt,
		)
		return
	}

	i.current.Store(&Snapshot{Status: domain.LoadFailed, Err: err})
	i.log.Error("inventory load failed", "error", err)
}

// Listing returns the listing with the given ID from the current snapshot.
// It returns ErrNotLoaded while pending, the load error when the snapshot
// failed, and ErrNotFound for an unknown ID.
func (i *Inventory) Listing(id string) (domain.Listing, error) {
	snap := i.Snapshot()
	switch snap.Status {
	case domain.LoadPending:
		return domain.Listing{}, ErrNotLoaded
	case domain.LoadFailed:
		return domain.Listing{}, snap.Err
	}

	l, ok := catalogue.Find(snap.Listings, id)
	if !ok {
		return domain.Listing{}, ErrNotFound
	}
	return l, nil
}
