package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the inventory on a fixed interval.
type Scheduler struct {
	cron    *cron.Cron
	inv     *Inventory
	timeout time.Duration
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that refreshes inv every interval. Each
// refresh is bounded by timeout.
func NewScheduler(
	inv *Inventory,
	interval time.Duration,
	timeout time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		inv:     inv,
		timeout: timeout,
		log:     log,
	}

	if _, err := c.AddFunc(
		"@every "+interval.String(),
		s.runRefresh,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled refreshes.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running refresh to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.log.Debug("scheduled inventory refresh starting")
	if err := s.inv.Refresh(ctx); err != nil {
		s.log.Error("scheduled inventory refresh failed", "error", err)
	}
}
