package enquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/infinitidrive/infiniti-drive/internal/metrics"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

var (
	// ErrQueueFull is returned by Enqueue when the dispatch queue is saturated.
	ErrQueueFull = errors.New("enquiry queue full")
	// ErrStopped is returned by Enqueue after Stop has been called.
	ErrStopped = errors.New("enquiry dispatcher stopped")
)

const (
	defaultQueueSize   = 64
	defaultWorkers     = 1
	defaultTimeout     = 15 * time.Second
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// Dispatcher accepts enquiries from request handlers and delivers them on
// background workers. Delivery failures are logged and counted; they never
// reach the person who submitted the form.
type Dispatcher struct {
	submitter   Submitter
	log         *slog.Logger
	queue       chan *domain.Enquiry
	workers     int
	timeout     time.Duration
	maxAttempts int
	baseDelay   time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	// aborted is cancelled when Stop runs out of time. In-flight attempts
	// and back-off end, and whatever is still queued is abandoned.
	aborted context.Context
	abort   context.CancelFunc
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithQueueSize sets the queue capacity.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan *domain.Enquiry, n)
		}
	}
}

// WithWorkers sets the number of delivery goroutines.
func WithWorkers(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithSubmitTimeout bounds each delivery attempt.
func WithSubmitTimeout(t time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if t > 0 {
			d.timeout = t
		}
	}
}

// WithRetry sets the attempt count and the initial back-off, which doubles
// after each failed attempt.
func WithRetry(maxAttempts int, baseDelay time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if maxAttempts > 0 {
			d.maxAttempts = maxAttempts
		}
		if baseDelay >= 0 {
			d.baseDelay = baseDelay
		}
	}
}

// NewDispatcher creates a Dispatcher. Call Start to begin delivery.
func NewDispatcher(s Submitter, log *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	aborted, abort := context.WithCancel(context.Background())
	d := &Dispatcher{
		submitter:   s,
		log:         log,
		queue:       make(chan *domain.Enquiry, defaultQueueSize),
		workers:     defaultWorkers,
		timeout:     defaultTimeout,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		aborted:     aborted,
		abort:       abort,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the delivery workers.
func (d *Dispatcher) Start() {
	for range d.workers {
		d.wg.Go(d.run)
	}
	d.log.Info("enquiry dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

// Enqueue hands an enquiry to the workers without blocking. It returns
// ErrQueueFull when the queue is saturated and ErrStopped after Stop.
func (d *Dispatcher) Enqueue(e *domain.Enquiry) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- e:
		metrics.EnquiriesQueuedTotal.Inc()
		return nil
	default:
		metrics.EnquiriesDroppedTotal.Inc()
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for the workers to deliver what is
// already queued. If ctx expires first, the in-flight attempt is cancelled,
// the remaining queue is abandoned without delivery attempts, and the
// context error is returned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.abort()
		d.log.Info("enquiry dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.abort()
		return fmt.Errorf("draining enquiry queue: %w", ctx.Err())
	}
}

func (d *Dispatcher) run() {
	for e := range d.queue {
		if d.aborted.Err() != nil {
			d.abandon(e)
			continue
		}
		d.deliver(e)
	}
}

func (d *Dispatcher) abandon(e *domain.Enquiry) {
	metrics.EnquiriesAbandonedTotal.Inc()
	d.log.Error("enquiry abandoned on shutdown", "reference", e.Reference)
}

func (d *Dispatcher) deliver(e *domain.Enquiry) {
	delay := d.baseDelay

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err := d.submitOnce(e)
		if err == nil {
			metrics.EnquiriesSentTotal.Inc()
			d.log.Info("enquiry delivered", "reference", e.Reference, "attempt", attempt)
			return
		}

		metrics.EnquiryFailuresTotal.Inc()
		if attempt == d.maxAttempts {
			d.log.Error("enquiry delivery failed",
				"reference", e.Reference,
				"attempts", attempt,
				"error", err,
			)
			return
		}

		if d.aborted.Err() != nil {
			d.abandon(e)
			return
		}

		d.log.Warn("enquiry delivery failed, retrying",
			"reference", e.Reference,
			"attempt", attempt,
			"retry_in", delay,
			"error", err,
		)

		select {
		case <-time.After(delay):
		case <-d.aborted.Done():
			d.abandon(e)
			return
		}
		delay *= 2
	}
}

func (d *Dispatcher) submitOnce(e *domain.Enquiry) error {
	ctx, cancel := context.WithTimeout(d.aborted, d.timeout)
	defer cancel()
	return d.submitter.Submit(ctx, e)
}
