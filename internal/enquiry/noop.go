package enquiry

import (
	"context"
	"log/slog"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// NoOpSubmitter implements Submitter by logging discarded enquiries. It is
// used when no inbox is configured.
type NoOpSubmitter struct {
	log *slog.Logger
}

// NewNoOpSubmitter creates a submitter that discards enquiries with a log message.
func NewNoOpSubmitter(log *slog.Logger) *NoOpSubmitter {
	return &NoOpSubmitter{log: log}
}

// Submit logs and discards the enquiry.
func (n *NoOpSubmitter) Submit(_ context.Context, e *domain.Enquiry) error {
	n.log.Info("enquiry discarded (no inbox configured)",
		"reference", e.Reference,
		"subject", e.Subject,
		"listing_id", e.ListingID,
	)
	return nil
}
