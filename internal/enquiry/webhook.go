package enquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// ErrRateLimited is returned when the receiver answers 429.
var ErrRateLimited = errors.New("rate limited (429)")

// WebhookSubmitter implements Submitter by posting each enquiry as JSON to an
// inbox endpoint, typically a CMS collection.
type WebhookSubmitter struct {
	url    string
	token  string
	client *http.Client
}

// WebhookOption configures a WebhookSubmitter.
type WebhookOption func(*WebhookSubmitter)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookSubmitter) {
		w.client = c
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) WebhookOption {
	return func(w *WebhookSubmitter) {
		w.token = token
	}
}

// NewWebhookSubmitter creates a new WebhookSubmitter.
func NewWebhookSubmitter(url string, opts ...WebhookOption) *WebhookSubmitter {
	w := &WebhookSubmitter{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// webhookPayload wraps the enquiry the way CMS collection endpoints expect.
type webhookPayload struct {
	Data *domain.Enquiry `json:"data"`
}

// Submit implements Submitter.
func (w *WebhookSubmitter) Submit(ctx context.Context, e *domain.Enquiry) error {
	return postJSON(ctx, w.client, w.url, w.token, "inbox", webhookPayload{Data: e})
}

// postJSON posts payload to url and maps the response status onto an error.
// name identifies the receiver in error messages.
func postJSON(ctx context.Context, client *http.Client, url, token, name string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s payload: %w", name, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending enquiry to %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", name, ErrRateLimited)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("%s returned %d (body unreadable)", name, resp.StatusCode)
		}
		return fmt.Errorf("%s returned %d: %s", name, resp.StatusCode, respBody)
	}

	return nil
}
