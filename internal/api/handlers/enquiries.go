package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/infinitidrive/infiniti-drive/internal/enquiry"
	"github.com/infinitidrive/infiniti-drive/internal/inventory"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// Enqueuer accepts validated enquiries for background delivery.
type Enqueuer interface {
	Enqueue(e *domain.Enquiry) error
}

// EnquiryHandler accepts contact form submissions.
type EnquiryHandler struct {
	queue   Enqueuer
	inv     InventoryReader
	nowFunc func() time.Time
}

// EnquiryOption configures an EnquiryHandler.
type EnquiryOption func(*EnquiryHandler)

// WithClock overrides the clock used to stamp submissions.
func WithClock(f func() time.Time) EnquiryOption {
	return func(h *EnquiryHandler) {
		h.nowFunc = f
	}
}

// NewEnquiryHandler creates a new EnquiryHandler. inv may be nil, in which
// case listing references are not checked.
func NewEnquiryHandler(queue Enqueuer, inv InventoryReader, opts ...EnquiryOption) *EnquiryHandler {
	h := &EnquiryHandler{
		queue:   queue,
		inv:     inv,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SubmitEnquiryInput is the contact form body.
type SubmitEnquiryInput struct {
	Body struct {
		Name      string `json:"name"                 doc:"Sender's name"`
		Email     string `json:"email"                doc:"Reply address"`
		Phone     string `json:"phone,omitempty"      doc:"Optional phone number"`
		Subject   string `json:"subject,omitempty"    doc:"general (default), bike, financing, service, trade, or other"`
		Message   string `json:"message"              doc:"Enquiry text"`
		ListingID string `json:"listing_id,omitempty" doc:"Listing the enquiry is about"`
	}
}

// SubmitEnquiryOutput acknowledges an accepted enquiry.
type SubmitEnquiryOutput struct {
	Body struct {
		Reference string `json:"reference" example:"ID-20260314-100000-A1B2C3D4" doc:"Reference to quote in follow-ups"`
		Status    string `json:"status"    example:"queued"`
	}
}

// Submit validates an enquiry and queues it for delivery.
func (h *EnquiryHandler) Submit(
	_ context.Context,
	input *SubmitEnquiryInput,
) (*SubmitEnquiryOutput, error) {
	e := &domain.Enquiry{
		Name:      input.Body.Name,
		Email:     input.Body.Email,
		Phone:     input.Body.Phone,
		Subject:   domain.EnquirySubject(input.Body.Subject),
		Message:   input.Body.Message,
		ListingID: input.Body.ListingID,
	}
	enquiry.Normalize(e)

	if err := enquiry.Validate(e); err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid enquiry", detailsFor(enquiry.FieldErrors(err))...)
	}

	if err := h.checkListing(e.ListingID); err != nil {
		return nil, err
	}

	now := h.nowFunc()
	e.SubmittedAt = now.UTC()
	e.Reference = enquiry.NewReference(now)

	if err := h.queue.Enqueue(e); err != nil {
		if errors.Is(err, enquiry.ErrQueueFull) || errors.Is(err, enquiry.ErrStopped) {
			return nil, huma.Error503ServiceUnavailable("enquiries are not being accepted right now, please try again shortly")
		}
		return nil, huma.Error500InternalServerError("queueing enquiry: " + err.Error())
	}

	resp := &SubmitEnquiryOutput{}
	resp.Body.Reference = e.Reference
	resp.Body.Status = "queued"
	return resp, nil
}

// checkListing rejects a reference to a listing that is not in the loaded
// collection. While the collection is loading or unavailable the reference
// is passed through unchecked.
func (h *EnquiryHandler) checkListing(id string) error {
	if id == "" || h.inv == nil {
		return nil
	}
	if _, err := h.inv.Listing(id); errors.Is(err, inventory.ErrNotFound) {
		return huma.Error422UnprocessableEntity("invalid enquiry", &huma.ErrorDetail{
			Message:  "listing does not exist",
			Location: "body.listing_id",
			Value:    id,
		})
	}
	return nil
}

func detailsFor(fes []*enquiry.FieldError) []error {
	details := make([]error, 0, len(fes))
	for _, fe := range fes {
		details = append(details, &huma.ErrorDetail{
			Message:  fe.Message,
			Location: "body." + fe.Field,
			Value:    fe.Value,
		})
	}
	return details
}

// RegisterEnquiryRoutes registers the enquiry endpoint with the Huma API.
func RegisterEnquiryRoutes(api huma.API, h *EnquiryHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-enquiry",
		Method:        http.MethodPost,
		Path:          "/api/v1/enquiries",
		Summary:       "Submit an enquiry",
		Description:   "Validates a contact form submission and queues it for delivery to the dealership inbox.",
		Tags:          []string{"enquiries"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Submit)
}
