package client

import (
	"context"
)

// EnquiryRequest is a contact form submission.
type EnquiryRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
	ListingID string `json:"listing_id,omitempty"`
}

// EnquiryReceipt acknowledges a queued enquiry.
type EnquiryReceipt struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// SubmitEnquiry sends a contact form submission.
func (c *Client) SubmitEnquiry(ctx context.Context, req *EnquiryRequest) (*EnquiryReceipt, error) {
	var resp EnquiryReceipt
	if err := c.post(ctx, "/api/v1/enquiries", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SiteDetails is the dealership contact information.
type SiteDetails struct {
	Name    string            `json:"name"`
	Tagline string            `json:"tagline,omitempty"`
	Phones  []string          `json:"phones"`
	Emails  []string          `json:"emails"`
	Address string            `json:"address,omitempty"`
	Hours   []string          `json:"hours"`
	Social  map[string]string `json:"social,omitempty"`
}

// Site returns the dealership contact information.
func (c *Client) Site(ctx context.Context) (*SiteDetails, error) {
	var resp SiteDetails
	if err := c.get(ctx, "/api/v1/site", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
