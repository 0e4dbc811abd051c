package cms

import (
	"encoding/json"
	"strings"
)

// Text is a CMS field that may arrive as a JSON string, number, or null.
// Numbers are kept verbatim so they can be parsed like any other text.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(b)
	return nil
}

// String returns the trimmed text.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// RawListing is one bike entry as the CMS stores it. Every numeric field is
// text and the sold flag may be absent.
type RawListing struct {
	ID           Text   `json:"id"`
	DocumentID   string `json:"documentId,omitempty"`
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Description  string `json:"description,omitempty"`
	Price        Text   `json:"price"`
	Year         Text   `json:"year"`
	KmDriven     Text   `json:"kmDriven"`
	Owner        string `json:"owner,omitempty"`
	Engine       string `json:"engine,omitempty"`
	Horsepower   string `json:"horsepower,omitempty"`
	Torque       string `json:"torque,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	TopSpeed     Text   `json:"topSpeed"`
	Mileage      Text   `json:"mileage"`
	Sold         *bool  `json:"sold,omitempty"`
	Image        *Media `json:"image,omitempty"`
}

// Media is an uploaded file reference.
type Media struct {
	URL     string       `json:"url"`
	Formats MediaFormats `json:"formats"`
}

// MediaFormats holds the resized renditions the CMS generates.
type MediaFormats struct {
	Thumbnail *MediaFormat `json:"thumbnail,omitempty"`
}

// MediaFormat is a single rendition.
type MediaFormat struct {
	URL string `json:"url"`
}

// ListingsPage is a single page of the collection endpoint response.
type ListingsPage struct {
	Data []RawListing `json:"data"`
	Meta PageMeta     `json:"meta"`
}

// PageMeta wraps the pagination block.
type PageMeta struct {
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the page returned and the size of the collection.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}
