// Package domain defines the core business types for the Infiniti Drive catalogue.
package domain

import (
	"math"
	"time"
)

// BrandAny is the brand sentinel that disables brand filtering.
const BrandAny = "any"

// PriceCeiling is the saturating upper price bound used when a maximum is
// supplied but cannot be parsed.
const PriceCeiling = math.MaxInt

// Listing is one motorcycle offered for sale, normalized from the CMS.
// Listings are materialized once per load and never edited in place.
type Listing struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description,omitempty"`
	KmDriven    int    `json:"km_driven"`
	Year        int    `json:"year"`
	Owner       string `json:"owner,omitempty"`
	Price       int    `json:"price"`

	// Specifications
	Engine       string `json:"engine,omitempty"`
	Horsepower   string `json:"horsepower,omitempty"`
	Torque       string `json:"torque,omitempty"`
	FuelType     string `json:"fuel_type,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	TopSpeed     int    `json:"top_speed"`
	Mileage      int    `json:"mileage"`

	Sold     bool   `json:"sold"`
	ImageURL string `json:"image_url,omitempty"`
}

// SortKey selects the ordering applied to a catalogue query.
type SortKey string

// Sort key constants.
const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortYearNew   SortKey = "year-new"
	SortYearOld   SortKey = "year-old"
	SortKmLow     SortKey = "km-low"
	SortKmHigh    SortKey = "km-high"
)

// SortKeys lists every supported sort key, default first.
var SortKeys = []SortKey{
	SortName,
	SortPriceLow,
	SortPriceHigh,
	SortYearNew,
	SortYearOld,
	SortKmLow,
	SortKmHigh,
}

// Visibility controls whether sold, available, or all listings are shown.
type Visibility string

// Visibility constants.
const (
	VisibilityAll       Visibility = "all"
	VisibilityAvailable Visibility = "available"
	VisibilitySold      Visibility = "sold"
)

// Criteria is the search, filter, and sort selection applied by a user.
type Criteria struct {
	SearchText string     `json:"search"`
	Brand      string     `json:"brand"`
	PriceMin   int        `json:"price_min"`
	PriceMax   int        `json:"price_max"`
	Visibility Visibility `json:"visibility"`
	Sort       SortKey    `json:"sort"`
}

// LoadStatus is the state of the listing collection fetch.
type LoadStatus string

// Load status constants.
const (
	LoadPending LoadStatus = "pending"
	LoadReady   LoadStatus = "ready"
	LoadFailed  LoadStatus = "failed"
)

// ViewState tells a consuming view which of its four states to render.
type ViewState string

// View state constants.
const (
	ViewLoading ViewState = "loading"
	ViewResults ViewState = "results"
	ViewEmpty   ViewState = "empty"
	ViewError   ViewState = "error"
)

// EnquirySubject categorizes a contact form submission.
type EnquirySubject string

// Enquiry subject constants.
const (
	SubjectGeneral   EnquirySubject = "general"
	SubjectBike      EnquirySubject = "bike"
	SubjectFinancing EnquirySubject = "financing"
	SubjectService   EnquirySubject = "service"
	SubjectTrade     EnquirySubject = "trade"
	SubjectOther     EnquirySubject = "other"
)

// Enquiry is a contact form submission forwarded to the dealership inbox.
type Enquiry struct {
	Reference   string         `json:"reference"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Subject     EnquirySubject `json:"subject"`
	Message     string         `json:"message"`
	ListingID   string         `json:"listing_id,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// EnquirySubjects lists every accepted enquiry subject.
var EnquirySubjects = []EnquirySubject{
	SubjectGeneral,
	SubjectBike,
	SubjectFinancing,
	SubjectService,
	SubjectTrade,
	SubjectOther,
}
