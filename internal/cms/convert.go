package cms

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// intRegexp captures the first integer in a text field, e.g. "≈ 240 km/h".
var intRegexp = regexp.MustCompile(`-?\d+`)

// ToListings converts raw CMS entries into domain listings. Entries without
// an ID, or repeating an ID already seen, are skipped and counted; the first
// occurrence wins. baseURL resolves relative image paths.
func ToListings(raw []RawListing, baseURL string) ([]domain.Listing, int) {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]struct{}, len(raw))
	listings := make([]domain.Listing, 0, len(raw))
	skipped := 0

	for i := range raw {
		l := toListing(&raw[i], base)
		if l.ID == "" {
			skipped++
			continue
		}
		if _, dup := seen[l.ID]; dup {
			skipped++
			continue
		}
		seen[l.ID] = struct{}{}
		listings = append(listings, l)
	}
	return listings, skipped
}

func toListing(r *RawListing, base *url.URL) domain.Listing {
	id := strings.TrimSpace(r.DocumentID)
	if id == "" {
		id = r.ID.String()
	}

	l := domain.Listing{
		ID:           id,
		Name:         strings.TrimSpace(r.Name),
		Brand:        strings.TrimSpace(r.Brand),
		Description:  strings.TrimSpace(r.Description),
		Owner:        strings.TrimSpace(r.Owner),
		Price:        ParseInt(r.Price.String()),
		Year:         ParseInt(r.Year.String()),
		KmDriven:     ParseInt(r.KmDriven.String()),
		Engine:       strings.TrimSpace(r.Engine),
		Horsepower:   strings.TrimSpace(r.Horsepower),
		Torque:       strings.TrimSpace(r.Torque),
		FuelType:     strings.TrimSpace(r.FuelType),
		Transmission: strings.TrimSpace(r.Transmission),
		TopSpeed:     ParseInt(r.TopSpeed.String()),
		Mileage:      ParseInt(r.Mileage.String()),
		Sold:         r.Sold != nil && *r.Sold,
	}

	if r.Image != nil {
		switch {
		case r.Image.URL != "":
			l.ImageURL = resolveURL(base, r.Image.URL)
		case r.Image.Formats.Thumbnail != nil && r.Image.Formats.Thumbnail.URL != "":
			l.ImageURL = resolveURL(base, r.Image.Formats.Thumbnail.URL)
		}
	}

	return l
}

// ParseInt extracts the first integer from s after removing grouping commas.
// Text without a number, and negative values, yield 0.
func ParseInt(s string) int {
	match := intRegexp.FindString(strings.ReplaceAll(s, ",", ""))
	if match == "" {
		return 0
	}
	v, err := strconv.Atoi(match)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil || u.IsAbs() {
		return u.String()
	}
	return base.ResolveReference(u).String()
}
