// Package catalogue implements the pure catalogue query engine: the filter
// predicate, the sort comparator selector, and their composition over an
// in-memory listing collection. Nothing in this package performs I/O or keeps
// state between calls, so every function is safe for concurrent use.
package catalogue

import (
	"strconv"
	"strings"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// DefaultPriceMax is the upper price bound of DefaultCriteria.
const DefaultPriceMax = 5_000_000

// DefaultCriteria returns the criteria every view starts from and resets to
// when filters are cleared.
func DefaultCriteria() domain.Criteria {
	return domain.Criteria{
		SearchText: "",
		Brand:      domain.BrandAny,
		PriceMin:   0,
		PriceMax:   DefaultPriceMax,
		Visibility: domain.VisibilityAll,
		Sort:       domain.SortName,
	}
}

// RawCriteria holds criteria exactly as typed by a user: every field is text
// and may be empty or malformed.
type RawCriteria struct {
	Search     string
	Brand      string
	PriceMin   string
	PriceMax   string
	Visibility string
	Sort       string
}

// ParseCriteria coerces user input into Criteria. It never fails. Empty
// fields take their value from DefaultCriteria, so ParseCriteria(RawCriteria{})
// equals DefaultCriteria(). A minimum that is present but unparsable becomes
// 0, an unparsable maximum becomes domain.PriceCeiling, negative bounds clamp
// to 0, and unknown brand, sort, or visibility values fall back to their
// defaults.
func ParseCriteria(raw RawCriteria) domain.Criteria {
	def := DefaultCriteria()
	return domain.Criteria{
		SearchText: strings.TrimSpace(raw.Search),
		Brand:      ParseBrand(raw.Brand),
		PriceMin:   parseBound(raw.PriceMin, def.PriceMin, 0),
		PriceMax:   parseBound(raw.PriceMax, def.PriceMax, domain.PriceCeiling),
		Visibility: ParseVisibility(raw.Visibility),
		Sort:       ParseSortKey(raw.Sort),
	}
}

// ParseBrand normalizes a brand selection. Empty input and any casing of
// "any" select every brand.
func ParseBrand(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, domain.BrandAny) {
		return domain.BrandAny
	}
	return s
}

// ParseSortKey returns the matching sort key, or domain.SortName when s is
// not a supported key.
func ParseSortKey(s string) domain.SortKey {
	key := domain.SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range domain.SortKeys {
		if k == key {
			return k
		}
	}
	return domain.SortName
}

// ParseVisibility returns the matching visibility, or domain.VisibilityAll.
func ParseVisibility(s string) domain.Visibility {
	switch v := domain.Visibility(strings.ToLower(strings.TrimSpace(s))); v {
	case domain.VisibilityAvailable, domain.VisibilitySold:
		return v
	default:
		return domain.VisibilityAll
	}
}

func parseBound(s string, empty, malformed int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return empty
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return malformed
	}
	return max(v, 0)
}
