package catalogue

import (
	"strings"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// Matches reports whether l satisfies every component of c: a
// case-insensitive substring match of the search text against the name, brand
// equality unless c.Brand is domain.BrandAny, PriceMin <= price <= PriceMax,
// and the sold-visibility flag. A range with PriceMin > PriceMax matches
// nothing.
func Matches(l *domain.Listing, c *domain.Criteria) bool {
	return newPredicate(c).match(l)
}

// predicate caches the lowered search text so a query lowers it once rather
// than once per listing.
type predicate struct {
	needle     string
	brand      string
	priceMin   int
	priceMax   int
	visibility domain.Visibility
}

func newPredicate(c *domain.Criteria) predicate {
	return predicate{
		needle:     strings.ToLower(c.SearchText),
		brand:      c.Brand,
		priceMin:   c.PriceMin,
		priceMax:   c.PriceMax,
		visibility: c.Visibility,
	}
}

func (p predicate) match(l *domain.Listing) bool {
	return p.matchText(l) &&
		p.matchBrand(l) &&
		p.matchPrice(l) &&
		p.matchVisibility(l)
}

func (p predicate) matchText(l *domain.Listing) bool {
	if p.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), p.needle)
}

func (p predicate) matchBrand(l *domain.Listing) bool {
	return p.brand == domain.BrandAny || p.brand == l.Brand
}

func (p predicate) matchPrice(l *domain.Listing) bool {
	return p.priceMin <= l.Price && l.Price <= p.priceMax
}

func (p predicate) matchVisibility(l *domain.Listing) bool {
	switch p.visibility {
	case domain.VisibilityAvailable:
		return !l.Sold
	case domain.VisibilitySold:
		return l.Sold
	default:
		return true
	}
}
