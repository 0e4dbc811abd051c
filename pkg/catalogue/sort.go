package catalogue

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// Comparator orders two listings: negative when a sorts first, positive when
// b does, zero when they tie.
type Comparator func(a, b domain.Listing) int

// collationTag is the locale used for name ordering.
var collationTag = language.English

// ComparatorFor returns the ordering for key. Unknown keys order by name.
//
//	name        ascending display name, locale-aware
//	price-low   ascending price
//	price-high  descending price
//	year-new    descending year
//	year-old    ascending year
//	km-low      ascending distance driven
//	km-high     descending distance driven
//
// Ties compare as zero; callers sort stably so ties keep collection order.
func ComparatorFor(key domain.SortKey) Comparator {
	switch key {
	case domain.SortPriceLow:
		return func(a, b domain.Listing) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceHigh:
		return func(a, b domain.Listing) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortYearNew:
		return func(a, b domain.Listing) int { return cmp.Compare(b.Year, a.Year) }
	case domain.SortYearOld:
		return func(a, b domain.Listing) int { return cmp.Compare(a.Year, b.Year) }
	case domain.SortKmLow:
		return func(a, b domain.Listing) int { return cmp.Compare(a.KmDriven, b.KmDriven) }
	case domain.SortKmHigh:
		return func(a, b domain.Listing) int { return cmp.Compare(b.KmDriven, a.KmDriven) }
	default:
		return byName()
	}
}

// byName builds a fresh collator per comparator; a collate.Collator is not
// safe for concurrent use.
func byName() Comparator {
	col := collate.New(collationTag)
	return func(a, b domain.Listing) int {
		return col.CompareString(a.Name, b.Name)
	}
}
