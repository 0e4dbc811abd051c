package catalogue

import (
	"slices"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// Query filters all by c and stably sorts the matches by c.Sort. The input
// slice is never modified; the result is always a new, non-nil slice. A nil
// collection is treated as empty.
func Query(all []domain.Listing, c domain.Criteria) []domain.Listing {
	p := newPredicate(&c)

	out := make([]domain.Listing, 0, len(all))
	for i := range all {
		if p.match(&all[i]) {
			out = append(out, all[i])
		}
	}

	slices.SortStableFunc(out, ComparatorFor(c.Sort))
	return out
}

// Partition splits all into available and sold listings, preserving
// collection order within each part.
func Partition(all []domain.Listing) (available, sold []domain.Listing) {
	available = make([]domain.Listing, 0, len(all))
	sold = make([]domain.Listing, 0)
	for i := range all {
		if all[i].Sold {
			sold = append(sold, all[i])
		} else {
			available = append(available, all[i])
		}
	}
	return available, sold
}

// QueryPartitioned runs Query over each partition with the same criteria so
// both views share identical filter and sort semantics.
func QueryPartitioned(all []domain.Listing, c domain.Criteria) (available, sold []domain.Listing) {
	av, sd := Partition(all)
	return Query(av, c), Query(sd, c)
}

// Brands returns the distinct non-empty brands of all in first-seen order.
func Brands(all []domain.Listing) []string {
	seen := make(map[string]struct{}, len(all))
	brands := make([]string, 0)
	for i := range all {
		b := all[i].Brand
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}
	return brands
}

// Featured returns the first n listings of the collection.
func Featured(all []domain.Listing, n int) []domain.Listing {
	n = max(0, min(n, len(all)))
	out := make([]domain.Listing, n)
	copy(out, all)
	return out
}

// Find returns the listing with the given ID.
func Find(all []domain.Listing, id string) (domain.Listing, bool) {
	i := slices.IndexFunc(all, func(l domain.Listing) bool { return l.ID == id })
	if i < 0 {
		return domain.Listing{}, false
	}
	return all[i], true
}

// Classify maps the fetch status and result size onto the view state a
// consumer renders, keeping "not yet loaded", "load failed", and "no matches"
// distinct.
func Classify(status domain.LoadStatus, n int) domain.ViewState {
	switch status {
	case domain.LoadPending:
		return domain.ViewLoading
	case domain.LoadFailed:
		return domain.ViewError
	}
	if n == 0 {
		return domain.ViewEmpty
	}
	return domain.ViewResults
}
