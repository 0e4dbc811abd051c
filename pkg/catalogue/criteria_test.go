package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

func TestDefaultCriteria(t *testing.T) {
	t.Parallel()

	c := DefaultCriteria()
	assert.Empty(t, c.SearchText)
	assert.Equal(t, domain.BrandAny, c.Brand)
	assert.Equal(t, 0, c.PriceMin)
	assert.Equal(t, 5_000_000, c.PriceMax)
	assert.Equal(t, domain.VisibilityAll, c.Visibility)
	assert.Equal(t, domain.SortName, c.Sort)
}

func TestParseCriteria(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  RawCriteria
		want domain.Criteria
	}{
		{
			name: "empty input",
			raw:  RawCriteria{},
			want: domain.Criteria{
				Brand:      domain.BrandAny,
				PriceMax:   DefaultPriceMax,
				Visibility: domain.VisibilityAll,
				Sort:       domain.SortName,
			},
		},
		{
			name: "well formed",
			raw: RawCriteria{
				Search:     "  panigale ",
				Brand:      "Ducati",
				PriceMin:   "100000",
				PriceMax:   "3000000",
				Visibility: "available",
				Sort:       "price-high",
			},
			want: domain.Criteria{
				SearchText: "panigale",
				Brand:      "Ducati",
				PriceMin:   100000,
				PriceMax:   3000000,
				Visibility: domain.VisibilityAvailable,
				Sort:       domain.SortPriceHigh,
			},
		},
		{
			name: "malformed numbers and unknown keys",
			raw: RawCriteria{
				Brand:      "ANY",
				PriceMin:   "abc",
				PriceMax:   "lots",
				Visibility: "hidden",
				Sort:       "colour",
			},
			want: domain.Criteria{
				Brand:      domain.BrandAny,
				PriceMin:   0,
				PriceMax:   domain.PriceCeiling,
				Visibility: domain.VisibilityAll,
				Sort:       domain.SortName,
			},
		},
		{
			name: "negative bounds clamp",
			raw:  RawCriteria{PriceMin: "-5", PriceMax: "-10", Sort: "KM-HIGH", Visibility: "Sold"},
			want: domain.Criteria{
				Brand:      domain.BrandAny,
				PriceMin:   0,
				PriceMax:   0,
				Visibility: domain.VisibilitySold,
				Sort:       domain.SortKmHigh,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseCriteria(tt.raw))
		})
	}
}

func TestParseCriteria_EmptyMatchesDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCriteria(), ParseCriteria(RawCriteria{}))
	assert.Equal(t, DefaultCriteria(), ParseCriteria(RawCriteria{PriceMin: " ", PriceMax: "  "}))

	listings := []domain.Listing{
		{ID: "cheap", Name: "Bajaj Pulsar", Brand: "Bajaj", Price: 1_000},
		{ID: "dear", Name: "Ducati Superleggera", Brand: "Ducati", Price: 6_000_000},
	}
	assert.Equal(t,
		Query(listings, DefaultCriteria()),
		Query(listings, ParseCriteria(RawCriteria{})),
	)
	assert.Len(t, Query(listings, ParseCriteria(RawCriteria{PriceMax: "lots"})), 2,
		"an unparsable maximum saturates")
}

func TestParseSortKey_AllKnown(t *testing.T) {
	t.Parallel()

	for _, k := range domain.SortKeys {
		assert.Equal(t, k, ParseSortKey(string(k)))
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	l := domain.Listing{Name: "Kawasaki Z900", Brand: "Kawasaki", Price: 952000}
	c := DefaultCriteria()

	assert.True(t, Matches(&l, &c))

	c.SearchText = "Z9"
	assert.True(t, Matches(&l, &c))

	c.Brand = "kawasaki"
	assert.False(t, Matches(&l, &c), "brand match is exact")

	c.Brand = "Kawasaki"
	c.PriceMax = 952000
	assert.True(t, Matches(&l, &c))

	c.PriceMax = 951999
	assert.False(t, Matches(&l, &c))

	c = DefaultCriteria()
	c.Visibility = domain.VisibilitySold
	assert.False(t, Matches(&l, &c))

	c = DefaultCriteria()
	c.Brand = ""
	assert.False(t, Matches(&l, &c), "only the any sentinel disables brand filtering")
	assert.Equal(t, domain.BrandAny, ParseCriteria(RawCriteria{Brand: " "}).Brand)
}
