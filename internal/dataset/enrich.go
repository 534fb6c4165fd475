package dataset

import (
	"math"
	"math/rand"

	"github.com/priceboard/priceboard/pkg/types"
)

// Marketplaces is the fixed set of e-commerce platforms assigned to listings.
var Marketplaces = []string{"Amazon", "Flipkart", "Reliance Digital", "Croma", "Vijay Sales"}

// Cities is the fixed set of cities assigned to listings.
var Cities = []string{"Bhopal", "Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Pune", "Hyderabad"}

// Rating bounds for the synthetic rating column.
const (
	RatingMin = 3.0
	RatingMax = 5.0
)

// DefaultSeed seeds the derived-column generator unless configured otherwise.
const DefaultSeed = 42

// Enricher derives the marketplace, city, and rating columns from a seeded
// generator. The same seed and row order always produce identical columns,
// so a reload of unchanged source data is byte-identical.
type Enricher struct {
	seed int64
}

// NewEnricher creates an enricher for the given seed.
func NewEnricher(seed int64) *Enricher {
	return &Enricher{seed: seed}
}

// Enrich assigns derived columns to listings in place, column by column:
// all marketplaces first, then all cities, then all ratings. Column-major
// order keeps each column's sequence independent of the others' draws only
// through row count, matching how the source dashboard sampled them.
func (e *Enricher) Enrich(listings []types.Listing) {
	rng := rand.New(rand.NewSource(e.seed))

	for i := range listings {
		listings[i].Marketplace = Marketplaces[rng.Intn(len(Marketplaces))]
	}
	for i := range listings {
		listings[i].City = Cities[rng.Intn(len(Cities))]
	}
	for i := range listings {
		r := RatingMin + rng.Float64()*(RatingMax-RatingMin)
		listings[i].Rating = math.Round(r*10) / 10
	}
}
