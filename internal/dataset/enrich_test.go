package dataset

import (
	"math"
	"testing"

	"github.com/priceboard/priceboard/pkg/types"
)

func sampleListings(n int) []types.Listing {
	listings := make([]types.Listing, n)
	for i := range listings {
		listings[i] = types.Listing{
			Brand:           "HP",
			Price:           10000 + float64(i),
			RAMSize:         8,
			StorageCapacity: 512,
			ProcessorSpeed:  2.4,
			ScreenSize:      13.3,
			Weight:          1.5,
		}
	}
	return listings
}

func TestEnrich_Deterministic(t *testing.T) {
	a := sampleListings(200)
	b := sampleListings(200)

	NewEnricher(42).Enrich(a)
	NewEnricher(42).Enrich(b)

	for i := range a {
		if a[i].Marketplace != b[i].Marketplace {
			t.Fatalf("row %d: marketplace %q != %q", i, a[i].Marketplace, b[i].Marketplace)
		}
		if a[i].City != b[i].City {
			t.Fatalf("row %d: city %q != %q", i, a[i].City, b[i].City)
		}
		if a[i].Rating != b[i].Rating {
			t.Fatalf("row %d: rating %v != %v", i, a[i].Rating, b[i].Rating)
		}
	}
}

func TestEnrich_SeedChangesAssignment(t *testing.T) {
	a := sampleListings(200)
	b := sampleListings(200)

	NewEnricher(42).Enrich(a)
	NewEnricher(43).Enrich(b)

	same := 0
	for i := range a {
		if a[i].Marketplace == b[i].Marketplace && a[i].City == b[i].City && a[i].Rating == b[i].Rating {
			same++
		}
	}
	if same == len(a) {
		t.Error("different seeds should produce different derived columns")
	}
}

func TestEnrich_ValuesFromEnumerations(t *testing.T) {
	listings := sampleListings(500)
	NewEnricher(DefaultSeed).Enrich(listings)

	marketplaces := make(map[string]bool)
	for _, m := range Marketplaces {
		marketplaces[m] = true
	}
	cities := make(map[string]bool)
	for _, c := range Cities {
		cities[c] = true
	}

	for i, l := range listings {
		if !marketplaces[l.Marketplace] {
			t.Fatalf("row %d: marketplace %q not in enumeration", i, l.Marketplace)
		}
		if !cities[l.City] {
			t.Fatalf("row %d: city %q not in enumeration", i, l.City)
		}
		if l.Rating < RatingMin || l.Rating > RatingMax {
			t.Fatalf("row %d: rating %v out of [%v, %v]", i, l.Rating, RatingMin, RatingMax)
		}
		// One decimal place
		if math.Abs(l.Rating*10-math.Round(l.Rating*10)) > 1e-9 {
			t.Fatalf("row %d: rating %v not rounded to one decimal", i, l.Rating)
		}
	}
}

func TestEnrich_AllValuesAppearOnLargeInput(t *testing.T) {
	listings := sampleListings(2000)
	NewEnricher(DefaultSeed).Enrich(listings)

	seen := make(map[string]bool)
	for _, l := range listings {
		seen[l.Marketplace] = true
		seen[l.City] = true
	}
	for _, m := range Marketplaces {
		if !seen[m] {
			t.Errorf("marketplace %q never assigned over 2000 rows", m)
		}
	}
	for _, c := range Cities {
		if !seen[c] {
			t.Errorf("city %q never assigned over 2000 rows", c)
		}
	}
}
