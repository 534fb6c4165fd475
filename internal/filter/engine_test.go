package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priceboard/priceboard/pkg/types"
)

// fiveRows is the five-listing scenario used across filter and aggregation
// tests: two brands, prices 10000..30000.
func fiveRows() types.Table {
	prices := []float64{10000, 20000, 15000, 30000, 25000}
	brands := []string{"X", "Y", "X", "Y", "X"}
	table := make(types.Table, len(prices))
	for i := range table {
		table[i] = types.Listing{
			Brand:           brands[i],
			Price:           prices[i],
			RAMSize:         8,
			StorageCapacity: 512,
			ProcessorSpeed:  2.4,
			ScreenSize:      13.3,
			Weight:          1.5,
			Marketplace:     "Amazon",
			City:            "Mumbai",
			Rating:          4.2,
		}
	}
	return table
}

func TestApply_PriceInterval(t *testing.T) {
	table := fiveRows()
	spec := types.FilterSpec{PriceRange: &types.PriceRange{Low: 15000, High: 25000}}

	got := Apply(table, spec)

	require.Len(t, got, 3)
	var sum float64
	for _, l := range got {
		sum += l.Price
	}
	assert.Equal(t, 20000.0, sum/float64(len(got)), "mean price of filtered table")
}

func TestApply_PriceBoundariesInclusive(t *testing.T) {
	table := fiveRows()
	spec := types.FilterSpec{PriceRange: &types.PriceRange{Low: 10000, High: 30000}}

	got := Apply(table, spec)
	assert.Len(t, got, 5, "boundary prices must be included")

	exact := types.FilterSpec{PriceRange: &types.PriceRange{Low: 20000, High: 20000}}
	got = Apply(table, exact)
	require.Len(t, got, 1)
	assert.Equal(t, 20000.0, got[0].Price)
}

func TestApply_CitySentinel(t *testing.T) {
	table := fiveRows()
	table[2].City = "Delhi"

	all := Apply(table, types.FilterSpec{City: types.CityAll})
	assert.Len(t, all, 5, "sentinel city skips the predicate")

	unset := Apply(table, types.FilterSpec{})
	assert.Len(t, unset, 5, "empty city skips the predicate")

	delhi := Apply(table, types.FilterSpec{City: "Delhi"})
	require.Len(t, delhi, 1)
	assert.Equal(t, 15000.0, delhi[0].Price)
}

func TestApply_BrandMembership(t *testing.T) {
	table := fiveRows()

	got := Apply(table, types.FilterSpec{Brands: []string{"X"}})
	assert.Len(t, got, 3)
	for _, l := range got {
		assert.Equal(t, "X", l.Brand)
	}
}

func TestApply_EmptySelectionMatchesNothing(t *testing.T) {
	table := fiveRows()

	// nil = unconstrained, empty non-nil = explicit empty selection.
	assert.Len(t, Apply(table, types.FilterSpec{Brands: nil}), 5)
	assert.Len(t, Apply(table, types.FilterSpec{Brands: []string{}}), 0)
	assert.Len(t, Apply(table, types.FilterSpec{Marketplaces: []string{}}), 0)
	assert.Len(t, Apply(table, types.FilterSpec{RAMSizes: []int{}}), 0)
	assert.Len(t, Apply(table, types.FilterSpec{StorageCapacities: []int{}}), 0)
}

func TestApply_ConjunctionAcrossDimensions(t *testing.T) {
	table := fiveRows()
	table[0].Marketplace = "Croma"
	table[0].RAMSize = 16

	spec := types.FilterSpec{
		Brands:       []string{"X"},
		Marketplaces: []string{"Croma"},
		RAMSizes:     []int{16},
	}
	got := Apply(table, spec)
	require.Len(t, got, 1)
	assert.Equal(t, 10000.0, got[0].Price)
}

func TestApply_EmptyResultIsNotError(t *testing.T) {
	table := fiveRows()
	spec := types.FilterSpec{PriceRange: &types.PriceRange{Low: 1, High: 2}}

	got := Apply(table, spec)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestApply_PreservesOrderAndInput(t *testing.T) {
	table := fiveRows()
	spec := types.FilterSpec{PriceRange: &types.PriceRange{Low: 15000, High: 30000}}

	got := Apply(table, spec)
	require.Len(t, got, 4)
	assert.Equal(t, []float64{20000, 15000, 30000, 25000},
		[]float64{got[0].Price, got[1].Price, got[2].Price, got[3].Price},
		"subset keeps original row order")

	// Input untouched
	assert.Equal(t, 10000.0, table[0].Price)
	assert.Len(t, table, 5)
}

func TestApply_EmptyTable(t *testing.T) {
	got := Apply(types.Table{}, types.FilterSpec{Brands: []string{"X"}})
	assert.Len(t, got, 0)
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec(types.FilterSpec{}))
	assert.NoError(t, ValidateSpec(types.FilterSpec{PriceRange: &types.PriceRange{Low: 1, High: 1}}))
	assert.Error(t, ValidateSpec(types.FilterSpec{PriceRange: &types.PriceRange{Low: 2, High: 1}}))
}

func BenchmarkApply(b *testing.B) {
	table := make(types.Table, 0, 10000)
	base := fiveRows()
	for i := 0; i < 2000; i++ {
		table = append(table, base...)
	}
	spec := types.FilterSpec{
		Brands:     []string{"X"},
		PriceRange: &types.PriceRange{Low: 12000, High: 28000},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Apply(table, spec)
	}
}
