// Package aggregate computes grouped summaries over listing tables. Every
// operation is a pure function over its input table; callers pass the
// already-filtered table they want summarized.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/priceboard/priceboard/internal/errors"
	"github.com/priceboard/priceboard/pkg/types"
)

// GroupStat is one group's price summary.
type GroupStat struct {
	Key       string  `json:"key"`
	MeanPrice float64 `json:"mean_price"`
	Count     int     `json:"count"`
}

// GroupCount is one group's row count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// BrandPrices holds the raw price samples for a brand, in table order.
type BrandPrices struct {
	Brand  string    `json:"brand"`
	Prices []float64 `json:"prices"`
}

// groupKey extracts the grouping key for a column, or reports that the
// column is not groupable. Numeric spec columns group by their exact value.
func groupKey(l types.Listing, col types.Column) (string, bool) {
	switch col {
	case types.ColumnBrand:
		return l.Brand, true
	case types.ColumnMarketplace:
		return l.Marketplace, true
	case types.ColumnCity:
		return l.City, true
	case types.ColumnRAMSize:
		return strconv.Itoa(l.RAMSize), true
	case types.ColumnStorageCapacity:
		return strconv.Itoa(l.StorageCapacity), true
	default:
		return "", false
	}
}

// numericGroup reports whether a column's groups should be ordered by their
// numeric value rather than first appearance.
func numericGroup(col types.Column) bool {
	return col == types.ColumnRAMSize || col == types.ColumnStorageCapacity
}

func unknownColumn(col types.Column) error {
	return errors.NewQueryError(errors.CodeUnknownColumn,
		fmt.Sprintf("column %q is not groupable", col))
}

// MeanPriceByGroup computes the mean price and row count per distinct value
// of col. Categorical groups keep first-appearance order; numeric groups
// (RAM, storage) are ordered ascending by value. An empty table yields an
// empty, non-nil slice.
func MeanPriceByGroup(table types.Table, col types.Column) ([]GroupStat, error) {
	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[string]*acc)
	order := make([]string, 0)

	for _, l := range table {
		key, ok := groupKey(l, col)
		if !ok {
			return nil, unknownColumn(col)
		}
		a, seen := sums[key]
		if !seen {
			a = &acc{}
			sums[key] = a
			order = append(order, key)
		}
		a.sum += l.Price
		a.count++
	}

	if numericGroup(col) {
		sort.Slice(order, func(i, j int) bool {
			a, _ := strconv.Atoi(order[i])
			b, _ := strconv.Atoi(order[j])
			return a < b
		})
	}

	stats := make([]GroupStat, 0, len(order))
	for _, key := range order {
		a := sums[key]
		stats = append(stats, GroupStat{
			Key:       key,
			MeanPrice: a.sum / float64(a.count),
			Count:     a.count,
		})
	}
	return stats, nil
}

// CountByGroup counts rows per distinct value of col, in the same group
// order as MeanPriceByGroup. The counts always sum to len(table).
func CountByGroup(table types.Table, col types.Column) ([]GroupCount, error) {
	stats, err := MeanPriceByGroup(table, col)
	if err != nil {
		return nil, err
	}
	counts := make([]GroupCount, 0, len(stats))
	for _, s := range stats {
		counts = append(counts, GroupCount{Key: s.Key, Count: s.Count})
	}
	return counts, nil
}

// PriceDistributionByBrand collects every price sample per brand, brands in
// first-appearance order and prices in table order within each brand.
func PriceDistributionByBrand(table types.Table) []BrandPrices {
	byBrand := make(map[string]int)
	out := make([]BrandPrices, 0)
	for _, l := range table {
		idx, seen := byBrand[l.Brand]
		if !seen {
			idx = len(out)
			byBrand[l.Brand] = idx
			out = append(out, BrandPrices{Brand: l.Brand})
		}
		out[idx].Prices = append(out[idx].Prices, l.Price)
	}
	return out
}

// CheapestGroups returns the n groups with the lowest mean price, ascending.
// Ties keep the underlying group order. Fewer than n groups returns them all.
func CheapestGroups(table types.Table, col types.Column, n int) ([]GroupStat, error) {
	stats, err := MeanPriceByGroup(table, col)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MeanPrice < stats[j].MeanPrice
	})
	if n >= 0 && n < len(stats) {
		stats = stats[:n]
	}
	return stats, nil
}
