package aggregate

import (
	"sort"

	"github.com/priceboard/priceboard/internal/errors"
	"github.com/priceboard/priceboard/pkg/types"
)

// numericValue maps a numeric column to its value for sorting.
func numericValue(l types.Listing, col types.Column) float64 {
	switch col {
	case types.ColumnPrice:
		return l.Price
	case types.ColumnRAMSize:
		return float64(l.RAMSize)
	case types.ColumnStorageCapacity:
		return float64(l.StorageCapacity)
	case types.ColumnProcessorSpeed:
		return l.ProcessorSpeed
	case types.ColumnScreenSize:
		return l.ScreenSize
	case types.ColumnWeight:
		return l.Weight
	case types.ColumnRating:
		return l.Rating
	}
	return 0
}

// stringValue maps a categorical column to its value for sorting.
func stringValue(l types.Listing, col types.Column) string {
	switch col {
	case types.ColumnBrand:
		return l.Brand
	case types.ColumnMarketplace:
		return l.Marketplace
	case types.ColumnCity:
		return l.City
	}
	return ""
}

// stringColumn reports whether col sorts lexicographically.
func stringColumn(col types.Column) bool {
	switch col {
	case types.ColumnBrand, types.ColumnMarketplace, types.ColumnCity:
		return true
	}
	return false
}

func sortableColumn(col types.Column) bool {
	switch col {
	case types.ColumnBrand, types.ColumnPrice, types.ColumnRAMSize,
		types.ColumnStorageCapacity, types.ColumnProcessorSpeed,
		types.ColumnScreenSize, types.ColumnWeight,
		types.ColumnMarketplace, types.ColumnCity, types.ColumnRating:
		return true
	}
	return false
}

// SortListings returns a sorted copy of table ordered by col. The sort is
// stable, so rows with equal keys keep their table order. The input is not
// mutated.
func SortListings(table types.Table, col types.Column, desc bool) (types.Table, error) {
	if !sortableColumn(col) {
		return nil, errors.NewQueryError(errors.CodeUnknownColumn,
			"column "+string(col)+" is not sortable")
	}

	out := make(types.Table, len(table))
	copy(out, table)

	if stringColumn(col) {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := stringValue(out[i], col), stringValue(out[j], col)
			if desc {
				return a > b
			}
			return a < b
		})
		return out, nil
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := numericValue(out[i], col), numericValue(out[j], col)
		if desc {
			return a > b
		}
		return a < b
	})
	return out, nil
}
