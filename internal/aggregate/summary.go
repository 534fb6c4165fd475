package aggregate

import "github.com/priceboard/priceboard/pkg/types"

// Metrics is the headline summary of a listing table.
type Metrics struct {
	TotalListings int     `json:"total_listings"`
	MeanPrice     float64 `json:"mean_price"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	BrandCount    int     `json:"brand_count"`
}

// Summarize computes the headline metrics for a table. An empty table yields
// zero metrics; callers decide how to present that.
func Summarize(table types.Table) Metrics {
	if len(table) == 0 {
		return Metrics{}
	}

	brands := make(map[string]struct{})
	m := Metrics{
		TotalListings: len(table),
		MinPrice:      table[0].Price,
		MaxPrice:      table[0].Price,
	}
	var sum float64
	for _, l := range table {
		sum += l.Price
		if l.Price < m.MinPrice {
			m.MinPrice = l.Price
		}
		if l.Price > m.MaxPrice {
			m.MaxPrice = l.Price
		}
		brands[l.Brand] = struct{}{}
	}
	m.MeanPrice = sum / float64(len(table))
	m.BrandCount = len(brands)
	return m
}

// PricePoint pairs a listing attribute with its price, for scatter views.
type PricePoint struct {
	X     float64 `json:"x"`
	Price float64 `json:"price"`
}

// PricePoints projects each row to (col value, price) pairs in table order.
// Only numeric columns project; categorical columns are a grouping concern.
func PricePoints(table types.Table, col types.Column) ([]PricePoint, error) {
	if !sortableColumn(col) || stringColumn(col) {
		return nil, unknownColumn(col)
	}
	points := make([]PricePoint, 0, len(table))
	for _, l := range table {
		points = append(points, PricePoint{X: numericValue(l, col), Price: l.Price})
	}
	return points, nil
}
