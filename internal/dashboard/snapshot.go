// Package dashboard assembles render-ready snapshots of the listing table.
// One Render call produces everything a dashboard page shows for a filter
// combination: headline metrics, chart series, and the sorted data table.
package dashboard

import (
	"sort"

	"github.com/priceboard/priceboard/internal/aggregate"
	"github.com/priceboard/priceboard/internal/filter"
	"github.com/priceboard/priceboard/pkg/types"
)

// cheapestMarketplaceCount is how many lowest-mean-price marketplaces the
// snapshot highlights.
const cheapestMarketplaceCount = 2

// SortRequest selects the data table ordering.
type SortRequest struct {
	Column types.Column `json:"column"`
	Desc   bool         `json:"desc"`
}

// RenderData is everything a dashboard page needs for one filter combination.
type RenderData struct {
	// Empty marks a zero-row filter result. Metrics are zeroed and chart
	// series omitted; the caller shows a warning instead of charts.
	Empty bool `json:"empty"`

	Metrics aggregate.Metrics `json:"metrics"`

	CheapestMarketplaces   []aggregate.GroupStat   `json:"cheapest_marketplaces,omitempty"`
	MarketplaceMeanPrice   []aggregate.GroupStat   `json:"marketplace_mean_price,omitempty"`
	MarketplaceShare       []aggregate.GroupCount  `json:"marketplace_share,omitempty"`
	BrandPriceDistribution []aggregate.BrandPrices `json:"brand_price_distribution,omitempty"`
	RAMPriceCurve          []aggregate.GroupStat   `json:"ram_price_curve,omitempty"`
	StoragePriceCurve      []aggregate.GroupStat   `json:"storage_price_curve,omitempty"`
	RatingPricePoints      []aggregate.PricePoint  `json:"rating_price_points,omitempty"`
	ProcessorPricePoints   []aggregate.PricePoint  `json:"processor_price_points,omitempty"`
	ScreenPricePoints      []aggregate.PricePoint  `json:"screen_price_points,omitempty"`

	// TableRows is the sorted data table, truncated to the configured limit.
	// TableTotal is the pre-truncation row count.
	TableRows  types.Table `json:"table_rows"`
	TableTotal int         `json:"table_total"`
}

// Options describes the distinct values available for each filter widget,
// derived from the base table.
type Options struct {
	Cities            []string `json:"cities"`
	Brands            []string `json:"brands"`
	Marketplaces      []string `json:"marketplaces"`
	RAMSizes          []int    `json:"ram_sizes"`
	StorageCapacities []int    `json:"storage_capacities"`
	PriceMin          float64  `json:"price_min"`
	PriceMax          float64  `json:"price_max"`
}

// Service renders snapshots over an immutable base table.
type Service struct {
	table      types.Table
	tableLimit int
	cache      *snapshotCache
}

// NewService builds a Service over table. tableLimit caps data-table rows per
// snapshot; cacheSize caps memoized snapshots (0 disables caching).
func NewService(table types.Table, tableLimit, cacheSize int) *Service {
	return &Service{
		table:      table,
		tableLimit: tableLimit,
		cache:      newSnapshotCache(cacheSize),
	}
}

// Render produces the snapshot for a filter combination. Identical requests
// are served from cache; the base table never changes, so cached snapshots
// never go stale.
func (s *Service) Render(spec types.FilterSpec, sortReq SortRequest) (*RenderData, error) {
	if err := filter.ValidateSpec(spec); err != nil {
		return nil, err
	}
	if sortReq.Column == "" {
		sortReq.Column = types.ColumnPrice
	}

	key := fingerprint(spec, sortReq)
	if rd, ok := s.cache.get(key); ok {
		return rd, nil
	}

	rd, err := s.render(spec, sortReq)
	if err != nil {
		return nil, err
	}
	s.cache.put(key, rd)
	return rd, nil
}

func (s *Service) render(spec types.FilterSpec, sortReq SortRequest) (*RenderData, error) {
	filtered := filter.Apply(s.table, spec)
	if len(filtered) == 0 {
		return &RenderData{Empty: true, TableRows: types.Table{}}, nil
	}

	rd := &RenderData{
		Metrics:                aggregate.Summarize(filtered),
		BrandPriceDistribution: aggregate.PriceDistributionByBrand(filtered),
		TableTotal:             len(filtered),
	}

	var err error
	if rd.MarketplaceMeanPrice, err = aggregate.MeanPriceByGroup(filtered, types.ColumnMarketplace); err != nil {
		return nil, err
	}
	if rd.MarketplaceShare, err = aggregate.CountByGroup(filtered, types.ColumnMarketplace); err != nil {
		return nil, err
	}
	if rd.CheapestMarketplaces, err = aggregate.CheapestGroups(filtered, types.ColumnMarketplace, cheapestMarketplaceCount); err != nil {
		return nil, err
	}
	if rd.RAMPriceCurve, err = aggregate.MeanPriceByGroup(filtered, types.ColumnRAMSize); err != nil {
		return nil, err
	}
	if rd.StoragePriceCurve, err = aggregate.MeanPriceByGroup(filtered, types.ColumnStorageCapacity); err != nil {
		return nil, err
	}
	if rd.RatingPricePoints, err = aggregate.PricePoints(filtered, types.ColumnRating); err != nil {
		return nil, err
	}
	if rd.ProcessorPricePoints, err = aggregate.PricePoints(filtered, types.ColumnProcessorSpeed); err != nil {
		return nil, err
	}
	if rd.ScreenPricePoints, err = aggregate.PricePoints(filtered, types.ColumnScreenSize); err != nil {
		return nil, err
	}

	sorted, err := aggregate.SortListings(filtered, sortReq.Column, sortReq.Desc)
	if err != nil {
		return nil, err
	}
	if len(sorted) > s.tableLimit {
		sorted = sorted[:s.tableLimit]
	}
	rd.TableRows = sorted

	return rd, nil
}

// FilterOptions reports the distinct widget values of the base table.
// Categorical values are sorted lexicographically, numeric values ascending.
func (s *Service) FilterOptions() Options {
	cities := make(map[string]struct{})
	brands := make(map[string]struct{})
	marketplaces := make(map[string]struct{})
	rams := make(map[int]struct{})
	storages := make(map[int]struct{})

	opts := Options{}
	for i, l := range s.table {
		cities[l.City] = struct{}{}
		brands[l.Brand] = struct{}{}
		marketplaces[l.Marketplace] = struct{}{}
		rams[l.RAMSize] = struct{}{}
		storages[l.StorageCapacity] = struct{}{}
		if i == 0 || l.Price < opts.PriceMin {
			opts.PriceMin = l.Price
		}
		if i == 0 || l.Price > opts.PriceMax {
			opts.PriceMax = l.Price
		}
	}

	opts.Cities = sortedStrings(cities)
	opts.Brands = sortedStrings(brands)
	opts.Marketplaces = sortedStrings(marketplaces)
	opts.RAMSizes = sortedInts(rams)
	opts.StorageCapacities = sortedInts(storages)
	return opts
}

// CachedSnapshots reports the current cache population.
func (s *Service) CachedSnapshots() int {
	return s.cache.len()
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
