package types

// CityAll is the sentinel city selection meaning "no city constraint".
const CityAll = "All"

// PriceRange is an inclusive price interval [Low, High].
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether p falls inside the interval, boundaries included.
func (r PriceRange) Contains(p float64) bool {
	return p >= r.Low && p <= r.High
}

// FilterSpec describes which rows one render cycle wants to see. It is
// constructed fresh per user interaction and never modified afterwards.
//
// Multi-select sets distinguish "no constraint" from "nothing selected":
// a nil slice leaves the dimension unconstrained, while a non-nil empty
// slice is an explicit empty selection and matches no rows. The JSON
// decoder preserves this distinction (absent field vs. empty array).
type FilterSpec struct {
	// City is a single selection; CityAll or empty means no constraint
	City string `json:"city"`

	// Brands is the selected brand set
	Brands []string `json:"brands"`

	// PriceRange is the inclusive price interval; nil means no constraint
	PriceRange *PriceRange `json:"price_range"`

	// Marketplaces is the selected marketplace set
	Marketplaces []string `json:"marketplaces"`

	// RAMSizes is the selected memory-size set in GB
	RAMSizes []int `json:"ram_sizes"`

	// StorageCapacities is the selected storage-size set in GB
	StorageCapacities []int `json:"storage_capacities"`
}

// AllCities reports whether the spec leaves the city dimension unconstrained.
func (s FilterSpec) AllCities() bool {
	return s.City == "" || s.City == CityAll
}
