// Package types provides core data types for Priceboard.
package types

// Column identifies a listing attribute used for filtering, grouping, and sorting.
type Column string

const (
	ColumnBrand           Column = "brand"
	ColumnPrice           Column = "price"
	ColumnRAMSize         Column = "ram_size"
	ColumnStorageCapacity Column = "storage_capacity"
	ColumnProcessorSpeed  Column = "processor_speed"
	ColumnScreenSize      Column = "screen_size"
	ColumnWeight          Column = "weight"
	ColumnMarketplace     Column = "marketplace"
	ColumnCity            Column = "city"
	ColumnRating          Column = "rating"
)

// Listing represents a single laptop listing row.
type Listing struct {
	// Brand is the manufacturer label (e.g. "HP", "Dell")
	Brand string `json:"brand"`

	// Price is the listing price in currency units, always positive
	Price float64 `json:"price"`

	// RAMSize is the memory size in GB
	RAMSize int `json:"ram_size"`

	// StorageCapacity is the storage size in GB
	StorageCapacity int `json:"storage_capacity"`

	// ProcessorSpeed is the CPU clock speed in GHz
	ProcessorSpeed float64 `json:"processor_speed"`

	// ScreenSize is the display diagonal in inches
	ScreenSize float64 `json:"screen_size"`

	// Weight is the device weight in kg
	Weight float64 `json:"weight"`

	// Marketplace is the e-commerce platform, derived at load time
	Marketplace string `json:"marketplace"`

	// City is the listing city, derived at load time
	City string `json:"city"`

	// Rating is the synthetic user rating in [3.0, 5.0], one decimal
	Rating float64 `json:"rating"`
}

// Table is an ordered sequence of listings. The base table produced by the
// dataset loader is immutable after construction; every filter or aggregation
// over it returns fresh values and never mutates the input.
type Table []Listing
