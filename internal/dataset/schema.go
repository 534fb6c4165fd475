// Package dataset loads the laptop listing dataset and derives the
// marketplace, city, and rating columns deterministically.
package dataset

// Source column names, as they appear in the CSV header and the SQLite table.
const (
	ColBrand           = "Brand"
	ColPrice           = "Price"
	ColRAMSize         = "RAM_Size"
	ColStorageCapacity = "Storage_Capacity"
	ColProcessorSpeed  = "Processor_Speed"
	ColScreenSize      = "Screen_Size"
	ColWeight          = "Weight"
)

// sourceColumns lists the required source columns in canonical order.
var sourceColumns = []string{
	ColBrand,
	ColPrice,
	ColRAMSize,
	ColStorageCapacity,
	ColProcessorSpeed,
	ColScreenSize,
	ColWeight,
}
