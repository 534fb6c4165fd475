package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/priceboard/priceboard/internal/errors"
	"github.com/priceboard/priceboard/pkg/types"
)

// ParseCSV parses a fixed-schema CSV dataset into listings.
// The header must contain all source columns; their order is free.
// Rows with missing, non-numeric, or non-positive values fail the load.
func ParseCSV(data []byte) ([]types.Listing, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewDatasetError(errors.CodeSchemaMismatch, "failed to read CSV header", err)
	}

	colIdx, err := resolveHeader(header)
	if err != nil {
		return nil, err
	}

	var listings []types.Listing
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDatasetError(errors.CodeMalformedRow,
				fmt.Sprintf("failed to read CSV row %d", rowNum), err)
		}

		listing, err := parseRecord(record, colIdx, rowNum)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// resolveHeader maps each required source column to its index in the header.
func resolveHeader(header []string) (map[string]int, error) {
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}

	var missing []string
	for _, name := range sourceColumns {
		if _, ok := colIdx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewDatasetError(errors.CodeSchemaMismatch,
			fmt.Sprintf("CSV header missing required columns: %v", missing), nil)
	}

	return colIdx, nil
}

// parseRecord converts one CSV record into a listing.
func parseRecord(record []string, colIdx map[string]int, rowNum int) (types.Listing, error) {
	field := func(name string) (string, error) {
		idx := colIdx[name]
		if idx >= len(record) {
			return "", errors.NewDatasetError(errors.CodeMalformedRow,
				fmt.Sprintf("row %d: missing field %s", rowNum, name), nil)
		}
		return record[idx], nil
	}

	malformed := func(name, value string, cause error) error {
		return errors.NewDatasetError(errors.CodeMalformedRow,
			fmt.Sprintf("row %d: invalid %s value %q", rowNum, name, value), cause)
	}

	var listing types.Listing

	brand, err := field(ColBrand)
	if err != nil {
		return listing, err
	}
	if brand == "" {
		return listing, malformed(ColBrand, brand, nil)
	}
	listing.Brand = brand

	floats := []struct {
		name string
		dst  *float64
	}{
		{ColPrice, &listing.Price},
		{ColProcessorSpeed, &listing.ProcessorSpeed},
		{ColScreenSize, &listing.ScreenSize},
		{ColWeight, &listing.Weight},
	}
	for _, f := range floats {
		raw, err := field(f.name)
		if err != nil {
			return listing, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return listing, malformed(f.name, raw, err)
		}
		*f.dst = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{ColRAMSize, &listing.RAMSize},
		{ColStorageCapacity, &listing.StorageCapacity},
	}
	for _, f := range ints {
		raw, err := field(f.name)
		if err != nil {
			return listing, err
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return listing, malformed(f.name, raw, err)
		}
		*f.dst = v
	}

	return listing, nil
}
