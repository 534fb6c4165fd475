package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/priceboard/priceboard/internal/errors"
	"github.com/priceboard/priceboard/pkg/types"
)

// tableNameRe restricts sqlite table names to identifiers, since table names
// cannot be bound as query parameters.
var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadSQLite reads listings from a SQLite database file. The table must carry
// the same source columns as the CSV schema. Rows are read in rowid order so
// derived columns stay stable across loads.
func ReadSQLite(ctx context.Context, path, table string) ([]types.Listing, error) {
	if !tableNameRe.MatchString(table) {
		return nil, errors.NewDatasetError(errors.CodeSchemaMismatch,
			fmt.Sprintf("invalid sqlite table name %q", table), nil)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, errors.NewDatasetError(errors.CodeSourceMissing,
			fmt.Sprintf("failed to open sqlite dataset %s", path), err)
	}
	defer db.Close()

	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s, %s, %s FROM %s ORDER BY rowid",
		ColBrand, ColPrice, ColRAMSize, ColStorageCapacity,
		ColProcessorSpeed, ColScreenSize, ColWeight, table,
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewDatasetError(errors.CodeSchemaMismatch,
			fmt.Sprintf("failed to query sqlite table %s", table), err)
	}
	defer rows.Close()

	var listings []types.Listing
	rowNum := 0
	for rows.Next() {
		rowNum++
		var l types.Listing
		if err := rows.Scan(
			&l.Brand, &l.Price, &l.RAMSize, &l.StorageCapacity,
			&l.ProcessorSpeed, &l.ScreenSize, &l.Weight,
		); err != nil {
			return nil, errors.NewDatasetError(errors.CodeMalformedRow,
				fmt.Sprintf("row %d: failed to scan sqlite row", rowNum), err)
		}
		if l.Brand == "" || l.Price <= 0 || l.RAMSize <= 0 || l.StorageCapacity <= 0 ||
			l.ProcessorSpeed <= 0 || l.ScreenSize <= 0 || l.Weight <= 0 {
			return nil, errors.NewDatasetError(errors.CodeMalformedRow,
				fmt.Sprintf("row %d: non-positive or empty value", rowNum), nil)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatasetError(errors.CodeMalformedRow, "sqlite row iteration failed", err)
	}

	return listings, nil
}
