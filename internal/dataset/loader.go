package dataset

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/snappy"

	"github.com/priceboard/priceboard/internal/config"
	"github.com/priceboard/priceboard/internal/errors"
	"github.com/priceboard/priceboard/internal/storage"
	"github.com/priceboard/priceboard/pkg/types"
)

// snappySuffix marks a dataset object as snappy-compressed.
const snappySuffix = ".snappy"

// Loader reads the dataset once and caches the enriched table for the
// process lifetime. The first Load performs the read and derivation under a
// sync.Once guard; every later call returns the same table (or the same
// error) without touching storage or re-randomizing derived columns.
type Loader struct {
	storage    storage.DatasetStorage
	cfg        config.DatasetConfig
	scratchDir string

	once  sync.Once
	table types.Table
	err   error
}

// NewLoader creates a loader for the configured dataset.
func NewLoader(st storage.DatasetStorage, cfg config.DatasetConfig, scratchDir string) *Loader {
	return &Loader{
		storage:    st,
		cfg:        cfg,
		scratchDir: scratchDir,
	}
}

// Load returns the cached base table, loading it on first call.
func (l *Loader) Load(ctx context.Context) (types.Table, error) {
	l.once.Do(func() {
		l.table, l.err = l.load(ctx)
	})
	return l.table, l.err
}

// load reads, parses, and enriches the dataset.
func (l *Loader) load(ctx context.Context) (types.Table, error) {
	var listings []types.Listing
	var err error

	switch l.cfg.Source {
	case config.SourceCSV:
		listings, err = l.loadCSV(ctx)
	case config.SourceSQLite:
		listings, err = l.loadSQLite(ctx)
	default:
		return nil, errors.NewDatasetError(errors.CodeSchemaMismatch,
			fmt.Sprintf("unsupported dataset source %q", l.cfg.Source), nil)
	}
	if err != nil {
		return nil, err
	}

	NewEnricher(l.cfg.Seed).Enrich(listings)
	return types.Table(listings), nil
}

func (l *Loader) loadCSV(ctx context.Context) ([]types.Listing, error) {
	data, err := l.storage.Fetch(ctx, l.cfg.Object)
	if err != nil {
		return nil, mapFetchError(l.cfg.Object, err)
	}

	if strings.HasSuffix(l.cfg.Object, snappySuffix) {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, errors.NewDatasetError(errors.CodeMalformedRow,
				fmt.Sprintf("failed to decompress dataset %s", l.cfg.Object), err)
		}
	}

	return ParseCSV(data)
}

func (l *Loader) loadSQLite(ctx context.Context) ([]types.Listing, error) {
	path, err := l.storage.Materialize(ctx, l.cfg.Object, l.scratchDir)
	if err != nil {
		return nil, mapFetchError(l.cfg.Object, err)
	}

	if strings.HasSuffix(l.cfg.Object, snappySuffix) {
		path, err = l.decompressToScratch(path)
		if err != nil {
			return nil, err
		}
	}

	return ReadSQLite(ctx, path, l.cfg.Table)
}

// decompressToScratch writes a decompressed copy of a snappy-compressed
// database file into the scratch directory.
func (l *Loader) decompressToScratch(path string) (string, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewStorageError(errors.CodeDownloadFailed,
			fmt.Sprintf("failed to read materialized dataset %s", path), err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return "", errors.NewDatasetError(errors.CodeMalformedRow,
			fmt.Sprintf("failed to decompress dataset %s", path), err)
	}

	out := filepath.Join(l.scratchDir, strings.TrimSuffix(filepath.Base(path), snappySuffix))
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", errors.NewStorageError(errors.CodeDownloadFailed,
			fmt.Sprintf("failed to write decompressed dataset %s", out), err)
	}
	return out, nil
}

// mapFetchError converts storage errors into the dataset error taxonomy.
// A missing source is the caller-recoverable LoadError case.
func mapFetchError(object string, err error) error {
	if stderrors.Is(err, storage.ErrObjectNotFound) {
		return errors.NewDatasetError(errors.CodeSourceMissing,
			fmt.Sprintf("dataset object %s not found", object), err)
	}
	return errors.NewStorageError(errors.CodeDownloadFailed,
		fmt.Sprintf("failed to fetch dataset object %s", object), err)
}
