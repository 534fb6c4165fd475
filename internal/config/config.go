// Package config provides unified configuration for the Priceboard service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DatasetSource identifies the dataset file format.
type DatasetSource string

const (
	SourceCSV    DatasetSource = "csv"
	SourceSQLite DatasetSource = "sqlite"
)

// Config holds the unified configuration for the Priceboard service.
type Config struct {
	// DataDir is the base directory for scratch files (downloads, decompressed datasets)
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// HTTP configuration
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Dataset configuration
	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`

	// Storage configuration
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Dashboard configuration
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	// Addr is the HTTP address for the dashboard API
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout is the HTTP read timeout
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the HTTP write timeout
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the HTTP idle timeout
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

// DatasetConfig holds dataset source configuration.
type DatasetConfig struct {
	// Source is the dataset format: csv, sqlite
	Source DatasetSource `json:"source" yaml:"source"`

	// Object is the dataset object path within storage.
	// A ".snappy" suffix marks the object as snappy-compressed.
	Object string `json:"object" yaml:"object"`

	// Table is the table name for sqlite sources
	Table string `json:"table" yaml:"table"`

	// Seed drives the derived-column generator (marketplace, city, rating)
	Seed int64 `json:"seed" yaml:"seed"`
}

// StorageConfig holds storage configuration.
type StorageConfig struct {
	// Type is the storage type: local, s3
	Type string `json:"type" yaml:"type"`

	// Path is the local storage base path (for local type)
	Path string `json:"path" yaml:"path"`

	// S3 configuration (for s3 type)
	S3 S3Config `json:"s3" yaml:"s3"`
}

// S3Config holds S3 storage configuration.
type S3Config struct {
	// Bucket is the S3 bucket name
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the AWS region
	Region string `json:"region" yaml:"region"`

	// Endpoint is the S3 endpoint (for S3-compatible storage)
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// DashboardConfig holds dashboard rendering configuration.
type DashboardConfig struct {
	// TableLimit is the maximum number of data-table rows per snapshot
	TableLimit int `json:"table_limit" yaml:"table_limit"`

	// CacheSize is the maximum number of cached render snapshots
	CacheSize int `json:"cache_size" yaml:"cache_size"`
}

// DefaultConfig returns the default configuration for local development.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data/priceboard",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Dataset: DatasetConfig{
			Source: SourceCSV,
			Object: "laptop_price.csv",
			Table:  "listings",
			Seed:   42,
		},
		Storage: StorageConfig{
			Type: "local",
			Path: "",
		},
		Dashboard: DashboardConfig{
			TableLimit: 20,
			CacheSize:  128,
		},
	}
}

// Resolve resolves relative paths and sets defaults based on DataDir.
func (c *Config) Resolve() {
	if c.DataDir == "" {
		c.DataDir = "./data/priceboard"
	}

	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(c.DataDir, "storage")
	}
}

// ScratchDir returns the directory for downloaded or decompressed datasets.
func (c *Config) ScratchDir() string {
	return filepath.Join(c.DataDir, "scratch")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	switch c.Dataset.Source {
	case SourceCSV, SourceSQLite:
		// Valid sources
	default:
		return fmt.Errorf("invalid dataset source: %s (must be csv or sqlite)", c.Dataset.Source)
	}

	if c.Dataset.Object == "" {
		return fmt.Errorf("dataset.object is required")
	}

	if c.Dataset.Source == SourceSQLite && c.Dataset.Table == "" {
		return fmt.Errorf("dataset.table is required when dataset source is sqlite")
	}

	if c.Storage.Type != "local" && c.Storage.Type != "s3" {
		return fmt.Errorf("invalid storage type: %s (must be local or s3)", c.Storage.Type)
	}

	if c.Storage.Type == "s3" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when storage type is s3")
	}

	if c.Dashboard.TableLimit < 1 || c.Dashboard.TableLimit > 1000 {
		return fmt.Errorf("dashboard.table_limit must be between 1 and 1000, got %d", c.Dashboard.TableLimit)
	}

	if c.Dashboard.CacheSize < 0 {
		return fmt.Errorf("dashboard.cache_size must not be negative, got %d", c.Dashboard.CacheSize)
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the PRICEBOARD_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("PRICEBOARD_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	// HTTP configuration
	if v := os.Getenv("PRICEBOARD_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}

	// Dataset configuration
	if v := os.Getenv("PRICEBOARD_DATASET_SOURCE"); v != "" {
		cfg.Dataset.Source = DatasetSource(v)
	}
	if v := os.Getenv("PRICEBOARD_DATASET_OBJECT"); v != "" {
		cfg.Dataset.Object = v
	}
	if v := os.Getenv("PRICEBOARD_DATASET_TABLE"); v != "" {
		cfg.Dataset.Table = v
	}
	if v := os.Getenv("PRICEBOARD_DATASET_SEED"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Dataset.Seed)
	}

	// Storage configuration
	if v := os.Getenv("PRICEBOARD_STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("PRICEBOARD_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("PRICEBOARD_S3_BUCKET"); v != "" {
		cfg.Storage.S3.Bucket = v
	}
	if v := os.Getenv("PRICEBOARD_S3_REGION"); v != "" {
		cfg.Storage.S3.Region = v
	}
	if v := os.Getenv("PRICEBOARD_S3_ENDPOINT"); v != "" {
		cfg.Storage.S3.Endpoint = v
	}

	// Dashboard configuration
	if v := os.Getenv("PRICEBOARD_DASHBOARD_TABLE_LIMIT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Dashboard.TableLimit)
	}
	if v := os.Getenv("PRICEBOARD_DASHBOARD_CACHE_SIZE"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Dashboard.CacheSize)
	}
}

// EnsureDirectories creates all required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.DataDir,
		c.Storage.Path,
		c.ScratchDir(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
