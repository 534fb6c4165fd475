// Package main implements the priceboard binary: it loads the laptop listing
// dataset once and serves the dashboard API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/priceboard/priceboard/internal/app"
	"github.com/priceboard/priceboard/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// A .env file is a development convenience; absence is not an error
	_ = godotenv.Load()

	var (
		configFile  string
		dataDir     string
		httpAddr    string
		seed        int64
		showVersion bool
		showHelp    bool
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&dataDir, "data-dir", "", "Base directory for scratch files")
	flag.StringVar(&httpAddr, "addr", "", "HTTP address for the dashboard API")
	flag.Int64Var(&seed, "seed", 0, "Seed for derived dataset columns (0 keeps the configured seed)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Priceboard - Laptop Price Analytics Dashboard\n\n")
		fmt.Fprintf(os.Stderr, "Usage: priceboard [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  priceboard --data-dir /data/priceboard\n")
		fmt.Fprintf(os.Stderr, "  priceboard --config /etc/priceboard/config.yaml\n")
		fmt.Fprintf(os.Stderr, "  priceboard --addr :9090 --seed 7\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PRICEBOARD_DATA_DIR        Base directory for scratch files\n")
		fmt.Fprintf(os.Stderr, "  PRICEBOARD_HTTP_ADDR       HTTP address for the dashboard API\n")
		fmt.Fprintf(os.Stderr, "  PRICEBOARD_DATASET_SOURCE  Dataset format (csv, sqlite)\n")
		fmt.Fprintf(os.Stderr, "  PRICEBOARD_DATASET_OBJECT  Dataset object path in storage\n")
		fmt.Fprintf(os.Stderr, "  PRICEBOARD_STORAGE_TYPE    Storage type (local, s3)\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("priceboard version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	cfg, err := loadConfig(configFile, dataDir, httpAddr, seed)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	printBanner(cfg)

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	log.Printf("Received signal: %v", sig)

	if err := application.Stop(context.Background()); err != nil {
		log.Printf("Shutdown error: %v", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration from file, environment, and command line flags.
func loadConfig(configFile, dataDir, httpAddr string, seed int64) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	config.LoadFromEnv(cfg)

	// Command line flags take highest priority
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}
	if seed != 0 {
		cfg.Dataset.Seed = seed
	}

	return cfg, nil
}

// printBanner prints the startup banner with configuration summary.
func printBanner(cfg *config.Config) {
	log.Printf("==============================================")
	log.Printf("  PRICEBOARD - Laptop Price Analytics")
	log.Printf("==============================================")
	log.Printf("")
	log.Printf("Configuration:")
	log.Printf("  Data Dir: %s", cfg.DataDir)
	log.Printf("  Storage:  %s", cfg.Storage.Type)
	log.Printf("  Dataset:  %s (%s, seed=%d)", cfg.Dataset.Object, cfg.Dataset.Source, cfg.Dataset.Seed)
	log.Printf("  HTTP:     %s", cfg.HTTP.Addr)
	log.Printf("")
}
