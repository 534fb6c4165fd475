package benchmark

import (
	"context"
	"testing"

	"github.com/priceboard/priceboard/internal/config"
	"github.com/priceboard/priceboard/internal/dashboard"
	"github.com/priceboard/priceboard/internal/dataset"
	"github.com/priceboard/priceboard/internal/filter"
	"github.com/priceboard/priceboard/pkg/types"
)

const benchRows = 50000

// BenchmarkDatasetLoad measures a cold load: fetch, parse, and derive columns.
func BenchmarkDatasetLoad(b *testing.B) {
	st, dir, cleanup := getBenchmarkStorage(b, "load")
	defer cleanup()
	if dir == "" {
		b.Skip("dataset load benchmark requires local storage")
	}
	writeBenchmarkDataset(b, dir, "bench.csv", benchRows)

	cfg := config.DatasetConfig{Source: config.SourceCSV, Object: "bench.csv", Seed: dataset.DefaultSeed}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		loader := dataset.NewLoader(st, cfg, b.TempDir())
		table, err := loader.Load(context.Background())
		if err != nil {
			b.Fatal(err)
		}
		if len(table) != benchRows {
			b.Fatalf("expected %d rows, got %d", benchRows, len(table))
		}
	}
}

// BenchmarkRender measures a full uncached dashboard snapshot over a loaded table.
func BenchmarkRender(b *testing.B) {
	table := loadBenchTable(b)

	spec := types.FilterSpec{
		Brands:     []string{"HP", "Dell"},
		PriceRange: &types.PriceRange{Low: 15000, High: 45000},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Cache disabled so every iteration renders
		svc := dashboard.NewService(table, 20, 0)
		if _, err := svc.Render(spec, dashboard.SortRequest{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRenderCached measures the cache-hit path.
func BenchmarkRenderCached(b *testing.B) {
	table := loadBenchTable(b)
	svc := dashboard.NewService(table, 20, 16)
	spec := types.FilterSpec{Brands: []string{"HP"}}

	if _, err := svc.Render(spec, dashboard.SortRequest{}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Render(spec, dashboard.SortRequest{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFilterApply measures the raw filter pass.
func BenchmarkFilterApply(b *testing.B) {
	table := loadBenchTable(b)
	spec := types.FilterSpec{
		City:       types.CityAll,
		Brands:     []string{"Lenovo", "Acer"},
		PriceRange: &types.PriceRange{Low: 20000, High: 40000},
		RAMSizes:   []int{8, 16},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		filter.Apply(table, spec)
	}
}

func loadBenchTable(b *testing.B) types.Table {
	b.Helper()

	st, dir, cleanup := getBenchmarkStorage(b, "render")
	b.Cleanup(cleanup)
	if dir == "" {
		b.Skip("render benchmarks require local storage")
	}
	writeBenchmarkDataset(b, dir, "bench.csv", benchRows)

	cfg := config.DatasetConfig{Source: config.SourceCSV, Object: "bench.csv", Seed: dataset.DefaultSeed}
	loader := dataset.NewLoader(st, cfg, b.TempDir())
	table, err := loader.Load(context.Background())
	if err != nil {
		b.Fatal(err)
	}
	return table
}
