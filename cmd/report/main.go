// Command report builds markdown/CSV comparison reports from stored
// simulation runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"resilience-lab/internal/reporting"
	"resilience-lab/internal/storage/migrations"
	pgstore "resilience-lab/internal/storage/postgres"
)

func main() {
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (required)")
	outputDir := flag.String("output-dir", ".", "Directory for the generated files")
	format := flag.String("format", "both", "Output format: md, csv, both")

	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}
	if *format != "md" && *format != "csv" && *format != "both" {
		logger.Fatalf("Invalid --format: %s. Must be md, csv, or both", *format)
	}

	ctx := context.Background()

	pool, err := migrations.RunPostgresMigrations(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Postgres setup failed: %v", err)
	}
	defer pool.Close()

	gen := reporting.NewGenerator(pgstore.NewRunStore(pool))
	report, err := gen.Generate(ctx)
	if err != nil {
		logger.Fatalf("Report generation failed: %v", err)
	}
	logger.Printf("Loaded %d run(s)", report.RunCount)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logger.Fatalf("Create output dir: %v", err)
	}

	if *format == "md" || *format == "both" {
		path := filepath.Join(*outputDir, "resilience_report.md")
		if err := os.WriteFile(path, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
			logger.Fatalf("Write %s: %v", path, err)
		}
		fmt.Println(path)
	}
	if *format == "csv" || *format == "both" {
		path := filepath.Join(*outputDir, "resilience_runs.csv")
		if err := os.WriteFile(path, []byte(reporting.RenderCSV(report.Rows)), 0o644); err != nil {
			logger.Fatalf("Write %s: %v", path, err)
		}
		fmt.Println(path)
	}
}
