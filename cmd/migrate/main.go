package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gocirc/adapters/postgres"
	"gocirc/domain/circular"
)

// Creates the report schema and optionally backfills JSON report files
// produced by the CLI into the database.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [reports_dir]")
	}
	databaseURL := os.Args[1]

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := postgres.NewReportRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Printf("Schema ready")

	if len(os.Args) < 3 {
		return
	}
	reportsDir := os.Args[2]

	files, err := findReportFiles(reportsDir)
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", reportsDir, err)
	}
	log.Printf("Found %d report files to import", len(files))

	imported := 0
	skipped := 0
	for _, file := range files {
		report, err := loadReportFromFile(file)
		if err != nil {
			log.Printf("Failed to load %s: %v", file, err)
			skipped++
			continue
		}
		if report.RunID == "" {
			log.Printf("Skipping %s: no run_id", filepath.Base(file))
			skipped++
			continue
		}
		if err := repo.Save(ctx, report); err != nil {
			log.Printf("Failed to save report %s: %v", report.RunID, err)
			skipped++
			continue
		}
		imported++
		log.Printf("Imported report %s from %s", report.RunID, filepath.Base(file))
	}

	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)
}

func findReportFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func loadReportFromFile(path string) (*circular.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report circular.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
