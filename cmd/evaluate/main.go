// Command evaluate runs the alert engine offline against a JSON file of water
// records. The most recent year is evaluated with the full file as history,
// and the resulting alerts and advisories are printed as JSON.
//
// Usage:
//
//	go run ./cmd/evaluate -records testdata/pune.json
//	go run ./cmd/evaluate -records testdata/pune.json -at 2024-06-01T00:00:00Z
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/scoring"
)

func main() {
	recordsPath := flag.String("records", "", "path to a JSON array of water records for one location")
	at := flag.String("at", "", "optional RFC3339 timestamp to evaluate at (defaults to now)")
	flag.Parse()

	if *recordsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*recordsPath, *at); code != 0 {
		os.Exit(code)
	}
}

func run(recordsPath, at string) int {
	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -at timestamp: %v\n", err)
			return 1
		}
		domain.SetClock(clockwork.NewFakeClockAt(t))
		defer domain.SetClock(nil)
	}

	records, err := loadRecords(recordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load records: %v\n", err)
		return 1
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "no records in file")
		return 1
	}

	latest := records[0]
	for _, rec := range records[1:] {
		if rec.Year > latest.Year {
			latest = rec
		}
	}

	engine := domain.NewEngine(
		domain.NewEvaluator(domain.DefaultThresholds()),
		domain.NewTrendScanner(scoring.NewWeightedCalculator()),
	)

	alerts := engine.GenerateAlerts(latest, records)
	if alerts == nil {
		alerts = []domain.Alert{}
	}

	out := map[string]any{
		"location":   latest.Location,
		"year":       latest.Year,
		"alerts":     alerts,
		"advisories": domain.GenerateAdvisories(latest),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		return 1
	}
	return 0
}

func loadRecords(path string) ([]domain.WaterRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []domain.WaterRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
