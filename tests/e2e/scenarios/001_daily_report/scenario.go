package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"log-analyzer/internal/analyzers"
	"log-analyzer/internal/app"
	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/configs"

	"github.com/klauspost/compress/gzip"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEntries = 64000 // Total number of well-formed log lines to generate
	badEvery     = 1000  // One malformed line is written after every badEvery good lines
)

var (
	paths = []string{"/api/v2/banner/1", "/api/v2/banner/2", "/api/v2/slot/4705/groups", "/export/appinstall_raw/"}
	// durations[i] is the request time of every line for paths[i]
	durations  = []float64{0.1, 0.2, 0.4, 0.8}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

// main runs the e2e scenario: 001_daily_report
//
// This scenario tests the end-to-end flow of locating, parsing, aggregating and
// reporting a day of nginx access logs, then reading the report back over HTTP.
//
// What it tests:
//   - Newest-date log selection among plain and gzip candidates
//   - Gzip decoding and line parsing, with malformed lines skipped and counted
//   - Per-URL aggregation and ranking by total request time
//   - Report persistence and the already_reported outcome of a repeated run
//   - GET /reports and GET /reports/{date}/table on the report server
//
// Expected results:
//   - The log dated 2025.12.28 is selected over the older one
//   - 64,064 lines are read, 64 of them malformed
//   - Four rows, ranked /export/appinstall_raw/ first down to /api/v2/banner/1
//   - Each row holds 16,000 requests (count_perc 25) and its time_sum is 16,000 x its duration
//   - The second run reports already_reported
func main() {
	// these configs can be changed to run the scenario
	dateCompact := "20251228"              // Date embedded in the generated log file name
	workDir := ".tmp/e2e/001_daily_report" // Working directory path relative to project root
	wantCleanWorkDir := true               // If true, clean up the working directory before running scenario

	projectRoot, err := findProjectRoot()
	if err != nil {
		fail("Could not find go.mod file: %v", err)
	}

	workPath, err := filepath.Abs(filepath.Join(projectRoot, workDir))
	if err != nil {
		fail("Failed to resolve working directory: %v", err)
	}

	if wantCleanWorkDir {
		fmt.Printf("Cleaning working directory: %s\n", workPath)
		if err := os.RemoveAll(workPath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean working directory: %v\n", err)
		}
		fmt.Println()
	}

	logDir := filepath.Join(workPath, "log")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fail("Failed to create log directory: %v", err)
	}

	fmt.Println("Starting e2e scenario: 001_daily_report")
	fmt.Printf("DATE: %s\n", dateCompact)
	fmt.Printf("WORK_PATH: %s\n", workPath)
	fmt.Printf("TOTAL_ENTRIES: %d\n", totalEntries)
	fmt.Println()

	// An older, plain log that must not be picked
	if err := os.WriteFile(filepath.Join(logDir, "nginx-access-ui.log-20240101"), []byte("stale\n"), 0o644); err != nil {
		fail("Failed to write stale log: %v", err)
	}
	logPath := filepath.Join(logDir, "nginx-access-ui.log-"+dateCompact+".gz")
	if err := writeLog(logPath); err != nil {
		fail("Failed to generate log: %v", err)
	}
	fmt.Printf("Generated %s\n\n", logPath)

	cfg, err := configs.LoadConfig("", true)
	if err != nil {
		fail("Failed to load default config: %v", err)
	}
	cfg.LogDir = logDir
	cfg.ReportDir = filepath.Join(workPath, "reports")
	cfg.Log.File = filepath.Join(workPath, "log-analyzer.log")
	cfg.Parser.ErrorThreshold = 0.01

	application, err := app.New(cfg)
	if err != nil {
		fail("Failed to initialize app: %v", err)
	}
	defer application.Close()

	ctx := context.Background()
	result, err := application.Analyze(ctx)
	if err != nil {
		fail("First run failed: %v", err)
	}
	fmt.Printf("First run: status=%s date=%s lines=%d malformed=%d rows=%d\n",
		result.Status, result.Date, result.Stats.Lines, result.Stats.Malformed, result.Rows)
	expect(result.Status == analyzers.StatusCreated, "first run status %s, want created", result.Status)
	expect(result.Date.Compact() == dateCompact, "first run date %s, want %s", result.Date.Compact(), dateCompact)
	expect(result.Stats.Lines == totalEntries+totalEntries/badEvery, "lines %d", result.Stats.Lines)
	expect(result.Stats.Malformed == totalEntries/badEvery, "malformed %d", result.Stats.Malformed)

	again, err := application.Analyze(ctx)
	if err != nil {
		fail("Second run failed: %v", err)
	}
	fmt.Printf("Second run: status=%s\n\n", again.Status)
	expect(again.Status == analyzers.StatusAlreadyReported, "second run status %s, want already_reported", again.Status)

	server := httptest.NewServer(application.Handler())
	defer server.Close()

	var links []struct {
		Date  models.LogDate `json:"date"`
		Table string         `json:"table"`
	}
	getJSON(server.URL+"/reports", &links)
	expect(len(links) == 1, "listed %d reports, want 1", len(links))

	var table models.ReportTable
	getJSON(server.URL+links[0].Table, &table)

	fmt.Println("=== Report ===")
	for _, row := range table.Rows {
		fmt.Printf("%-28s count=%d count_perc=%.3f time_sum=%.3f time_perc=%.3f time_med=%.3f\n",
			row.URL, row.Count, row.CountPerc, row.TimeSum, row.TimePerc, row.TimeMedian)
	}
	fmt.Println()

	expect(table.TotalCount == totalEntries, "total count %d", table.TotalCount)
	expect(len(table.Rows) == len(paths), "rows %d, want %d", len(table.Rows), len(paths))
	perPath := int64(totalEntries / len(paths))
	for i, row := range table.Rows {
		want := len(paths) - 1 - i
		expect(row.URL == paths[want], "row %d is %s, want %s", i, row.URL, paths[want])
		expect(row.Count == perPath, "row %s count %d, want %d", row.URL, row.Count, perPath)
		expect(row.CountPerc == 25, "row %s count_perc %.3f", row.URL, row.CountPerc)
		expect(closeTo(row.TimeSum, float64(perPath)*durations[want]), "row %s time_sum %.3f", row.URL, row.TimeSum)
		expect(closeTo(row.TimeMedian, durations[want]), "row %s time_med %.3f", row.URL, row.TimeMedian)
	}
	for _, count := range table.RequestsByUserAgent {
		expect(count == int64(totalEntries/len(userAgents)), "user agent count %d", count)
	}

	fmt.Println("Scenario completed successfully")
}

// writeLog writes totalEntries lines cycling through every path and user agent pair.
func writeLog(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	for i := 0; i < totalEntries; i++ {
		p := (i / len(userAgents)) % len(paths)
		ua := i % len(userAgents)
		seconds := i % 60
		_, err := fmt.Fprintf(zw,
			"1.196.116.32 -  - [28/Dec/2025:18:03:%02d +0000] \"GET %s HTTP/1.1\" 200 927 \"-\" \"%s\" \"-\" \"%d\" \"-\" %.3f\n",
			seconds, paths[p], userAgents[ua], i, durations[p])
		if err != nil {
			return err
		}
		if (i+1)%badEvery == 0 {
			if _, err := fmt.Fprintf(zw, "malformed line %d\n", i); err != nil {
				return err
			}
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return file.Close()
}

func getJSON(url string, out any) {
	resp, err := http.Get(url)
	if err != nil {
		fail("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fail("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		fail("GET %s: decode: %v", url, err)
	}
}

// findProjectRoot walks up from the working directory until it finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-6
}

func expect(ok bool, format string, args ...any) {
	if !ok {
		fail(format, args...)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
