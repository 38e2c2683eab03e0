package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/leadgrid/leadgrid/internal/config"
	"github.com/leadgrid/leadgrid/internal/engine/scraper"
	"github.com/leadgrid/leadgrid/internal/engine/storage"
	"github.com/leadgrid/leadgrid/internal/export"
	"github.com/leadgrid/leadgrid/internal/model"
	"github.com/leadgrid/leadgrid/internal/tui"
)

func runScan(args []string) error {
	var params model.SearchParams
	var typesStr string
	cfg := scraper.DefaultConfig()

	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	fs.Float64Var(&params.Lat, "lat", 0, "Center latitude (required)")
	fs.Float64Var(&params.Lon, "lon", 0, "Center longitude (required)")
	fs.Float64Var(&params.RadiusKm, "radius", 0, "Search radius in km (required)")
	fs.StringVar(&typesStr, "types", "all", `Comma-separated business types, or "all"`)
	fs.StringVar(&params.Format, "format", "csv", "Output format: json|csv|sheet")
	fs.StringVar(&params.OutputDir, "output", ".tmp", "Output directory")
	fs.Float64Var(&cfg.CellSizeKm, "cell-size", cfg.CellSizeKm, "Grid cell edge length in km")
	fs.DurationVar(&cfg.CellDelay, "delay", cfg.CellDelay, "Pause between cell queries")
	fs.BoolVar(&params.NoTUI, "no-tui", false, "Disable the live progress view")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: leadgrid scan [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  leadgrid scan -lat 40.7128 -lon -74.0060 -radius 5\n")
		fmt.Fprintf(os.Stderr, "  leadgrid scan -lat 40.7128 -lon -74.0060 -radius 5 -types \"plumber,electrician\" -format json\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Validation, all before any network activity.
	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	if !seen["lat"] || !seen["lon"] || !seen["radius"] {
		fs.Usage()
		return fmt.Errorf("-lat, -lon and -radius are required")
	}

	area := params.Area()
	if err := area.Validate(); err != nil {
		return err
	}
	switch params.Format {
	case "json", "csv", "sheet":
	default:
		return fmt.Errorf("unsupported format %q (json|csv|sheet)", params.Format)
	}
	if cfg.CellSizeKm <= 0 {
		return fmt.Errorf("cell size must be greater than 0, got %.2f", cfg.CellSizeKm)
	}
	if cfg.CellDelay < 0 {
		return fmt.Errorf("delay must not be negative")
	}

	params.Types = parseTypes(typesStr)

	appCfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(params.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	baseName := "leadgrid_" + ts
	params.DBPath = filepath.Join(params.OutputDir, baseName+".db")
	params.LogPath = filepath.Join(params.OutputDir, baseName+".log")
	jsonPath := filepath.Join(params.OutputDir, baseName+".json")
	csvPath := filepath.Join(params.OutputDir, baseName+".csv")

	logFile, err := os.OpenFile(params.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)
	logger.Printf("=== Session start: center=%.4f,%.4f radius=%.1fkm types=%v format=%s cell_size=%.1fkm ===",
		params.Lat, params.Lon, params.RadiusKm, params.Types, params.Format, cfg.CellSizeKm)
	fmt.Fprintf(os.Stderr, "Log: %s\n", params.LogPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
		cancel()
	}()

	client := scraper.NewClient(appCfg.APIToken, cfg, logger)

	startTime := time.Now()
	var results *model.ResultSet
	if params.NoTUI {
		results, err = scraper.Run(ctx, area, params.Types, client, cfg, logger, nil)
	} else {
		results, err = tui.RunScan(ctx, area, params.Types, client, cfg, logger)
	}
	if err != nil {
		return fmt.Errorf("scan aborted: %w", err)
	}

	records := results.Records()

	// JSON is always written; it doubles as the raw intermediate output.
	if err := writeFile(jsonPath, func(f *os.File) error {
		return export.WriteJSON(f, records)
	}); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}

	wroteCSV := false
	if params.Format == "csv" || params.Format == "sheet" {
		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No businesses found; skipping CSV")
		} else {
			if err := writeFile(csvPath, func(f *os.File) error {
				return export.WriteCSV(f, records)
			}); err != nil {
				return fmt.Errorf("writing csv: %w", err)
			}
			wroteCSV = true
		}
	}
	if params.Format == "sheet" && wroteCSV {
		fmt.Fprintf(os.Stderr, "CSV ready for upload: %s\n", csvPath)
		fmt.Fprintln(os.Stderr, "Spreadsheet upload is not wired up; upload the CSV manually")
	}

	// Persist for later re-export.
	store, err := storage.NewStore(params.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	stored, err := store.InsertBatch(records)
	if err != nil {
		return fmt.Errorf("storing results: %w", err)
	}

	duration := time.Since(startTime).Truncate(time.Second)
	logger.Printf("Done: unique=%d stored=%d elapsed=%s", results.Len(), stored, duration)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "══════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Scan Complete\n")
	fmt.Fprintf(os.Stderr, "══════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Center:     %.4f, %.4f (r=%.1fkm)\n", params.Lat, params.Lon, params.RadiusKm)
	if len(params.Types) > 0 {
		fmt.Fprintf(os.Stderr, "  Types:      %s\n", strings.Join(params.Types, ", "))
	}
	fmt.Fprintf(os.Stderr, "  Unique:     %d\n", results.Len())
	fmt.Fprintf(os.Stderr, "  Duration:   %s\n", duration)
	fmt.Fprintf(os.Stderr, "  JSON:       %s\n", jsonPath)
	if wroteCSV {
		fmt.Fprintf(os.Stderr, "  CSV:        %s\n", csvPath)
	}
	fmt.Fprintf(os.Stderr, "  Database:   %s\n", params.DBPath)
	fmt.Fprintf(os.Stderr, "  Log:        %s\n", params.LogPath)
	fmt.Fprintf(os.Stderr, "══════════════════════════════\n")

	return nil
}

// parseTypes splits the comma-separated type filter. "all" (or empty)
// means no filter.
func parseTypes(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil
	}
	var types []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
