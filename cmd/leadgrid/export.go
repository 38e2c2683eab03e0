package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leadgrid/leadgrid/internal/engine/storage"
	"github.com/leadgrid/leadgrid/internal/export"
)

func runExport(args []string) error {
	var dbPath, outputPath, format string

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.StringVar(&dbPath, "db", "", "Path to .db file (required)")
	fs.StringVar(&outputPath, "output", "", "Output file path (default: same dir as db)")
	fs.StringVar(&format, "format", "csv", "Export format: csv|json")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: leadgrid export [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  leadgrid export -db .tmp/leadgrid_20260829_120000.db\n")
		fmt.Fprintf(os.Stderr, "  leadgrid export -db leads.db -format json -output leads.json\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if dbPath == "" {
		return fmt.Errorf("-db is required")
	}
	if format != "csv" && format != "json" {
		return fmt.Errorf("unsupported format: %s (csv|json)", format)
	}

	if outputPath == "" {
		dir := filepath.Dir(dbPath)
		base := strings.TrimSuffix(filepath.Base(dbPath), ".db")
		outputPath = filepath.Join(dir, base+"."+format)
	}

	store, err := storage.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening db: %w", err)
	}
	defer store.Close()

	businesses, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("loading db: %w", err)
	}
	if len(businesses) == 0 {
		return fmt.Errorf("no businesses found in database")
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	switch format {
	case "json":
		err = export.WriteJSON(f, businesses)
	default:
		err = export.WriteCSV(f, businesses)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Exported %d businesses to %s\n", len(businesses), outputPath)
	return nil
}
