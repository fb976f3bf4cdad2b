package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/receipt-lens/receipt-lens/internal/auth"
	"github.com/receipt-lens/receipt-lens/internal/batch"
	"github.com/receipt-lens/receipt-lens/internal/cloudstore"
	"github.com/receipt-lens/receipt-lens/internal/config"
	"github.com/receipt-lens/receipt-lens/internal/export"
	"github.com/receipt-lens/receipt-lens/internal/logger"
	"github.com/receipt-lens/receipt-lens/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := ff.NewFlagSet("receipt-lens")
	var (
		bucket   = fs.StringLong("bucket", cfg.Bucket, "Cloud storage bucket holding receipt images (or set RECEIPT_LENS_GCS_BUCKET)")
		folder   = fs.StringLong("folder", "", "Folder within the bucket to process")
		apiURL   = fs.StringLong("api-url", cfg.APIBaseURL, "Extraction service base URL")
		token    = fs.StringLong("token", cfg.AccessToken, "Access token for the extraction service")
		outPath  = fs.StringLong("out", "receipts.csv", "Output CSV path")
		logLevel = fs.StringLong("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	)

	if err := ff.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*logLevel)
	ctx := logger.WithContext(context.Background(), log)

	session := auth.NewSession(*token)
	if !session.Valid() {
		log.Fatal().Msg("An access token is required (--token or RECEIPT_LENS_ACCESS_TOKEN)")
	}

	store, err := cloudstore.NewGCS(ctx, *bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cloud storage")
	}
	defer store.Close()

	entries, err := store.List(ctx, *folder)
	if err != nil {
		log.Fatal().Err(err).Str("folder", *folder).Msg("Failed to list folder")
	}
	paths := cloudstore.FilePaths(entries)
	if len(paths) == 0 {
		log.Fatal().Str("folder", *folder).Msg("No processable files in folder")
	}
	log.Info().Int("files", len(paths)).Str("folder", *folder).Msg("Submitting batch")

	client := batch.NewClient(*apiURL, log)
	proc := batch.NewProcessor(client, log)

	run, err := proc.Process(ctx, session, paths)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to submit batch")
	}

	// First Ctrl-C cancels the batch, second one exits hard.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn().Msg("Cancelling batch")
		proc.Cancel()
		<-sigCh
		os.Exit(1)
	}()

	outcome := run.Wait()
	progress := proc.Progress()
	log.Info().
		Int("completed", progress.Completed).
		Int("total", progress.Total).
		Msg("Batch ended")

	if outcome.Kind == batch.Cancelled {
		log.Warn().Msg("Batch cancelled; exporting the records received so far")
	}

	results := proc.Results()
	totals := summary.Totals(results)
	for _, t := range totals {
		log.Info().
			Str("category", string(t.Category)).
			Int("count", t.Count).
			Int("total_amount", t.TotalAmount).
			Msg("Category total")
	}
	if len(totals) > 0 {
		log.Info().Int("grand_total", summary.GrandTotal(totals)).Msg("Grand total")
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to create output file")
	}
	defer f.Close()

	if err := export.WriteCSV(f, results); err != nil {
		log.Fatal().Err(err).Msg("Failed to write CSV")
	}
	log.Info().Str("path", *outPath).Int("records", len(results)).Msg("Export written")

	if outcome.Kind == batch.Failed {
		os.Exit(1)
	}
}
