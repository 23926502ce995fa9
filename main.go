package main

import (
	"context"
	"flag"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
	"github.com/VenEttore/nw-planner/internal/processing"
	"github.com/VenEttore/nw-planner/internal/sheets"
	"github.com/VenEttore/nw-planner/internal/storage"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	fromFlag := flag.String("from", "", "Range start (RFC 3339); defaults to now")
	toFlag := flag.String("to", "", "Range end (RFC 3339); defaults to start + 7 days")
	export := flag.Bool("export", false, "Write the conflict report to the configured spreadsheet")
	flag.Parse()

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	from, to, err := resolveRange(*fromFlag, *toFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid scan range")
	}

	log.Info().
		Time("from", from).
		Time("to", to).
		Str("database", config.DatabasePath).
		Msg("Starting war conflict scan")

	store, err := storage.Open(config.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open planner database")
	}
	defer store.Close()

	ctx := context.Background()

	rules := processing.NewWarRulesService(store)
	scanner := processing.NewRangeScanner(rules, store)

	summaries, err := scanner.ScanRange(ctx, from, to)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to scan range")
	}

	flagged := 0
	for _, summary := range summaries {
		if summary.Counts.Hard == 0 && summary.Counts.Soft == 0 {
			continue
		}
		flagged++
		log.Warn().
			Int64("event_id", summary.EventID).
			Str("caps", string(summary.Summaries.Caps)).
			Str("steam_dupes", string(summary.Summaries.SteamDupes)).
			Str("overlaps", string(summary.Summaries.Overlaps)).
			Int("hard", summary.Counts.Hard).
			Int("soft", summary.Counts.Soft).
			Msg("War scheduling conflict")
	}

	log.Info().
		Int("events", len(summaries)).
		Int("flagged", flagged).
		Msg("Completed war conflict scan")

	if *export {
		if config.SpreadsheetID == "" {
			log.Fatal().Msg("SPREADSHEET_ID must be set to export the report")
		}

		client, err := sheets.NewClient(ctx, config.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}

		writer := sheets.NewReportWriter(client, config.SpreadsheetID)
		if err := writer.WriteConflictReport(ctx, from, to, summaries); err != nil {
			log.Fatal().Err(err).Msg("Failed to export conflict report")
		}
	}
}

// resolveRange parses the flag pair, defaulting to the week ahead.
func resolveRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Now().UTC()
	if fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	to := from.AddDate(0, 0, 7)
	if toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}
