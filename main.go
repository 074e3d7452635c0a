package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	"rental-comps/api"
	"rental-comps/config"
	"rental-comps/models"
	"rental-comps/scraper/fetcher"
	"rental-comps/scraper/zillow"
	"rental-comps/services"
	"rental-comps/storage"
	"rental-comps/utils"
)

const usage = `usage: rental-comps [command]

commands:
  scrape            search every configured location, rank and report (default)
  report [run-id]   rebuild the report from listings.json, or from a stored run ("latest" for the newest)
  serve             run the HTTP search API`

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithOptions(utils.LoggerOptions{Level: cfg.LogLevel, Color: cfg.LogColor})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "scrape"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	var err error
	switch command {
	case "scrape":
		err = runScrape(ctx, cfg, logger)
	case "report":
		err = runReport(cfg, logger, os.Args[2:])
	case "serve":
		err = runServe(ctx, cfg, logger)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("%s failed: %v", command, err)
		stop()
		os.Exit(1)
	}
}

func runScrape(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	logger.Info("=== Rental comp scrape starting ===")
	logger.Info("Config: locations %q | backend %s | enrich %d | profile %dbd/%gba %d sqft %s",
		cfg.Locations, cfg.FetchBackend, cfg.EnrichLimit, profile.Beds, profile.Baths, profile.Sqft, profile.ZipCode)

	f, closeFetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	scraper := newScraper(cfg, f, logger)

	var batches [][]models.Listing
	for _, location := range cfg.Locations {
		res, err := scraper.Search(ctx, cfg.Criteria(location))
		if err != nil {
			logger.Error("Search for %q failed: %v", location, err)
			continue
		}
		batches = append(batches, res.Listings)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	listings := services.NewCleaner(logger).Merge(batches...)
	if len(listings) == 0 {
		return errors.New("no listings were extracted")
	}

	snapshotPath := filepath.Join(cfg.OutputDir, "listings.json")
	if err := storage.WriteSnapshot(snapshotPath, listings); err != nil {
		return err
	}
	logger.Info("Raw listings saved to %s", snapshotPath)

	ranked := services.Rank(listings, profile)
	run := storage.NewRun()

	if err := writeReport(cfg, logger, ranked, profile); err != nil {
		return err
	}
	persist(cfg, logger, run, ranked)

	logger.Info("Done. Run %s: %d comps", run.ID, len(ranked))
	return nil
}

func runReport(cfg *config.Config, logger *utils.Logger, args []string) error {
	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	var listings []models.Listing
	if len(args) > 0 {
		listings, err = loadRun(cfg, logger, args[0])
	} else {
		listings, err = storage.LoadSnapshot(filepath.Join(cfg.OutputDir, "listings.json"))
	}
	if err != nil {
		return err
	}

	return writeReport(cfg, logger, services.Rank(listings, profile), profile)
}

// loadRun reads a stored run's listings; their scores are recomputed by the caller.
func loadRun(cfg *config.Config, logger *utils.Logger, runArg string) ([]models.Listing, error) {
	if !cfg.PostgresEnabled {
		return nil, errors.New("reading a stored run needs POSTGRES_ENABLED=true")
	}
	pg, err := storage.NewPostgresWriter(cfg.DSN(), newRetry(cfg, logger))
	if err != nil {
		return nil, err
	}
	defer pg.Close()

	var runID uuid.UUID
	if runArg == "latest" {
		runID, err = pg.LatestRun()
	} else {
		runID, err = uuid.Parse(runArg)
	}
	if err != nil {
		return nil, fmt.Errorf("run id %q: %w", runArg, err)
	}

	comps, err := pg.FetchRun(runID)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded %d comps from run %s", len(comps), runID)

	listings := make([]models.Listing, 0, len(comps))
	for _, c := range comps {
		listings = append(listings, c.Listing)
	}
	return listings, nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	f, closeFetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	handler, err := api.NewSearchHandler(newScraper(cfg, f, logger), logger)
	if err != nil {
		return err
	}
	server := api.NewServer(cfg.HTTPPort, handler, cfg.CORSOrigins, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}

func newFetcher(cfg *config.Config, logger *utils.Logger) (fetcher.Fetcher, func(), error) {
	timeout := time.Duration(cfg.FetchTimeoutSec) * time.Second

	switch cfg.FetchBackend {
	case "browser":
		bf, err := fetcher.NewBrowserFetcher(cfg.ChromeBin, timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		return bf, bf.Close, nil
	case "http", "":
		return fetcher.NewHTTPFetcher(timeout, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown FETCH_BACKEND %q (want http or browser)", cfg.FetchBackend)
	}
}

func newScraper(cfg *config.Config, f fetcher.Fetcher, logger *utils.Logger) *zillow.Scraper {
	resolver := zillow.NewResolver(zillow.DefaultAreaSlugs, zillow.DefaultRegion)
	enricher := zillow.NewEnricher(f, logger, cfg.EnrichLimit, cfg.EnrichRateMs)
	return zillow.New(f, resolver, enricher, logger)
}

func newRetry(cfg *config.Config, logger *utils.Logger) *utils.RetryConfig {
	return &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
}

func writeReport(cfg *config.Config, logger *utils.Logger, ranked []models.ScoredListing, profile models.PropertyProfile) error {
	insights := services.NewInsightService(logger, cfg.ReportTimezone)
	report := insights.Generate(ranked, profile)
	insights.Print(report)

	reportPath := filepath.Join(cfg.OutputDir, "report.txt")
	if err := storage.WriteReport(reportPath, insights.Render(report)); err != nil {
		return err
	}
	logger.Info("Report saved to %s", reportPath)
	return nil
}

// persist writes the ranked comps to CSV and, when enabled, PostgreSQL.
// Storage failures are logged; the report has already been written.
func persist(cfg *config.Config, logger *utils.Logger, run storage.Run, ranked []models.ScoredListing) {
	var writers []storage.CompWriter

	csvPath := filepath.Join(cfg.OutputDir, "comps.csv")
	csvWriter, err := storage.NewCSVWriter(csvPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		writers = append(writers, csvWriter)
	}

	if cfg.PostgresEnabled {
		pg, err := storage.NewPostgresWriter(cfg.DSN(), newRetry(cfg, logger))
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			writers = append(writers, pg)
		}
	}

	for _, w := range writers {
		err := w.Write(run, ranked)
		if err != nil {
			logger.Error("Storing comps failed: %v", err)
		}
		if cerr := w.Close(); cerr != nil {
			logger.Warn("Closing writer: %v", cerr)
		}
		if err == nil && w == storage.CompWriter(csvWriter) {
			logger.Info("Comps saved to %s (run %s)", csvPath, run.ID)
		}
	}
}
