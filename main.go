package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"gmaps-scraper/browser"
	"gmaps-scraper/config"
	"gmaps-scraper/scraper/gmaps"
	"gmaps-scraper/services"
	"gmaps-scraper/storage"
	"gmaps-scraper/utils"
)

func main() {
	search := flag.String("search", "", `search query, comma-separated for several (e.g. "restaurants in Kolkata")`)
	maxResults := flag.Int("max-results", 0, "maximum number of businesses per query (0 = config default)")
	headless := flag.Bool("headless", false, "run the browser in headless mode")
	outputFormat := flag.String("output-format", "", "csv, json, excel or all (overrides OUTPUT_FORMAT)")
	concurrency := flag.Int("concurrency", 1, "parallel browser sessions when scraping multiple queries")
	validateSites := flag.Bool("validate-websites", false, "drop website URLs that fail the domain heuristics")
	flag.Parse()

	if err := run(*search, *maxResults, *headless, *outputFormat, *concurrency, *validateSites); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(search string, maxResults int, headless bool, outputFormat string, concurrency int, validateSites bool) error {
	cfg := config.Load()
	if headless {
		cfg.Headless = true
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}

	logger := utils.NewLogger(cfg.Debug)
	defer logger.Sync()

	queries := splitQueries(search)
	if len(queries) == 0 {
		return fmt.Errorf("no search query given (use -search)")
	}

	logger.Info("==================================================")
	logger.Info("Starting Google Maps Scraper")
	logger.Info("  queries:       %s", strings.Join(queries, " | "))
	logger.Info("  max results:   %d", maxResults)
	logger.Info("  headless:      %v", cfg.Headless)
	logger.Info("  output format: %s", cfg.OutputFormat)
	logger.Info("==================================================")

	// Ctrl-C cancels cooperatively: each pipeline saves what it has,
	// then releases its browser.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saver, err := storage.NewFileSaver(cfg.OutputDir, cfg.OutputFormat, logger)
	if err != nil {
		return err
	}

	var archive storage.BusinessWriter
	if cfg.ArchiveToDB {
		pg, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect to postgres archive: %w", err)
		}
		defer pg.Close()
		archive = pg
	}

	validator := services.NewWebsiteValidator(logger)
	if validateSites {
		validator = validator.WithMXCheck(services.LookupMX)
	}

	manager := browser.NewManager(cfg, logger)
	reports := services.NewReportService(logger)

	// One independent pipeline (and browser session) per query.
	pool := utils.NewWorkerPool(concurrency)
	var failures int64

	for _, query := range queries {
		query := query
		pool.Submit(func() {
			scraper := gmaps.New(cfg, logger, manager, saver)

			businesses, err := scraper.Scrape(ctx, query, maxResults)
			if err != nil {
				logger.Error("scrape %q failed: %v", query, err)
				atomic.AddInt64(&failures, 1)
				return
			}

			if validateSites {
				for _, b := range businesses {
					b.Website = validator.Validate(b.Website, b.Name)
				}
			}

			reports.Print(reports.Generate(businesses, scraper.Summary(query)))

			if archive != nil && len(businesses) > 0 {
				if err := archive.Write(businesses); err != nil {
					logger.Error("postgres archive failed for %q: %v", query, err)
				} else {
					logger.Info("archived %d businesses to postgres", len(businesses))
				}
			}
		})
	}
	pool.Wait()

	if ctx.Err() != nil {
		logger.Info("scraping interrupted by user")
		return nil
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d queries failed", failures, len(queries))
	}
	return nil
}

func splitQueries(raw string) []string {
	var queries []string
	for _, q := range strings.Split(raw, ",") {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	return queries
}
