// Package app wires configuration, storage, the pipeline and the
// scheduler into a running process.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghananews/aggregator/internal/cache"
	"github.com/ghananews/aggregator/internal/config"
	"github.com/ghananews/aggregator/internal/logger"
	"github.com/ghananews/aggregator/internal/news"
	"github.com/ghananews/aggregator/internal/pipeline"
	"github.com/ghananews/aggregator/internal/rss"
	"github.com/ghananews/aggregator/internal/scheduler"
	"github.com/ghananews/aggregator/internal/storage"
)

// Run starts the scraper bot and blocks until SIGINT/SIGTERM.
func Run() error {
	cfg := config.Load()
	logger.Init()

	sources, err := rss.LoadSources(cfg.FeedsConfigPath)
	if err != nil {
		return fmt.Errorf("load feed sources: %w", err)
	}

	rules, err := news.LoadCategoryRules(cfg.KeywordsConfigPath)
	if err != nil {
		return fmt.Errorf("load keyword lists: %w", err)
	}

	triggers, err := news.LoadAffiliateTriggers(cfg.AffiliatesConfigPath)
	if err != nil {
		return fmt.Errorf("load affiliate triggers: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	poller := rss.NewPoller(rss.PollerOptions{
		Timeout:    cfg.FetchTimeout,
		MaxEntries: cfg.MaxEntriesPerFeed,
		Attempts:   cfg.FetchAttempts,
		RetryDelay: cfg.FetchRetryDelay,
	})

	pipe := pipeline.New(pipeline.Options{
		Store:       store,
		Poller:      poller,
		Sources:     sources,
		Categorizer: news.NewCategorizer(rules),
		Tagger:      news.NewAffiliateTagger(triggers),
		Seen:        cache.NewSeen(cfg.SeenCacheTTL),
		Workers:     cfg.FetchWorkers,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RecategorizeOnStart {
		if err := pipe.RecategorizeAll(ctx); err != nil {
			logger.Error("recategorize pass aborted", "error", err)
		}
	}

	sched := scheduler.New()
	sched.Add("ingestion", cfg.ScrapeInterval, pipe.RunIngestion)
	sched.Add("rescoring", cfg.RescoreInterval, pipe.RunRescoring)
	sched.Start(ctx)

	logger.Info("scraper bot started",
		"sources", len(sources),
		"scrape_interval", cfg.ScrapeInterval,
		"rescore_interval", cfg.RescoreInterval)

	<-ctx.Done()

	logger.Info("shutting down, waiting for running cycles")
	sched.Stop()
	return nil
}

// openStore picks Postgres when DATABASE_URL is set, the JSON file
// store otherwise.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		return storage.NewPostgres(cfg.DatabaseURL)
	}

	logger.Warn("DATABASE_URL not set, using file store", "path", cfg.FileStorePath)
	return storage.NewFileStore(cfg.FileStorePath)
}
