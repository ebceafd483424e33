// Package pipeline orchestrates the ingestion and rescoring cycles.
// It contains no scoring or parsing logic of its own; its job is
// ordering the steps and making sure one source, one entry or one
// article failing never takes anything else down with it.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ghananews/aggregator/internal/cache"
	"github.com/ghananews/aggregator/internal/logger"
	"github.com/ghananews/aggregator/internal/metrics"
	"github.com/ghananews/aggregator/internal/news"
	"github.com/ghananews/aggregator/internal/rss"
	"github.com/ghananews/aggregator/internal/storage"
)

// Options wire the pipeline's collaborators.
type Options struct {
	Store       storage.Store
	Poller      *rss.Poller
	Sources     []rss.Source
	Categorizer *news.Categorizer
	Tagger      *news.AffiliateTagger
	Seen        *cache.SeenCache
	Workers     int
	Now         func() time.Time // test hook
}

type Pipeline struct {
	store       storage.Store
	poller      *rss.Poller
	sources     []rss.Source
	categorizer *news.Categorizer
	tagger      *news.AffiliateTagger
	seen        *cache.SeenCache
	workers     int
	now         func() time.Time
}

func New(opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Categorizer == nil {
		opts.Categorizer = news.NewCategorizer(nil)
	}
	if opts.Tagger == nil {
		opts.Tagger = news.NewAffiliateTagger(nil)
	}

	return &Pipeline{
		store:       opts.Store,
		poller:      opts.Poller,
		sources:     opts.Sources,
		categorizer: opts.Categorizer,
		tagger:      opts.Tagger,
		seen:        opts.Seen,
		workers:     opts.Workers,
		now:         opts.Now,
	}
}

// RunIngestion executes one scrape cycle: every source is fetched
// independently (bounded workers) and each entry flows through
// normalize → dedup → categorize → score → affiliates → insert.
func (p *Pipeline) RunIngestion(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.Global.RecordCycleTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	logger.Info("starting scrape cycle", "sources", len(p.sources))

	var inserted atomic.Int64
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for _, src := range p.sources {
		wg.Add(1)
		go func(src rss.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			inserted.Add(int64(p.processSource(ctx, src)))
		}(src)
	}
	wg.Wait()

	logger.Info("scrape cycle complete", "inserted", inserted.Load())
	return ctx.Err()
}

// processSource handles one feed. Fetch and parse failures are logged
// and cost this source its entries for the cycle, nothing more.
func (p *Pipeline) processSource(ctx context.Context, src rss.Source) int {
	items, err := p.poller.FetchSource(ctx, src)
	if err != nil {
		logger.Error("feed fetch failed", "source", src.Name, "url", src.URL, "error", err)
		metrics.Global.IncrementFetchErrors()
		return 0
	}

	metrics.Global.AddEntriesSeen(len(items))

	count := 0
	for _, item := range items {
		if ctx.Err() != nil {
			return count
		}
		if p.processItem(ctx, item, src) {
			count++
		}
	}
	return count
}

// processItem runs one entry through the pipeline. Returns true when a
// new article was stored. Duplicates are an expected outcome, not a
// failure; they are counted and skipped silently.
func (p *Pipeline) processItem(ctx context.Context, item *gofeed.Item, src rss.Source) bool {
	hash := news.TitleHash(item.Title)

	if p.seen != nil && p.seen.Seen(hash) {
		metrics.Global.IncrementDuplicatesFiltered()
		return false
	}

	_, err := p.store.FindByTitleHash(ctx, hash)
	if err == nil {
		p.markSeen(hash)
		metrics.Global.IncrementDuplicatesFiltered()
		return false
	}
	if !errors.Is(err, storage.ErrNotFound) {
		logger.Error("dedup lookup failed", "source", src.Name, "error", err)
		return false
	}

	now := p.now()
	article := news.Normalize(item, src, now)
	article.Category = p.categorizer.Categorize(article.Title, article.Summary)
	article.Affiliates = p.tagger.Match(article.Title + " " + article.Summary)
	article.TrendingScore = news.TrendingScore(0, 0, news.HoursSince(article.PublishedAt, now))

	if _, err := p.store.Insert(ctx, &article); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// Another cycle or process won the race; same as a dedup hit.
			p.markSeen(hash)
			metrics.Global.IncrementDuplicatesFiltered()
			return false
		}
		logger.Error("article insert failed", "source", src.Name, "title", article.Title, "error", err)
		metrics.Global.IncrementInsertErrors()
		return false
	}

	p.markSeen(hash)
	metrics.Global.IncrementArticlesInserted()
	logger.Info("article stored", "category", article.Category, "source", src.Name, "title", article.Title)
	return true
}

func (p *Pipeline) markSeen(hash string) {
	if p.seen != nil {
		p.seen.Mark(hash)
	}
}

// RunRescoring recomputes the trending score of every stored article
// from its current views/shares and fixed publish time. A malformed
// record or failed write is logged and skipped; the batch continues.
func (p *Pipeline) RunRescoring(ctx context.Context) error {
	logger.Info("updating trending scores")

	records, err := p.store.ListForRescoring(ctx)
	if err != nil {
		logger.Error("rescoring list failed", "error", err)
		return nil
	}

	now := p.now()
	updated := 0
	for _, r := range records {
		if ctx.Err() != nil {
			break
		}
		if r.PublishedAt.IsZero() {
			logger.Warn("score update skipped, missing publish time", "id", r.ID)
			metrics.Global.IncrementRescoreErrors()
			continue
		}

		score := news.TrendingScore(r.Views, r.Shares, news.HoursSince(r.PublishedAt, now))
		if err := p.store.UpdateScore(ctx, r.ID, score); err != nil {
			logger.Warn("score update failed", "id", r.ID, "error", err)
			metrics.Global.IncrementRescoreErrors()
			continue
		}
		metrics.Global.IncrementArticlesRescored()
		updated++
	}

	logger.Info("trending scores updated", "updated", updated, "total", len(records))
	return ctx.Err()
}

// RecategorizeAll re-runs categorization over every stored article.
// An opt-in maintenance pass for after keyword list changes.
func (p *Pipeline) RecategorizeAll(ctx context.Context) error {
	logger.Info("recategorizing existing articles")

	records, err := p.store.ListForRecategorize(ctx)
	if err != nil {
		logger.Error("recategorize list failed", "error", err)
		return nil
	}

	fixed := 0
	for _, r := range records {
		if ctx.Err() != nil {
			break
		}

		category := p.categorizer.Categorize(r.Title, r.Summary)
		if err := p.store.UpdateCategory(ctx, r.ID, category); err != nil {
			logger.Warn("category update failed", "id", r.ID, "error", err)
			continue
		}
		fixed++
	}

	logger.Info("recategorized articles", "count", fixed)
	return ctx.Err()
}
