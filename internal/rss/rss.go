// Package rss fetches and parses the configured syndication feeds.
package rss

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/ghananews/aggregator/internal/logger"
	"github.com/ghananews/aggregator/internal/retry"
)

// Source is one configured feed endpoint. Loaded at startup and
// immutable for the process lifetime.
type Source struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Region string `yaml:"region"`
}

// SourcesConfig is the YAML config structure
// sources:
//   - name: CitiNews
//     url: https://...
//     region: ghana
type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// DefaultSources is the production feed set used when no feeds file
// is configured.
var DefaultSources = []Source{
	{Name: "CitiNews", URL: "https://citinewsroom.com/feed/", Region: "ghana"},
	{Name: "JoyOnline", URL: "https://www.myjoyonline.com/feed/", Region: "ghana"},
	{Name: "GhanaWeb", URL: "https://www.ghanaweb.com/GhanaHomePage/rss/index.php", Region: "ghana"},
	{Name: "Graphic Online", URL: "https://www.graphic.com.gh/feed/rss", Region: "ghana"},
	{Name: "GhanaBusinessNews", URL: "https://www.ghanabusinessnews.com/feed/", Region: "ghana"},
	{Name: "BBC Africa", URL: "http://feeds.bbci.co.uk/news/world/africa/rss.xml", Region: "africa"},
	{Name: "Reuters Africa", URL: "https://feeds.reuters.com/reuters/AFRICANews", Region: "africa"},
	{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Region: "global"},
}

// LoadSources reads the feed list from a YAML file. A missing file is
// not an error; the built-in defaults are used instead.
func LoadSources(path string) ([]Source, error) {
	if path == "" {
		return DefaultSources, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("feeds config not found, using defaults", "path", path)
			return DefaultSources, nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Sources) == 0 {
		return DefaultSources, nil
	}
	return cfg.Sources, nil
}

// Poller fetches one source at a time. Every fetch carries its own
// timeout so a stalled endpoint cannot stall a whole cycle. The HTTP
// client is shared; the gofeed parser is not, because it mutates
// internal translator state on first use and FetchSource runs
// concurrently across sources.
type Poller struct {
	client     *http.Client
	timeout    time.Duration
	maxEntries int
	retryCfg   retry.Config
}

// PollerOptions tune the per-source fetch behavior.
type PollerOptions struct {
	Timeout    time.Duration
	MaxEntries int
	Attempts   int
	RetryDelay time.Duration
}

// NewPoller builds a poller with a timeout-bounded HTTP client.
func NewPoller(opts PollerOptions) *Poller {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 20
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 1
	}

	return &Poller{
		client:     &http.Client{Timeout: opts.Timeout},
		timeout:    opts.Timeout,
		maxEntries: opts.MaxEntries,
		retryCfg: retry.Config{
			MaxAttempts: opts.Attempts,
			Delay:       opts.RetryDelay,
		},
	}
}

// FetchSource downloads and parses one feed. It returns at most
// maxEntries items in feed-native order; entries without a title are
// dropped because no dedup fingerprint can be derived for them.
// Errors are the caller's to log; a failing source must never abort
// the others in the same cycle.
func (p *Poller) FetchSource(ctx context.Context, src Source) ([]*gofeed.Item, error) {
	parser := gofeed.NewParser()
	parser.Client = p.client

	var feed *gofeed.Feed

	err := retry.WithRetry(ctx, p.retryCfg, func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		var parseErr error
		feed, parseErr = parser.ParseURLWithContext(src.URL, fetchCtx)
		return parseErr
	})
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if len(items) > p.maxEntries {
		items = items[:p.maxEntries]
	}

	kept := make([]*gofeed.Item, 0, len(items))
	for _, item := range items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		kept = append(kept, item)
	}

	logger.Debug("fetched feed", "source", src.Name, "entries", len(feed.Items), "kept", len(kept))
	return kept, nil
}
