// Package storage implements the persistence gateway for articles.
// Two backends exist: Postgres for production and a JSON file store
// for local runs and tests.
package storage

import (
	"context"
	"errors"

	"github.com/ghananews/aggregator/internal/news"
)

// ErrNotFound is returned when no article matches a lookup.
var ErrNotFound = errors.New("article not found")

// ErrConflict is returned when an insert hits an existing title hash.
// Callers treat it as a successful dedup, not a failure.
var ErrConflict = errors.New("article with this title hash already exists")

// Store is the persistence gateway the pipeline writes through.
type Store interface {
	// FindByTitleHash returns the stored article with the given dedup
	// fingerprint, or ErrNotFound.
	FindByTitleHash(ctx context.Context, hash string) (*news.Article, error)

	// Insert stores a new article and returns it with the assigned ID.
	// A concurrent duplicate surfaces as ErrConflict.
	Insert(ctx context.Context, article *news.Article) (*news.Article, error)

	// ListForRescoring returns the minimal fields the rescoring cycle
	// needs, one pass per cycle.
	ListForRescoring(ctx context.Context) ([]news.ScoreRecord, error)

	// UpdateScore writes back a recomputed trending score. The only
	// field the rescoring cycle may mutate.
	UpdateScore(ctx context.Context, id int64, score float64) error

	// ListForRecategorize returns id/title/summary for the opt-in
	// startup recategorize pass.
	ListForRecategorize(ctx context.Context) ([]news.TextRecord, error)

	// UpdateCategory rewrites one article's category.
	UpdateCategory(ctx context.Context, id int64, category string) error

	Close() error
}
