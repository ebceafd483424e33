package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ghananews/aggregator/internal/logger"
	"github.com/ghananews/aggregator/internal/news"
)

// uniqueViolation is the Postgres error code for a unique constraint
// breach; the title_hash constraint maps it to ErrConflict.
const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Postgres is the production persistence gateway.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects, pings, and ensures the schema exists.
func NewPostgres(connectionString string) (*Postgres, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Postgres{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("postgres store connected")
	return store, nil
}

func (p *Postgres) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		title_hash VARCHAR(32) UNIQUE NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		source VARCHAR(100) NOT NULL DEFAULT '',
		region VARCHAR(32) NOT NULL DEFAULT '',
		category VARCHAR(50) NOT NULL DEFAULT 'general',
		published_at TIMESTAMPTZ NOT NULL,
		views INTEGER NOT NULL DEFAULT 0,
		shares INTEGER NOT NULL DEFAULT 0,
		trending_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		affiliates JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_articles_title_hash ON articles(title_hash);
	CREATE INDEX IF NOT EXISTS idx_articles_trending ON articles(trending_score DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC);
	`

	if _, err := p.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

var articleColumns = []string{
	"id", "title", "title_hash", "summary", "url", "image_url",
	"source", "region", "category", "published_at", "views", "shares",
	"trending_score", "affiliates",
}

// FindByTitleHash implements the dedup lookup.
func (p *Postgres) FindByTitleHash(ctx context.Context, hash string) (*news.Article, error) {
	query, args, err := psql.
		Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"title_hash": hash}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	row := p.db.QueryRowContext(ctx, query, args...)

	var a news.Article
	var affiliates []byte
	err = row.Scan(
		&a.ID, &a.Title, &a.TitleHash, &a.Summary, &a.URL, &a.ImageURL,
		&a.Source, &a.Region, &a.Category, &a.PublishedAt, &a.Views, &a.Shares,
		&a.TrendingScore, &affiliates,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}

	a.Affiliates = map[string]string{}
	if len(affiliates) > 0 {
		if err := json.Unmarshal(affiliates, &a.Affiliates); err != nil {
			return nil, fmt.Errorf("decode affiliates: %w", err)
		}
	}
	a.PublishedAt = a.PublishedAt.UTC()

	return &a, nil
}

// Insert stores a new article. A unique violation on title_hash means
// another writer got there first and surfaces as ErrConflict.
func (p *Postgres) Insert(ctx context.Context, article *news.Article) (*news.Article, error) {
	affiliates, err := json.Marshal(article.Affiliates)
	if err != nil {
		return nil, fmt.Errorf("encode affiliates: %w", err)
	}

	query, args, err := psql.
		Insert("articles").
		Columns("title", "title_hash", "summary", "url", "image_url",
			"source", "region", "category", "published_at", "views", "shares",
			"trending_score", "affiliates").
		Values(article.Title, article.TitleHash, article.Summary, article.URL,
			article.ImageURL, article.Source, article.Region, article.Category,
			article.PublishedAt, article.Views, article.Shares,
			article.TrendingScore, affiliates).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	inserted := *article
	if err := p.db.QueryRowContext(ctx, query, args...).Scan(&inserted.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert article: %w", err)
	}

	return &inserted, nil
}

// ListForRescoring streams the minimal projection for score updates.
func (p *Postgres) ListForRescoring(ctx context.Context) ([]news.ScoreRecord, error) {
	query, args, err := psql.
		Select("id", "views", "shares", "published_at").
		From("articles").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rescoring query: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rescoring list: %w", err)
	}
	defer rows.Close()

	var records []news.ScoreRecord
	for rows.Next() {
		var r news.ScoreRecord
		if err := rows.Scan(&r.ID, &r.Views, &r.Shares, &r.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan rescoring row: %w", err)
		}
		r.PublishedAt = r.PublishedAt.UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rescoring rows: %w", err)
	}

	return records, nil
}

// UpdateScore writes back one recomputed trending score.
func (p *Postgres) UpdateScore(ctx context.Context, id int64, score float64) error {
	query, args, err := psql.
		Update("articles").
		Set("trending_score", score).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build score update: %w", err)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update score for article %d: %w", id, err)
	}
	return nil
}

// ListForRecategorize returns id/title/summary for every article.
func (p *Postgres) ListForRecategorize(ctx context.Context) ([]news.TextRecord, error) {
	query, args, err := psql.
		Select("id", "title", "summary").
		From("articles").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recategorize query: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recategorize list: %w", err)
	}
	defer rows.Close()

	var records []news.TextRecord
	for rows.Next() {
		var r news.TextRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Summary); err != nil {
			return nil, fmt.Errorf("scan recategorize row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recategorize rows: %w", err)
	}

	return records, nil
}

// UpdateCategory rewrites one article's category.
func (p *Postgres) UpdateCategory(ctx context.Context, id int64, category string) error {
	query, args, err := psql.
		Update("articles").
		Set("category", category).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build category update: %w", err)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update category for article %d: %w", id, err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
