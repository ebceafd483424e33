package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ghananews/aggregator/internal/news"
)

func testArticle(title string) *news.Article {
	return &news.Article{
		Title:       title,
		TitleHash:   news.TitleHash(title),
		Summary:     "summary",
		URL:         "http://example.com/" + title,
		Source:      "CitiNews",
		Region:      "ghana",
		Category:    "general",
		PublishedAt: time.Now().UTC().Truncate(time.Second),
		Affiliates:  map[string]string{},
	}
}

func TestFileStoreInsertAndFind(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "articles.json"))
	if err != nil {
		t.Fatal(err)
	}

	inserted, err := store.Insert(ctx, testArticle("First story"))
	if err != nil {
		t.Fatal(err)
	}
	if inserted.ID == 0 {
		t.Error("insert must assign an ID")
	}

	found, err := store.FindByTitleHash(ctx, news.TitleHash("First story"))
	if err != nil {
		t.Fatal(err)
	}
	if found.Title != "First story" || found.ID != inserted.ID {
		t.Errorf("found %+v, want inserted article", found)
	}

	if _, err := store.FindByTitleHash(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing hash: err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreDuplicateHashConflicts(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "articles.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Insert(ctx, testArticle("Same story")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Insert(ctx, testArticle("Same story")); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate insert: err = %v, want ErrConflict", err)
	}
}

func TestFileStoreFailedSaveRollsBack(t *testing.T) {
	ctx := context.Background()
	// The parent directory does not exist, so every save fails.
	store, err := NewFileStore(filepath.Join(t.TempDir(), "missing", "articles.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Insert(ctx, testArticle("Unsaved story")); err == nil {
		t.Fatal("expected save failure")
	} else if errors.Is(err, ErrConflict) {
		t.Fatalf("first insert: err = %v, must not be ErrConflict", err)
	}

	// The failed insert must leave no trace behind.
	if _, err := store.FindByTitleHash(ctx, news.TitleHash("Unsaved story")); !errors.Is(err, ErrNotFound) {
		t.Errorf("after failed insert: err = %v, want ErrNotFound", err)
	}

	// A retry sees the same save error, never a phantom duplicate.
	if _, err := store.Insert(ctx, testArticle("Unsaved story")); errors.Is(err, ErrConflict) {
		t.Errorf("retried insert: err = %v, must not be ErrConflict", err)
	}
}

func TestFileStoreRescoringRoundtrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "articles.json"))
	if err != nil {
		t.Fatal(err)
	}

	a := testArticle("Scored story")
	a.Views = 100
	a.Shares = 10
	inserted, err := store.Insert(ctx, a)
	if err != nil {
		t.Fatal(err)
	}

	records, err := store.ListForRescoring(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Views != 100 || records[0].Shares != 10 {
		t.Errorf("record = %+v", records[0])
	}

	if err := store.UpdateScore(ctx, inserted.ID, 63.02); err != nil {
		t.Fatal(err)
	}
	found, err := store.FindByTitleHash(ctx, a.TitleHash)
	if err != nil {
		t.Fatal(err)
	}
	if found.TrendingScore != 63.02 {
		t.Errorf("TrendingScore = %v, want 63.02", found.TrendingScore)
	}

	if err := store.UpdateScore(ctx, 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRecategorize(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "articles.json"))
	if err != nil {
		t.Fatal(err)
	}

	inserted, err := store.Insert(ctx, testArticle("Another story"))
	if err != nil {
		t.Fatal(err)
	}

	records, err := store.ListForRecategorize(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Title != "Another story" {
		t.Fatalf("records = %+v", records)
	}

	if err := store.UpdateCategory(ctx, inserted.ID, "politics"); err != nil {
		t.Fatal(err)
	}
	found, _ := store.FindByTitleHash(ctx, inserted.TitleHash)
	if found.Category != "politics" {
		t.Errorf("Category = %q, want politics", found.Category)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "articles.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	inserted, err := store.Insert(ctx, testArticle("Durable story"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	found, err := reopened.FindByTitleHash(ctx, inserted.TitleHash)
	if err != nil {
		t.Fatalf("after reopen: %v", err)
	}
	if found.ID != inserted.ID {
		t.Errorf("ID = %d, want %d", found.ID, inserted.ID)
	}

	// New inserts must not reuse IDs.
	second, err := reopened.Insert(ctx, testArticle("Second story"))
	if err != nil {
		t.Fatal(err)
	}
	if second.ID <= inserted.ID {
		t.Errorf("second ID = %d, want > %d", second.ID, inserted.ID)
	}
}
