package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/ghananews/aggregator/internal/news"
)

// FileStore keeps articles in a JSON file. It exists for local runs
// without a database and for tests; it honors the same gateway
// contract as Postgres, including ErrConflict on duplicate hashes.
type FileStore struct {
	path string

	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*news.Article
	byHash map[string]int64
}

var _ Store = (*FileStore)(nil)

// NewFileStore loads any existing file; a missing file starts empty.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path:   path,
		nextID: 1,
		byID:   make(map[int64]*news.Article),
		byHash: make(map[string]int64),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	if fs.path == "" {
		return nil
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var articles []*news.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return fmt.Errorf("failed to unmarshal store file: %w", err)
	}

	for _, a := range articles {
		fs.byID[a.ID] = a
		fs.byHash[a.TitleHash] = a.ID
		if a.ID >= fs.nextID {
			fs.nextID = a.ID + 1
		}
	}
	return nil
}

// save must be called with the write lock held.
func (fs *FileStore) save() error {
	if fs.path == "" {
		return nil
	}

	articles := make([]*news.Article, 0, len(fs.byID))
	for _, a := range fs.byID {
		articles = append(articles, a)
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}

func (fs *FileStore) FindByTitleHash(_ context.Context, hash string) (*news.Article, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	id, ok := fs.byHash[hash]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *fs.byID[id]
	return &copied, nil
}

func (fs *FileStore) Insert(_ context.Context, article *news.Article) (*news.Article, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.byHash[article.TitleHash]; exists {
		return nil, ErrConflict
	}

	stored := *article
	stored.ID = fs.nextID
	fs.nextID++

	fs.byID[stored.ID] = &stored
	fs.byHash[stored.TitleHash] = stored.ID

	if err := fs.save(); err != nil {
		// Keep memory and file consistent so a retried insert is not
		// rejected as a duplicate of an article that never landed.
		delete(fs.byID, stored.ID)
		delete(fs.byHash, stored.TitleHash)
		fs.nextID--
		return nil, err
	}

	copied := stored
	return &copied, nil
}

func (fs *FileStore) ListForRescoring(_ context.Context) ([]news.ScoreRecord, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	records := make([]news.ScoreRecord, 0, len(fs.byID))
	for _, a := range fs.byID {
		records = append(records, news.ScoreRecord{
			ID:          a.ID,
			Views:       a.Views,
			Shares:      a.Shares,
			PublishedAt: a.PublishedAt,
		})
	}
	return records, nil
}

func (fs *FileStore) UpdateScore(_ context.Context, id int64, score float64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	a, ok := fs.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.TrendingScore = score
	return fs.save()
}

func (fs *FileStore) ListForRecategorize(_ context.Context) ([]news.TextRecord, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	records := make([]news.TextRecord, 0, len(fs.byID))
	for _, a := range fs.byID {
		records = append(records, news.TextRecord{
			ID:      a.ID,
			Title:   a.Title,
			Summary: a.Summary,
		})
	}
	return records, nil
}

func (fs *FileStore) UpdateCategory(_ context.Context, id int64, category string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	a, ok := fs.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Category = category
	return fs.save()
}

func (fs *FileStore) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.save()
}
