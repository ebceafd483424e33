// Package news holds the article model and the pure domain logic of
// the pipeline: hashing, categorization, trending scores and
// affiliate tagging.
package news

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

// Article is the canonical stored form of one news entry.
type Article struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	TitleHash     string            `json:"title_hash"`
	Summary       string            `json:"summary"`
	URL           string            `json:"url"`
	ImageURL      string            `json:"image_url"`
	Source        string            `json:"source"`
	Region        string            `json:"region"`
	Category      string            `json:"category"`
	PublishedAt   time.Time         `json:"published_at"`
	Views         int               `json:"views"`
	Shares        int               `json:"shares"`
	TrendingScore float64           `json:"trending_score"`
	Affiliates    map[string]string `json:"affiliates"`
}

// ScoreRecord is the projection the rescoring cycle reads: the inputs
// of the trending formula plus the row to write back to.
type ScoreRecord struct {
	ID          int64
	Views       int
	Shares      int
	PublishedAt time.Time
}

// TextRecord is the projection the recategorize pass reads.
type TextRecord struct {
	ID      int64
	Title   string
	Summary string
}

// TitleHash derives the dedup fingerprint for a title: the hex md5 of
// the trimmed, lower-cased text. Case and surrounding whitespace
// differences therefore collapse to one identity.
func TitleHash(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// HoursSince returns the article age in hours, floored at 0.01 so a
// just-published or future-dated article never yields a zero or
// negative age.
func HoursSince(published, now time.Time) float64 {
	hours := now.Sub(published).Hours()
	if hours < 0.01 {
		return 0.01
	}
	return hours
}
