package news

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/ghananews/aggregator/internal/rss"
)

var testSource = rss.Source{Name: "CitiNews", Region: "ghana"}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Ghana's economy   <b>grew</b> in Q3.</p><br><img src=\"x.jpg\">")
	want := "Ghana's economy grew in Q3."
	if got != want {
		t.Errorf("StripHTML = %q, want %q", got, want)
	}
}

func TestStripHTMLTruncates(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := StripHTML("<p>" + long + "</p>")
	if len([]rune(got)) != 500 {
		t.Errorf("summary length = %d, want 500", len([]rune(got)))
	}
}

func TestStripHTMLPlainTextPassthrough(t *testing.T) {
	if got := StripHTML("no markup here"); got != "no markup here" {
		t.Errorf("StripHTML = %q", got)
	}
}

func TestExtractImageMediaContentWins(t *testing.T) {
	item := &gofeed.Item{
		Description: `<img src="http://example.com/inline.jpg">`,
		Enclosures:  []*gofeed.Enclosure{{URL: "http://example.com/enc.jpg", Type: "image/jpeg"}},
		Extensions: ext.Extensions{
			"media": {
				"content": []ext.Extension{
					{Attrs: map[string]string{"url": "http://example.com/media.jpg"}},
				},
			},
		},
	}
	if got := ExtractImage(item); got != "http://example.com/media.jpg" {
		t.Errorf("ExtractImage = %q, want media content URL", got)
	}
}

func TestExtractImageEnclosure(t *testing.T) {
	item := &gofeed.Item{
		Description: `<img src="http://example.com/inline.jpg">`,
		Enclosures: []*gofeed.Enclosure{
			{URL: "http://example.com/audio.mp3", Type: "audio/mpeg"},
			{URL: "http://example.com/enc.jpg", Type: "image/jpeg"},
		},
	}
	if got := ExtractImage(item); got != "http://example.com/enc.jpg" {
		t.Errorf("ExtractImage = %q, want image enclosure URL", got)
	}
}

func TestExtractImageInlineImg(t *testing.T) {
	item := &gofeed.Item{
		Description: `<p>Story text</p><img src="http://example.com/inline.jpg"><img src="http://example.com/second.jpg">`,
	}
	if got := ExtractImage(item); got != "http://example.com/inline.jpg" {
		t.Errorf("ExtractImage = %q, want first inline img", got)
	}
}

func TestExtractImageAbsent(t *testing.T) {
	item := &gofeed.Item{Description: "<p>No pictures today.</p>"}
	if got := ExtractImage(item); got != "" {
		t.Errorf("ExtractImage = %q, want empty", got)
	}
}

func TestNormalizePublishedAtFromFeed(t *testing.T) {
	published := time.Date(2024, 3, 10, 8, 30, 0, 0, time.FixedZone("GMT+2", 2*3600))
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	item := &gofeed.Item{Title: "Headline", PublishedParsed: &published}
	article := Normalize(item, testSource, now)

	want := published.UTC()
	if !article.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", article.PublishedAt, want)
	}
}

func TestNormalizePublishedAtFallsBackToNow(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	item := &gofeed.Item{Title: "Headline"}
	article := Normalize(item, testSource, now)

	if !article.PublishedAt.Equal(now) {
		t.Errorf("PublishedAt = %v, want ingestion time %v", article.PublishedAt, now)
	}
}

func TestNormalizeFields(t *testing.T) {
	item := &gofeed.Item{
		Title:       "  Cedi gains against the dollar  ",
		Description: "<p>The <i>cedi</i> strengthened.</p>",
		Link:        "http://example.com/cedi",
	}
	article := Normalize(item, testSource, time.Now())

	if article.Title != "Cedi gains against the dollar" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.TitleHash != TitleHash("Cedi gains against the dollar") {
		t.Error("TitleHash does not match normalized title")
	}
	if article.Summary != "The cedi strengthened." {
		t.Errorf("Summary = %q", article.Summary)
	}
	if article.URL != "http://example.com/cedi" {
		t.Errorf("URL = %q", article.URL)
	}
	if article.Source != "CitiNews" || article.Region != "ghana" {
		t.Errorf("source attribution = %q/%q", article.Source, article.Region)
	}
	if article.Affiliates == nil {
		t.Error("Affiliates must be initialized")
	}
	if article.Views != 0 || article.Shares != 0 {
		t.Error("counters must start at zero")
	}
}
