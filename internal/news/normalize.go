package news

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/ghananews/aggregator/internal/rss"
)

// summaryMaxChars caps the plain-text summary length.
const summaryMaxChars = 500

// Normalize converts one raw feed item into a pipeline-ready Article.
// Category, affiliates and the trending score are filled in later by
// the ingestion cycle.
func Normalize(item *gofeed.Item, src rss.Source, now time.Time) Article {
	title := strings.TrimSpace(item.Title)

	return Article{
		Title:       title,
		TitleHash:   TitleHash(title),
		Summary:     StripHTML(itemSummary(item)),
		URL:         item.Link,
		ImageURL:    ExtractImage(item),
		Source:      src.Name,
		Region:      src.Region,
		PublishedAt: publishedAt(item, now),
		Affiliates:  map[string]string{},
	}
}

func itemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

// StripHTML removes all markup from a feed-supplied summary, collapses
// whitespace and truncates to the summary cap.
func StripHTML(html string) string {
	text := html
	if strings.Contains(html, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err == nil {
			text = doc.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > summaryMaxChars {
		return string(runes[:summaryMaxChars])
	}
	return text
}

// ExtractImage resolves a representative image by trying, in order:
// a media:content extension, an enclosure with an image media type,
// the first <img src> inside the HTML summary. No image is fine.
func ExtractImage(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			if url := content.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.Contains(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}

	return firstImgSrc(itemSummary(item))
}

func firstImgSrc(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

// publishedAt prefers the feed's publish timestamp, then its update
// timestamp, then ingestion time. Articles without a feed timestamp
// appear maximally fresh, which is an accepted tradeoff.
func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return now.UTC()
}
