package sources

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/adivyas/khabri/internal/hindi"
)

const defaultTrendingFeed = "https://news.google.com/rss?hl=hi-IN&gl=IN&ceid=IN:hi"

// Trending pulls trending Hindi topics from the Google News RSS feed.
type Trending struct {
	FeedURL string

	parser *gofeed.Parser
}

// NewTrending builds the trending-topics source.
func NewTrending() *Trending {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &Trending{
		FeedURL: defaultTrendingFeed,
		parser:  parser,
	}
}

func (t *Trending) Name() string { return "trend_hi" }

// Fetch returns up to limit trending topic titles as items.
func (t *Trending) Fetch(limit int) ([]Item, error) {
	feed, err := t.parser.ParseURL(t.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("parse trending feed: %w", err)
	}

	items := make([]Item, 0, limit)
	for _, entry := range feed.Items {
		title := hindi.CleanTopic(StripMarkup(entry.Title))
		if title == "" {
			continue
		}
		items = append(items, Item{Title: title, URL: entry.Link})
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}
