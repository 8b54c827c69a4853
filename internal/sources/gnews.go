package sources

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultGNewsBase = "https://gnews.io/api/v4"

// GNews fetches top headlines from the GNews API.
type GNews struct {
	BaseURL string
	APIKey  string
	Country string

	httpClient *http.Client
}

// NewGNews builds a GNews provider.
func NewGNews(apiKey, country string) *GNews {
	return &GNews{
		BaseURL: defaultGNewsBase,
		APIKey:  apiKey,
		Country: country,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (g *GNews) Name() string { return "gnews" }

// Fetch returns up to limit top headlines.
func (g *GNews) Fetch(limit int) ([]Item, error) {
	q := url.Values{}
	q.Set("country", g.Country)
	q.Set("max", fmt.Sprint(limit))
	q.Set("apikey", g.APIKey)
	q.Set("lang", "en")

	resp, err := g.httpClient.Get(g.BaseURL + "/top-headlines?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("gnews request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	items := make([]Item, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		items = append(items, Item{
			Title: a.Title,
			Desc:  StripMarkup(a.Description),
			URL:   a.URL,
		})
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}
