package sources

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultNewsAPIBase = "https://newsapi.org/v2"

// NewsAPI fetches top headlines from newsapi.org. Used as the fallback when
// GNews fails.
type NewsAPI struct {
	BaseURL string
	APIKey  string
	Country string

	httpClient *http.Client
}

// NewNewsAPI builds a NewsAPI provider.
func NewNewsAPI(apiKey, country string) *NewsAPI {
	return &NewsAPI{
		BaseURL: defaultNewsAPIBase,
		APIKey:  apiKey,
		Country: country,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (n *NewsAPI) Name() string { return "newsapi" }

// Fetch returns up to limit top headlines.
func (n *NewsAPI) Fetch(limit int) ([]Item, error) {
	q := url.Values{}
	q.Set("country", n.Country)
	q.Set("pageSize", fmt.Sprint(limit))
	q.Set("apiKey", n.APIKey)

	resp, err := n.httpClient.Get(n.BaseURL + "/top-headlines?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error (status %d): %s", resp.StatusCode, string(body))
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
