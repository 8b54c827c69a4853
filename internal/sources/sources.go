// Package sources fetches candidate news items and trending topics from
// external providers.
package sources

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Item is one candidate headline.
type Item struct {
	Title string
	Desc  string
	URL   string
}

// Provider is a headline source. Implementations apply their own HTTP
// timeouts; a failed fetch returns an error, never panics.
type Provider interface {
	Name() string
	Fetch(limit int) ([]Item, error)
}

// FetchFirst walks providers in order and returns the items of the first one
// that succeeds with a non-empty result, along with its name.
func FetchFirst(providers []Provider, limit int, logger *log.Logger) ([]Item, string, error) {
	for _, p := range providers {
		items, err := p.Fetch(limit)
		if err != nil {
			logger.Warn("provider failed, trying next", "provider", p.Name(), "err", err)
			continue
		}
		if len(items) == 0 {
			logger.Warn("provider returned nothing", "provider", p.Name())
			continue
		}
		return items, p.Name(), nil
	}
	return nil, "", fmt.Errorf("all %d providers failed", len(providers))
}
