package domain

import "time"

// Mode selects the tonal template used when generating post text.
type Mode string

const (
	// ModeFunny is the default meme-vibe commentary mode.
	ModeFunny Mode = "funny"
	// ModeSerious is calm, fact-first commentary with minimal emoji.
	ModeSerious Mode = "serious"
	// ModeAccountability asks direct questions about system failures.
	// Sensitive topics are rendered in this mode (or serious) instead of funny.
	ModeAccountability Mode = "accountability"
)

// Candidate is a topic or news item eligible for composition, prior to any
// generation or gating. Ephemeral; discarded after the run.
type Candidate struct {
	Title  string
	Desc   string
	URL    string
	Source string
}

// Topic returns the text the composer works from.
func (c Candidate) Topic() string {
	if c.Desc != "" {
		return c.Title + " — " + c.Desc
	}
	return c.Title
}

// PostRecord is one published (or test-mode simulated) post. Rows are
// append-only; nothing updates or deletes them.
type PostRecord struct {
	Hash       string
	Text       string
	Source     string
	URL        string
	MediaHash  string
	PostedAt   time.Time
	ExternalID string
}

// CacheItem is a fetched-but-not-yet-posted news item. The cache is a staging
// area, not a queue: items are read, never removed, and posted-filtering
// happens at post time via the fingerprint check.
type CacheItem struct {
	Hash      string
	Title     string
	Desc      string
	URL       string
	Source    string
	CreatedAt time.Time
}
