package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/adivyas/khabri/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.sqlite3"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("text", "url", "source")
	b := Fingerprint("text", "url", "source")
	if a != b {
		t.Errorf("same parts gave different fingerprints: %s vs %s", a, b)
	}

	variants := []string{
		Fingerprint("text2", "url", "source"),
		Fingerprint("text", "url2", "source"),
		Fingerprint("text", "url", "source2"),
		Fingerprint("text", "url"),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d collided with base fingerprint", i)
		}
	}
}

func TestHasPostedAndMarkPosted(t *testing.T) {
	s := newTestStore(t)

	h := Fingerprint("कुछ खबर", "https://example.com/x", "gnews")
	seen, err := s.HasPosted(h)
	if err != nil {
		t.Fatalf("HasPosted: %v", err)
	}
	if seen {
		t.Error("fresh store claims the hash was posted")
	}

	rec := domain.PostRecord{
		Hash:       h,
		Text:       "कुछ खबर",
		Source:     "gnews",
		URL:        "https://example.com/x",
		ExternalID: "12345",
	}
	if err := s.MarkPosted(rec); err != nil {
		t.Fatalf("MarkPosted: %v", err)
	}
	// second insert with the same hash must be a no-op, not an error
	if err := s.MarkPosted(rec); err != nil {
		t.Fatalf("duplicate MarkPosted: %v", err)
	}

	seen, err = s.HasPosted(h)
	if err != nil {
		t.Fatalf("HasPosted: %v", err)
	}
	if !seen {
		t.Error("recorded hash not found")
	}

	other := Fingerprint("कुछ और", "https://example.com/y", "trend_hi")
	seen, err = s.HasPosted(other)
	if err != nil {
		t.Fatalf("HasPosted: %v", err)
	}
	if seen {
		t.Error("unrelated hash reported as posted")
	}

	now := time.Now().UTC()
	n, err := s.CountPostedBetween(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("CountPostedBetween: %v", err)
	}
	if n != 1 {
		t.Errorf("want 1 post in window, got %d", n)
	}
}

func TestCacheItemsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	titles := []string{"पहली", "दूसरी", "तीसरी"}
	for _, title := range titles {
		item := domain.CacheItem{
			Hash:   Fingerprint(title, "", "u"),
			Title:  title,
			URL:    "https://example.com/" + title,
			Source: "gnews",
		}
		if err := s.AddCacheItem(item); err != nil {
			t.Fatalf("AddCacheItem: %v", err)
		}
		// duplicate insert is silently ignored
		if err := s.AddCacheItem(item); err != nil {
			t.Fatalf("duplicate AddCacheItem: %v", err)
		}
	}

	items, err := s.RecentCacheItems(2)
	if err != nil {
		t.Fatalf("RecentCacheItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].Title != "तीसरी" || items[1].Title != "दूसरी" {
		t.Errorf("wrong order: %q, %q", items[0].Title, items[1].Title)
	}
}
