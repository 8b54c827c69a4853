// Package store persists posting history and the news cache in sqlite.
// All mutation is insert-if-absent; rows are never updated or deleted.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/adivyas/khabri/internal/domain"
)

//go:embed schema.sql
var schema string

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath, enables WAL so overlapping
// processes cannot corrupt the file, and ensures the schema exists.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// HasPosted reports whether a post with this fingerprint was already
// recorded.
func (s *Store) HasPosted(hash string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM posts WHERE hash = ?", hash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check posted: %w", err)
	}
	return true, nil
}

// MarkPosted records a published post. INSERT OR IGNORE keeps it idempotent:
// recording the same fingerprint twice neither errors nor double-counts.
func (s *Store) MarkPosted(rec domain.PostRecord) error {
	postedAt := rec.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO posts(hash, text, source, url, media_hash, posted_at, external_id) VALUES(?,?,?,?,?,?,?)",
		rec.Hash, rec.Text, rec.Source, rec.URL, rec.MediaHash,
		postedAt.UTC().Format(time.RFC3339), rec.ExternalID,
	)
	if err != nil {
		return fmt.Errorf("mark posted: %w", err)
	}
	return nil
}

// CountPostedBetween counts posts with posted_at in [from, to). Timestamps
// are stored as RFC3339 UTC text, so lexicographic comparison is time
// comparison.
func (s *Store) CountPostedBetween(from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM posts WHERE posted_at >= ? AND posted_at < ?",
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count posted: %w", err)
	}
	return n, nil
}

// AddCacheItem stages a discovered news item. Insert-if-absent by hash.
func (s *Store) AddCacheItem(item domain.CacheItem) error {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO cache_items(hash, title, description, url, source, created_at) VALUES(?,?,?,?,?,?)",
		item.Hash, item.Title, item.Desc, item.URL, item.Source,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("cache item: %w", err)
	}
	return nil
}

// RecentCacheItems returns the most recently cached items first, bounded by
// limit. Already-posted items are not filtered here; that happens at post
// time via the fingerprint check.
func (s *Store) RecentCacheItems(limit int) ([]domain.CacheItem, error) {
	rows, err := s.db.Query(
		"SELECT hash, title, description, url, source, created_at FROM cache_items ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent cache items: %w", err)
	}
	defer rows.Close()

	var items []domain.CacheItem
	for rows.Next() {
		var it domain.CacheItem
		var createdAt string
		if err := rows.Scan(&it.Hash, &it.Title, &it.Desc, &it.URL, &it.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scan cache item: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			it.CreatedAt = t
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache items: %w", err)
	}

	return items, nil
}
