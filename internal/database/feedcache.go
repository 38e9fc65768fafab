// internal/database/feedcache.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// FeedCache holds the HTTP validators persisted for one feed URL. Created on
// first successful fetch, updated whenever new content arrives, never deleted
// during normal operation.
type FeedCache struct {
	FeedURL      string
	ETag         string
	LastModified string
	ContentHash  string
	LastFetched  time.Time
}

// GetFeedCache returns the cache entry for a feed URL, or ErrNotFound.
func (db *DB) GetFeedCache(ctx context.Context, feedURL string) (*FeedCache, error) {
	var entry FeedCache
	var etag, lastModified, contentHash sql.NullString

	err := db.QueryRowContext(ctx,
		`SELECT feed_url, etag, last_modified, content_hash, last_fetched
		 FROM feed_cache WHERE feed_url = ?`,
		feedURL,
	).Scan(&entry.FeedURL, &etag, &lastModified, &contentHash, &entry.LastFetched)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query feed cache: %w", err)
	}

	entry.ETag = etag.String
	entry.LastModified = lastModified.String
	entry.ContentHash = contentHash.String
	entry.LastFetched = entry.LastFetched.UTC()
	return &entry, nil
}

// UpsertFeedCache creates or replaces the cache entry for a feed URL.
func (db *DB) UpsertFeedCache(ctx context.Context, entry FeedCache) error {
	if entry.LastFetched.IsZero() {
		entry.LastFetched = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO feed_cache (feed_url, etag, last_modified, content_hash, last_fetched)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(feed_url) DO UPDATE SET
		 etag = excluded.etag,
		 last_modified = excluded.last_modified,
		 content_hash = excluded.content_hash,
		 last_fetched = excluded.last_fetched`,
		entry.FeedURL, entry.ETag, entry.LastModified, entry.ContentHash,
		formatTimestamp(entry.LastFetched),
	)
	if err != nil {
		return fmt.Errorf("upsert feed cache: %w", err)
	}
	return nil
}
