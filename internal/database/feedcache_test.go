// internal/database/feedcache_test.go
package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFeedCacheRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetFeedCache(ctx, "https://feeds.test/a.xml")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown feed, got %v", err)
	}

	fetched := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := FeedCache{
		FeedURL:      "https://feeds.test/a.xml",
		ETag:         `"v1"`,
		LastModified: "Mon, 02 Jun 2025 10:00:00 GMT",
		ContentHash:  "abc123",
		LastFetched:  fetched,
	}
	if err := db.UpsertFeedCache(ctx, entry); err != nil {
		t.Fatalf("UpsertFeedCache failed: %v", err)
	}

	got, err := db.GetFeedCache(ctx, entry.FeedURL)
	if err != nil {
		t.Fatalf("GetFeedCache failed: %v", err)
	}
	if got.ETag != entry.ETag || got.LastModified != entry.LastModified || got.ContentHash != entry.ContentHash {
		t.Errorf("Round trip mismatch: got %+v", got)
	}
	if !got.LastFetched.Equal(fetched) {
		t.Errorf("Expected last fetched %v, got %v", fetched, got.LastFetched)
	}
}

func TestFeedCacheUpsertReplaces(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertFeedCache(ctx, FeedCache{
		FeedURL:     "https://feeds.test/a.xml",
		ETag:        `"v1"`,
		ContentHash: "old",
		LastFetched: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("UpsertFeedCache failed: %v", err)
	}

	// Second upsert for the same URL replaces all validators, including
	// clearing ones the response no longer carries.
	if err := db.UpsertFeedCache(ctx, FeedCache{
		FeedURL:     "https://feeds.test/a.xml",
		ContentHash: "new",
		LastFetched: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("UpsertFeedCache failed: %v", err)
	}

	got, err := db.GetFeedCache(ctx, "https://feeds.test/a.xml")
	if err != nil {
		t.Fatalf("GetFeedCache failed: %v", err)
	}
	if got.ETag != "" {
		t.Errorf("Expected ETag cleared, got %q", got.ETag)
	}
	if got.ContentHash != "new" {
		t.Errorf("Expected content hash replaced, got %q", got.ContentHash)
	}
}

func TestFeedCacheDefaultsLastFetched(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Minute)
	if err := db.UpsertFeedCache(ctx, FeedCache{FeedURL: "https://feeds.test/b.xml"}); err != nil {
		t.Fatalf("UpsertFeedCache failed: %v", err)
	}

	got, err := db.GetFeedCache(ctx, "https://feeds.test/b.xml")
	if err != nil {
		t.Fatalf("GetFeedCache failed: %v", err)
	}
	if got.LastFetched.Before(before) {
		t.Errorf("Expected last fetched to default to now, got %v", got.LastFetched)
	}
}
