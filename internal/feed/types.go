// internal/feed/types.go
package feed

import (
	"context"
	"time"

	"cybernews/internal/database"
)

// Publisher types classify the organization that owns a feed, distinct from
// the content category of any one article.
const (
	PublisherIndustry   = "Industry"
	PublisherGovernment = "Government"
	PublisherVendor     = "Vendor"
	PublisherResearch   = "Research"
)

// Source is one configured feed endpoint. Names are not globally unique:
// the same outlet may appear under several publisher types.
type Source struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	PublisherType string `json:"publisher_type"`
}

// FetchResult is the self-contained outcome of fetching one feed.
type FetchResult struct {
	Source   Source
	Articles []database.Article
	Err      error
}

// FeedFailure describes one failed feed for the report.
type FeedFailure struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Report summarizes one ingestion run.
type Report struct {
	Status             string        `json:"status"`
	Message            string        `json:"message,omitempty"`
	TotalFetched       int           `json:"total_fetched"`
	NewArticles        int           `json:"new_articles"`
	SuccessfulFeeds    int           `json:"successful_feeds"`
	FailedFeeds        int           `json:"failed_feeds"`
	FailedFeedDetails  []FeedFailure `json:"failed_feed_details"`
	OldArticlesDeleted int64         `json:"old_articles_deleted"`
	DeletedForCapacity int64         `json:"deleted_for_capacity"`
	MaxArticles        int           `json:"max_articles"`
	RetentionDays      int           `json:"retention_days"`
}

// RunOptions parameterizes one ingestion run.
type RunOptions struct {
	MaxWorkers int
	OnlyRecent bool
	RecentDays int
	Countries  []string
}

// ArticleStore is the storage collaborator the coordinator persists through.
type ArticleStore interface {
	ExistingLinks(ctx context.Context, links []string) (map[string]bool, error)
	InsertArticles(ctx context.Context, articles []database.Article) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	EnforceCapacity(ctx context.Context, maxArticles int) (int64, error)
}

// CacheStore persists per-feed HTTP validators so unchanged feeds can be
// skipped. Caching is an optimization: every failure from this collaborator
// is swallowed by the fetcher.
type CacheStore interface {
	GetFeedCache(ctx context.Context, feedURL string) (*database.FeedCache, error)
	UpsertFeedCache(ctx context.Context, entry database.FeedCache) error
}
