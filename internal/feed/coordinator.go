// internal/feed/coordinator.go
package feed

import (
	"context"
	"sync"
	"time"

	"cybernews/internal/database"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers       = 10
	maxWorkers           = 20
	defaultRetentionDays = 90
	defaultMaxArticles   = 5000
	maxFailureDetails    = 20
)

type sourceFetcher interface {
	Fetch(ctx context.Context, source Source) FetchResult
}

// Coordinator fans one ingestion run out over the catalog, deduplicates the
// results against the store, and applies retention and capacity cleanup.
type Coordinator struct {
	store         ArticleStore
	fetcher       sourceFetcher
	logger        zerolog.Logger
	sources       []Source
	retentionDays int
	maxArticles   int
	now           func() time.Time
}

func NewCoordinator(store ArticleStore, fetcher sourceFetcher, retentionDays, maxArticles int, logger zerolog.Logger) *Coordinator {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	if maxArticles <= 0 {
		maxArticles = defaultMaxArticles
	}
	return &Coordinator{
		store:         store,
		fetcher:       fetcher,
		logger:        logger.With().Str("component", "coordinator").Logger(),
		sources:       Catalog(),
		retentionDays: retentionDays,
		maxArticles:   maxArticles,
		now:           time.Now,
	}
}

// Run executes one full ingestion pass. Individual feed failures are recorded
// in the report; only a storage failure makes the whole run fail.
func (c *Coordinator) Run(ctx context.Context, opts RunOptions) Report {
	sources := FilterByCountries(c.sources, opts.Countries)

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}

	c.logger.Info().
		Int("feeds", len(sources)).
		Int("workers", workers).
		Strs("countries", opts.Countries).
		Msg("starting feed run")

	var cutoff time.Time
	if opts.OnlyRecent {
		days := opts.RecentDays
		if days < 1 {
			days = 1
		}
		cutoff = c.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	}

	results := make(chan FetchResult, len(sources))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, source := range sources {
		wg.Add(1)
		sem <- struct{}{}
		go func(source Source) {
			defer wg.Done()
			defer func() { <-sem }()
			results <- c.fetcher.Fetch(ctx, source)
		}(source)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	report := Report{
		Status:            "success",
		FailedFeedDetails: make([]FeedFailure, 0),
		MaxArticles:       c.maxArticles,
		RetentionDays:     c.retentionDays,
	}

	var collected []database.Article
	for result := range results {
		articles := result.Articles
		if opts.OnlyRecent {
			articles = filterRecent(articles, cutoff)
		}
		// A feed that produced nothing counts as failed so operators can
		// see silent feeds, even when the fetch itself succeeded.
		if len(articles) == 0 {
			report.FailedFeeds++
			msg := "No articles"
			if result.Err != nil {
				msg = result.Err.Error()
			}
			c.logger.Warn().Str("feed", result.Source.Name).Str("error", msg).Msg("feed failed")
			if len(report.FailedFeedDetails) < maxFailureDetails {
				report.FailedFeedDetails = append(report.FailedFeedDetails, FeedFailure{
					Name:  result.Source.Name,
					URL:   result.Source.URL,
					Error: msg,
				})
			}
			continue
		}
		report.SuccessfulFeeds++
		collected = append(collected, articles...)
		c.logger.Info().Str("feed", result.Source.Name).Int("articles", len(articles)).Msg("feed fetched")
	}
	report.TotalFetched = len(collected)

	fresh, err := c.dedupe(ctx, collected)
	if err != nil {
		c.logger.Error().Err(err).Msg("dedup lookup failed")
		return Report{Status: "error", Message: err.Error()}
	}

	if len(fresh) > 0 {
		inserted, err := c.store.InsertArticles(ctx, fresh)
		if err != nil {
			c.logger.Error().Err(err).Msg("article insert failed")
			return Report{Status: "error", Message: err.Error()}
		}
		report.NewArticles = inserted
	}

	// Cleanup is best effort: a failed sweep leaves extra rows behind but
	// does not invalidate the run.
	if deleted, err := c.store.EnforceCapacity(ctx, c.maxArticles); err != nil {
		c.logger.Error().Err(err).Msg("capacity cleanup failed")
	} else {
		report.DeletedForCapacity = deleted
	}
	retentionCutoff := c.now().UTC().AddDate(0, 0, -c.retentionDays)
	if deleted, err := c.store.DeleteOlderThan(ctx, retentionCutoff); err != nil {
		c.logger.Error().Err(err).Msg("retention cleanup failed")
	} else {
		report.OldArticlesDeleted = deleted
	}

	c.logger.Info().
		Int("total_fetched", report.TotalFetched).
		Int("new_articles", report.NewArticles).
		Int("successful_feeds", report.SuccessfulFeeds).
		Int("failed_feeds", report.FailedFeeds).
		Msg("feed run completed")
	return report
}

// dedupe drops articles whose link is already stored or repeated within this
// batch. First occurrence wins.
func (c *Coordinator) dedupe(ctx context.Context, articles []database.Article) ([]database.Article, error) {
	if len(articles) == 0 {
		return nil, nil
	}
	links := make([]string, 0, len(articles))
	for _, a := range articles {
		links = append(links, a.Link)
	}
	existing, err := c.store.ExistingLinks(ctx, links)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(articles))
	fresh := make([]database.Article, 0, len(articles))
	for _, a := range articles {
		if existing[a.Link] || seen[a.Link] {
			continue
		}
		seen[a.Link] = true
		fresh = append(fresh, a)
	}
	return fresh, nil
}

func filterRecent(articles []database.Article, cutoff time.Time) []database.Article {
	out := articles[:0]
	for _, a := range articles {
		if !a.PublishedDate.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}
