// internal/feed/fetcher.go
package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"cybernews/internal/classify"
	"cybernews/internal/database"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

const (
	// Some feeds block default Go user agents, so identify as a browser.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxFeedBytes        = 5 << 20
	maxDescriptionRunes = 500
	defaultMaxEntries   = 20
	defaultFetchTimeout = 15 * time.Second
)

// Classifier assigns a content category to one article.
type Classifier interface {
	Classify(ctx context.Context, title, description, source, url string) classify.Category
}

// Attributor assigns a country/region string to one article.
type Attributor interface {
	Attribute(sourceName, rawURL, title, description string) string
}

// Fetcher downloads and parses one feed at a time. Safe for concurrent use.
type Fetcher struct {
	cache      CacheStore
	classifier Classifier
	attributor Attributor
	parser     *gofeed.Parser
	client     *http.Client
	logger     zerolog.Logger
	maxEntries int
	now        func() time.Time
}

func NewFetcher(cache CacheStore, classifier Classifier, attributor Attributor, timeout time.Duration, maxEntries int, logger zerolog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Fetcher{
		cache:      cache,
		classifier: classifier,
		attributor: attributor,
		parser:     gofeed.NewParser(),
		client: &http.Client{Timeout: timeout, Transport: transport, CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("stopped after 5 redirects")
			}
			return nil
		}},
		logger:     logger.With().Str("component", "fetcher").Logger(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Fetch downloads one feed and converts its entries to articles. A 304 or an
// unchanged content hash yields an empty result with no error; every other
// failure is reported through FetchResult.Err.
func (f *Fetcher) Fetch(ctx context.Context, source Source) FetchResult {
	result := FetchResult{Source: source}

	var cached *database.FeedCache
	if c, err := f.cache.GetFeedCache(ctx, source.URL); err == nil {
		cached = c
	} else if !errors.Is(err, database.ErrNotFound) {
		f.logger.Debug().Err(err).Str("feed", source.Name).Msg("feed cache lookup failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		result.Err = fmt.Errorf("creating request: %w", err)
		return result
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if cached != nil {
		if cached.ETag != "" {
			req.Header.Set("If-None-Match", cached.ETag)
		}
		if cached.LastModified != "" {
			req.Header.Set("If-Modified-Since", cached.LastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		result.Err = fmt.Errorf("fetching feed: %w", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		f.logger.Debug().Str("feed", source.Name).Msg("not modified")
		return result
	}
	if resp.StatusCode != http.StatusOK {
		result.Err = fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		return result
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		result.Err = fmt.Errorf("reading feed body: %w", err)
		return result
	}

	// Content hash catches unchanged feeds whose servers never send
	// validator headers.
	sum := sha256.Sum256(body)
	contentHash := hex.EncodeToString(sum[:])
	if cached != nil && cached.ContentHash != "" && cached.ContentHash == contentHash {
		f.logger.Debug().Str("feed", source.Name).Msg("content hash unchanged")
		f.storeCache(ctx, source, cached.ETag, cached.LastModified, contentHash)
		return result
	}

	parsed, err := f.parser.ParseString(string(body))
	if err != nil {
		result.Err = fmt.Errorf("parsing feed: %w", err)
		return result
	}

	f.storeCache(ctx, source, resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"), contentHash)

	if len(parsed.Items) == 0 {
		result.Err = errors.New("no entries in feed")
		return result
	}

	items := parsed.Items
	if len(items) > f.maxEntries {
		items = items[:f.maxEntries]
	}

	fetched := f.now().UTC()
	articles := make([]database.Article, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}
		title := item.Title
		if title == "" {
			title = "No Title"
		}
		description := cleanDescription(firstNonEmpty(item.Description, item.Content))
		published := f.entryTime(item)

		articles = append(articles, database.Article{
			Title:         title,
			Link:          item.Link,
			Description:   description,
			Source:        source.Name,
			PublisherType: source.PublisherType,
			ContentType:   string(f.classifier.Classify(ctx, title, description, source.Name, item.Link)),
			CountryRegion: f.attributor.Attribute(source.Name, item.Link, title, description),
			PublishedDate: published,
			FetchedDate:   fetched,
		})
	}

	result.Articles = articles
	return result
}

// entryTime prefers timestamps gofeed already parsed, then raw strings, then
// the current time.
func (f *Fetcher) entryTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	raw := firstNonEmpty(item.Published, item.Updated, item.Custom["date"])
	return normalizeDate(raw, f.now)
}

// storeCache persists validator headers. Cache writes are best effort.
func (f *Fetcher) storeCache(ctx context.Context, source Source, etag, lastModified, contentHash string) {
	err := f.cache.UpsertFeedCache(ctx, database.FeedCache{
		FeedURL:      source.URL,
		ETag:         etag,
		LastModified: lastModified,
		ContentHash:  contentHash,
		LastFetched:  f.now().UTC(),
	})
	if err != nil {
		f.logger.Debug().Err(err).Str("feed", source.Name).Msg("feed cache update failed")
	}
}

// cleanDescription strips markup, collapses whitespace, and truncates.
func cleanDescription(raw string) string {
	if raw == "" {
		return ""
	}
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > maxDescriptionRunes {
		text = string(runes[:maxDescriptionRunes])
	}
	return text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
