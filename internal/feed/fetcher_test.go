// internal/feed/fetcher_test.go
package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"cybernews/internal/classify"
	"cybernews/internal/database"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test Security Feed</title>
  <link>https://example.com</link>
  <item>
    <title>Critical vulnerability patched</title>
    <link>https://example.com/articles/1</link>
    <description><![CDATA[<p>A <b>critical</b> flaw was   fixed.</p>]]></description>
    <pubDate>Mon, 02 Jan 2023 15:04:05 GMT</pubDate>
  </item>
  <item>
    <title>Entry without a link</title>
    <description>should be skipped</description>
  </item>
  <item>
    <link>https://example.com/articles/3</link>
    <description>untitled entry</description>
  </item>
</channel>
</rss>`

type memCache struct {
	mu      sync.Mutex
	entries map[string]database.FeedCache
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]database.FeedCache)}
}

func (m *memCache) GetFeedCache(_ context.Context, feedURL string) (*database.FeedCache, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[feedURL]; ok {
		copied := e
		return &copied, nil
	}
	return nil, database.ErrNotFound
}

func (m *memCache) UpsertFeedCache(_ context.Context, entry database.FeedCache) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.FeedURL] = entry
	return nil
}

type stubClassifier struct{ category classify.Category }

func (s stubClassifier) Classify(context.Context, string, string, string, string) classify.Category {
	return s.category
}

type stubAttributor struct{ region string }

func (s stubAttributor) Attribute(string, string, string, string) string { return s.region }

func newTestFetcher(cache CacheStore) *Fetcher {
	return NewFetcher(cache, stubClassifier{category: classify.Alert}, stubAttributor{region: "Global"},
		5*time.Second, 20, zerolog.Nop())
}

func TestFetchParsesEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeedXML))
	}))
	defer ts.Close()

	cache := newMemCache()
	f := newTestFetcher(cache)
	source := Source{Name: "Test Feed", URL: ts.URL, PublisherType: PublisherIndustry}

	result := f.Fetch(context.Background(), source)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Articles) != 2 {
		t.Fatalf("expected 2 articles (link-less entry skipped), got %d", len(result.Articles))
	}

	first := result.Articles[0]
	if first.Title != "Critical vulnerability patched" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.Description != "A critical flaw was fixed." {
		t.Errorf("expected HTML stripped and whitespace collapsed, got %q", first.Description)
	}
	if first.ContentType != "Alert" {
		t.Errorf("expected classifier output, got %q", first.ContentType)
	}
	if first.PublisherType != PublisherIndustry {
		t.Errorf("unexpected publisher type %q", first.PublisherType)
	}
	want := time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC)
	if !first.PublishedDate.Equal(want) {
		t.Errorf("expected published date %v, got %v", want, first.PublishedDate)
	}

	if result.Articles[1].Title != "No Title" {
		t.Errorf("untitled entry should get placeholder, got %q", result.Articles[1].Title)
	}

	entry, ok := cache.entries[ts.URL]
	if !ok {
		t.Fatal("expected cache entry after fetch")
	}
	if entry.ETag != `"v1"` || entry.ContentHash == "" {
		t.Errorf("cache entry incomplete: %+v", entry)
	}
}

func TestFetchNotModified(t *testing.T) {
	var sawConditional bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			sawConditional = true
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte(testFeedXML))
	}))
	defer ts.Close()

	cache := newMemCache()
	f := newTestFetcher(cache)
	source := Source{Name: "Test Feed", URL: ts.URL, PublisherType: PublisherIndustry}

	if result := f.Fetch(context.Background(), source); result.Err != nil {
		t.Fatalf("seed fetch failed: %v", result.Err)
	}
	result := f.Fetch(context.Background(), source)
	if result.Err != nil {
		t.Fatalf("304 must not be an error, got %v", result.Err)
	}
	if len(result.Articles) != 0 {
		t.Errorf("304 must yield no articles, got %d", len(result.Articles))
	}
	if !sawConditional {
		t.Error("expected If-None-Match header on second fetch")
	}
}

func TestFetchContentHashUnchanged(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// no validator headers at all; hash is the only change signal
		w.Write([]byte(testFeedXML))
	}))
	defer ts.Close()

	cache := newMemCache()
	f := newTestFetcher(cache)
	source := Source{Name: "Test Feed", URL: ts.URL, PublisherType: PublisherIndustry}

	if result := f.Fetch(context.Background(), source); result.Err != nil {
		t.Fatalf("seed fetch failed: %v", result.Err)
	}
	firstFetched := cache.entries[ts.URL].LastFetched

	result := f.Fetch(context.Background(), source)
	if result.Err != nil {
		t.Fatalf("unchanged content must not be an error, got %v", result.Err)
	}
	if len(result.Articles) != 0 {
		t.Errorf("unchanged content must yield no articles, got %d", len(result.Articles))
	}
	if cache.entries[ts.URL].LastFetched.Before(firstFetched) {
		t.Error("last fetched timestamp should be refreshed")
	}
}

func TestFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	f := newTestFetcher(newMemCache())
	result := f.Fetch(context.Background(), Source{Name: "Broken", URL: ts.URL})
	if result.Err == nil {
		t.Fatal("expected error for 404 response")
	}
	if got := result.Err.Error(); got != "HTTP 404: Not Found" {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestFetchNoEntries(t *testing.T) {
	empty := `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(empty))
	}))
	defer ts.Close()

	f := newTestFetcher(newMemCache())
	result := f.Fetch(context.Background(), Source{Name: "Empty", URL: ts.URL})
	if result.Err == nil || result.Err.Error() != "no entries in feed" {
		t.Errorf("expected no-entries error, got %v", result.Err)
	}
}

func TestFetchCapsEntries(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Big</title>`)
	for i := 0; i < 30; i++ {
		b.WriteString(`<item><title>article</title><link>https://example.com/a`)
		b.WriteByte(byte('0' + i%10))
		b.WriteString(`-`)
		b.WriteByte(byte('a' + i/10))
		b.WriteString(`</link></item>`)
	}
	b.WriteString(`</channel></rss>`)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(b.String()))
	}))
	defer ts.Close()

	f := NewFetcher(newMemCache(), stubClassifier{category: classify.News}, stubAttributor{region: "Global"},
		5*time.Second, 20, zerolog.Nop())
	result := f.Fetch(context.Background(), Source{Name: "Big", URL: ts.URL})
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Articles) != 20 {
		t.Errorf("expected cap of 20 articles, got %d", len(result.Articles))
	}
}

func TestCleanDescriptionTruncates(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := cleanDescription(long)
	if len([]rune(got)) != 500 {
		t.Errorf("expected 500 runes, got %d", len([]rune(got)))
	}
	if cleanDescription("") != "" {
		t.Error("empty input should stay empty")
	}
}
