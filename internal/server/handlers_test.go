// internal/server/handlers_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"cybernews/internal/classify"
	"cybernews/internal/database"
	"cybernews/internal/feed"
)

// stubFetcher yields one article per source so fetch-endpoint tests never
// touch the network.
type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, source feed.Source) feed.FetchResult {
	return feed.FetchResult{
		Source: source,
		Articles: []database.Article{{
			Title:         "Article from " + source.Name,
			Link:          source.URL + "#1",
			Source:        source.Name,
			PublisherType: source.PublisherType,
			ContentType:   "News",
			CountryRegion: "Global",
			PublishedDate: time.Now().UTC(),
			FetchedDate:   time.Now().UTC(),
		}},
	}
}

type testServer struct {
	server *Server
	db     *database.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dbCfg := database.DefaultConfig()
	dbCfg.MaxOpenConns = 1
	dbCfg.MaxIdleConns = 1
	db, err := database.NewDB(":memory:", dbCfg)
	if err != nil {
		t.Fatalf("Failed to initialize in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := zerolog.Nop()
	classifier := classify.NewService(classify.Config{DisableRemote: true}, logger)
	coordinator := feed.NewCoordinator(db, stubFetcher{}, 90, 5000, logger)
	feedService := feed.NewService(coordinator, 12*time.Hour, logger)

	srv := New(Config{
		Port:          0,
		RetentionDays: 90,
		MaxArticles:   5000,
	}, db, feedService, classifier, logger)

	return &testServer{server: srv, db: db}
}

func (ts *testServer) request(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func seedArticles(t *testing.T, db *database.DB, n int) {
	t.Helper()
	base := time.Now().UTC().Add(-time.Duration(n) * time.Hour)
	var batch []database.Article
	for i := 0; i < n; i++ {
		batch = append(batch, database.Article{
			Title:         fmt.Sprintf("Article %d", i),
			Link:          fmt.Sprintf("https://example.com/%d", i),
			Description:   "A security story",
			Source:        "Test Source",
			PublisherType: "Industry News",
			ContentType:   "News",
			CountryRegion: "Global",
			PublishedDate: base.Add(time.Duration(i) * time.Hour),
			FetchedDate:   time.Now().UTC(),
		})
	}
	if _, err := db.InsertArticles(context.Background(), batch); err != nil {
		t.Fatalf("Failed to seed articles: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["status"] != "healthy" {
		t.Errorf("Unexpected health body: %v", body)
	}
}

func TestListArticlesPagination(t *testing.T) {
	ts := newTestServer(t)
	seedArticles(t, ts.db, 7)

	rec := ts.request(t, http.MethodGet, "/api/articles?page=1&per_page=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 7 {
		t.Errorf("Expected total 7, got %v", body["total"])
	}
	if body["pages"].(float64) != 3 {
		t.Errorf("Expected 3 pages, got %v", body["pages"])
	}
	articles := body["articles"].([]any)
	if len(articles) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(articles))
	}
	// Newest first by default.
	first := articles[0].(map[string]any)
	if first["title"] != "Article 6" {
		t.Errorf("Expected newest article first, got %v", first["title"])
	}
	if first["country_region"] != "Global" {
		t.Errorf("Expected Global country, got %v", first["country_region"])
	}
}

func TestListArticlesPerPageClamped(t *testing.T) {
	ts := newTestServer(t)
	seedArticles(t, ts.db, 2)

	rec := ts.request(t, http.MethodGet, "/api/articles?per_page=500", nil)
	body := decodeBody(t, rec)
	if body["per_page"].(float64) != 50 {
		t.Errorf("Expected per_page clamped to 50, got %v", body["per_page"])
	}

	rec = ts.request(t, http.MethodGet, "/api/articles?per_page=0&page=-3", nil)
	body = decodeBody(t, rec)
	if body["per_page"].(float64) != 50 || body["page"].(float64) != 1 {
		t.Errorf("Expected defaults for invalid paging, got %v", body)
	}
}

func TestListArticlesFilterBySearch(t *testing.T) {
	ts := newTestServer(t)
	seedArticles(t, ts.db, 3)

	rec := ts.request(t, http.MethodGet, "/api/articles?search=article+1", nil)
	body := decodeBody(t, rec)
	if body["total"].(float64) != 1 {
		t.Errorf("Expected 1 match, got %v", body["total"])
	}
}

func TestDeleteBySourceRequiresName(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/articles/delete-by-source", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Source name is required" {
		t.Errorf("Unexpected error message: %v", body["message"])
	}
}

func TestDeleteBySource(t *testing.T) {
	ts := newTestServer(t)
	seedArticles(t, ts.db, 3)

	rec := ts.request(t, http.MethodPost, "/api/articles/delete-by-source",
		map[string]string{"source": "Test Source"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["deleted_count"].(float64) != 3 {
		t.Errorf("Expected 3 deleted, got %v", body["deleted_count"])
	}

	rec = ts.request(t, http.MethodGet, "/api/articles", nil)
	if total := decodeBody(t, rec)["total"].(float64); total != 0 {
		t.Errorf("Expected empty store after delete, got total %v", total)
	}
}

func TestCleanupEndpoint(t *testing.T) {
	ts := newTestServer(t)
	old := database.Article{
		Title: "Ancient", Link: "https://example.com/old",
		Source: "Test Source", PublisherType: "Industry News",
		ContentType: "News", CountryRegion: "Global",
		PublishedDate: time.Now().UTC().AddDate(0, 0, -10),
		FetchedDate:   time.Now().UTC(),
	}
	if _, err := ts.db.InsertArticles(context.Background(), []database.Article{old}); err != nil {
		t.Fatalf("Failed to seed article: %v", err)
	}
	seedArticles(t, ts.db, 2)

	rec := ts.request(t, http.MethodPost, "/api/cleanup", map[string]int{"days": 7})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["deleted_count"].(float64) != 1 {
		t.Errorf("Expected 1 deleted, got %v", body["deleted_count"])
	}
	if body["retention_days"].(float64) != 7 {
		t.Errorf("Expected retention_days 7, got %v", body["retention_days"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	seedArticles(t, ts.db, 3)

	rec := ts.request(t, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total_articles"].(float64) != 3 {
		t.Errorf("Expected 3 total, got %v", body["total_articles"])
	}
	if body["retention_days"].(float64) != 90 {
		t.Errorf("Expected retention_days 90, got %v", body["retention_days"])
	}
	if body["max_articles"].(float64) != 5000 {
		t.Errorf("Expected max_articles 5000, got %v", body["max_articles"])
	}
}

func TestSourcesByCountryEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/feeds/sources-by-country", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	counts := body["countries"].(map[string]any)
	if counts["United States"].(float64) < 1 {
		t.Errorf("Expected United States sources, got %v", counts["United States"])
	}
	total := 0.0
	for _, n := range counts {
		total += n.(float64)
	}
	if body["total_sources"].(float64) != total {
		t.Errorf("total_sources %v does not match sum %v", body["total_sources"], total)
	}
	if body["total_countries"].(float64) != float64(len(counts)) {
		t.Errorf("total_countries %v does not match map size %d", body["total_countries"], len(counts))
	}
}

func TestFetchFeedsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/feeds/fetch",
		map[string]any{"countries": []string{"Japan"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" {
		t.Fatalf("Expected success report, got %v", body)
	}
	if body["failed_feeds"].(float64) != 0 {
		t.Errorf("Expected no failed feeds, got %v", body["failed_feeds"])
	}
	if body["new_articles"].(float64) < 1 {
		t.Errorf("Expected new articles from stub fetch, got %v", body["new_articles"])
	}

	// Re-running inserts nothing new; every link already exists.
	rec = ts.request(t, http.MethodPost, "/api/feeds/fetch",
		map[string]any{"countries": []string{"Japan"}})
	body = decodeBody(t, rec)
	if body["new_articles"].(float64) != 0 {
		t.Errorf("Expected 0 new articles on repeat run, got %v", body["new_articles"])
	}
}

func TestScheduleEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/feeds/schedule", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["enabled"] != false {
		t.Errorf("Expected scheduler disabled before Start, got %v", body["enabled"])
	}
	if body["interval_hours"].(float64) != 12 {
		t.Errorf("Expected 12h interval, got %v", body["interval_hours"])
	}
}

func TestReCategorizeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	cve := database.Article{
		Title: "CVE-2025-12345 exploited in the wild", Link: "https://example.com/cve",
		Description: "Critical vulnerability, patch now", Source: "Test Source",
		PublisherType: "Industry News", ContentType: "News", CountryRegion: "Global",
		PublishedDate: time.Now().UTC(), FetchedDate: time.Now().UTC(),
	}
	if _, err := ts.db.InsertArticles(context.Background(), []database.Article{cve}); err != nil {
		t.Fatalf("Failed to seed article: %v", err)
	}

	rec := ts.request(t, http.MethodPost, "/api/articles/re-categorize", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["updated"].(float64) != 1 {
		t.Errorf("Expected 1 updated, got %v", body)
	}

	rec = ts.request(t, http.MethodGet, "/api/articles?category=Alert", nil)
	if total := decodeBody(t, rec)["total"].(float64); total != 1 {
		t.Errorf("Expected re-categorized article under Alert, got total %v", total)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/articles", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Missing CORS origin header: %v", rec.Header())
	}
}
