// internal/server/handlers.go
package server

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"cybernews/internal/database"
	"cybernews/internal/feed"
)

const jsonTimeLayout = "2006-01-02T15:04:05Z"

type apiArticle struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	Description   string `json:"description"`
	Source        string `json:"source"`
	PublisherType string `json:"publisher_type"`
	Category      string `json:"category"` // kept for older clients
	ContentType   string `json:"content_type"`
	CountryRegion string `json:"country_region"`
	PublishedDate string `json:"published_date"`
	FetchedDate   string `json:"fetched_date"`
}

func toAPIArticle(a database.Article) apiArticle {
	country := a.CountryRegion
	if country == "" {
		country = "Global"
	}
	return apiArticle{
		ID:            a.ID,
		Title:         a.Title,
		Link:          a.Link,
		Description:   a.Description,
		Source:        a.Source,
		PublisherType: a.PublisherType,
		Category:      a.ContentType,
		ContentType:   a.ContentType,
		CountryRegion: country,
		PublishedDate: a.PublishedDate.UTC().Format(jsonTimeLayout),
		FetchedDate:   a.FetchedDate.UTC().Format(jsonTimeLayout),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleFetchFeeds(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MaxWorkers int      `json:"max_workers"`
		OnlyRecent bool     `json:"only_recent"`
		RecentDays int      `json:"recent_days"`
		Countries  []string `json:"countries"`
	}
	if r.Body != nil {
		// An empty or absent body means a default full run.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	report := s.feeds.Run(r.Context(), feed.RunOptions{
		MaxWorkers: body.MaxWorkers,
		OnlyRecent: body.OnlyRecent,
		RecentDays: body.RecentDays,
		Countries:  body.Countries,
	})
	status := http.StatusOK
	if report.Status == "error" {
		status = http.StatusInternalServerError
	}
	s.writeJSON(w, status, report)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.feeds.Schedule())
}

func (s *Server) handleSourcesByCountry(w http.ResponseWriter, r *http.Request) {
	counts := feed.SourcesByCountry()
	total := 0
	for _, n := range counts {
		total += n
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"countries":       counts,
		"total_countries": len(counts),
		"total_sources":   total,
	})
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.ListFilter{
		Category:      q.Get("category"),
		PublisherType: q.Get("publisher_type"),
		Source:        q.Get("source"),
		Search:        q.Get("search"),
		Days:          queryInt(q.Get("days"), 0),
		SortOldest:    q.Get("sort_by") == "oldest",
		Page:          queryInt(q.Get("page"), 1),
		PerPage:       queryInt(q.Get("per_page"), 50),
	}
	if raw := q.Get("countries"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				filter.Countries = append(filter.Countries, c)
			}
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 200 {
		filter.PerPage = 50
	}

	articles, total, err := s.db.ListArticles(r.Context(), filter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]apiArticle, 0, len(articles))
	for _, a := range articles {
		out = append(out, toAPIArticle(a))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"articles": out,
		"total":    total,
		"page":     filter.Page,
		"per_page": filter.PerPage,
		"pages":    int(math.Ceil(float64(total) / float64(filter.PerPage))),
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.Sources(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	s.writeJSON(w, http.StatusOK, map[string]any{"sources": sources})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.Categories(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handlePublisherTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.db.PublisherTypes(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"publisher_types": types})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.db.Countries(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"countries": countries})
}

// handleReCategorize re-runs classification over the whole store. Useful
// after tuning keywords or enabling a model backend.
func (s *Server) handleReCategorize(w http.ResponseWriter, r *http.Request) {
	articles, err := s.db.AllArticles(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	updated := 0
	for _, a := range articles {
		category := string(s.classifier.Classify(r.Context(), a.Title, a.Description, a.Source, a.Link))
		if category == a.ContentType {
			continue
		}
		if err := s.db.UpdateContentType(r.Context(), a.Link, category); err != nil {
			s.logger.Warn().Err(err).Str("link", a.Link).Msg("re-categorize update failed")
			continue
		}
		updated++
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"total":   len(articles),
		"updated": updated,
	})
}

func (s *Server) handleDeleteBySource(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Source == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "Source name is required",
		})
		return
	}

	deleted, err := s.db.DeleteBySource(r.Context(), body.Source)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"source":        body.Source,
		"deleted_count": deleted,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	filter := database.ListFilter{Days: queryInt(r.URL.Query().Get("days"), 0)}
	stats, err := s.db.GetStats(r.Context(), filter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"total_articles":      stats.TotalArticles,
		"recent_articles_24h": stats.Recent24h,
		"by_publisher_type":   stats.ByPublisherType,
		"by_content_type":     stats.ByContentType,
		"oldest_article_date": stats.OldestArticle,
		"retention_days":      s.retentionDays,
		"max_articles":        s.maxArticles,
	})
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	days := s.retentionDays
	var body struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Days > 0 {
		days = body.Days
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	deleted, err := s.db.DeleteOlderThan(r.Context(), cutoff)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "success",
		"deleted_count":  deleted,
		"retention_days": days,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("writing response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error().Err(err).Msg("request failed")
	s.writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": err.Error(),
	})
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
