// internal/database/articles.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Error definitions
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Article is the durable unit of the store. Link is globally unique and is
// the sole deduplication identity; records are never merged after insert.
type Article struct {
	ID            int64
	Title         string
	Link          string
	Description   string
	Source        string
	PublisherType string
	ContentType   string
	CountryRegion string
	PublishedDate time.Time
	FetchedDate   time.Time
}

// SourceInfo pairs a source name with the country it most frequently
// publishes about.
type SourceInfo struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ListFilter narrows ListArticles and Stats.
type ListFilter struct {
	Category      string
	PublisherType string
	Source        string
	Search        string
	Days          int
	Countries     []string
	SortOldest    bool
	Page          int
	PerPage       int
}

// Stats aggregates article counts for the stats endpoint.
type Stats struct {
	TotalArticles   int            `json:"total_articles"`
	Recent24h       int            `json:"recent_articles_24h"`
	ByPublisherType map[string]int `json:"by_publisher_type"`
	ByContentType   map[string]int `json:"by_content_type"`
	OldestArticle   string         `json:"oldest_article_date,omitempty"`
}

// supportedCountries is the fixed list unioned with DB-observed values for
// the countries listing (G20, EU, NATO, and additional coverage regions).
var supportedCountries = []string{
	"Argentina", "Australia", "Brazil", "Canada", "China", "France", "Germany",
	"India", "Indonesia", "Italy", "Japan", "Mexico", "Russia", "Saudi Arabia",
	"South Africa", "South Korea", "Turkey", "United Kingdom", "United States",
	"European Union", "Austria", "Belgium", "Bulgaria", "Croatia", "Cyprus",
	"Czech Republic", "Denmark", "Estonia", "Finland", "Greece", "Hungary",
	"Ireland", "Latvia", "Lithuania", "Luxembourg", "Malta", "Netherlands",
	"Poland", "Portugal", "Romania", "Slovakia", "Slovenia", "Spain", "Sweden",
	"Albania", "Iceland", "Montenegro", "North Macedonia", "Norway",
	"Chile", "Colombia", "Peru", "Venezuela", "Uruguay", "Paraguay", "Bolivia", "Ecuador",
	"Thailand", "Vietnam", "Philippines", "Malaysia", "Taiwan", "Singapore",
	"Hong Kong", "Bangladesh", "Sri Lanka", "Myanmar", "Cambodia", "Laos",
	"Egypt", "Nigeria", "Kenya", "Morocco", "Tunisia", "Algeria",
	"Israel", "United Arab Emirates",
	"Pakistan", "New Zealand", "Switzerland", "Ukraine",
}

// ExistingLinks reports which of the candidate links are already stored.
func (db *DB) ExistingLinks(ctx context.Context, links []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(links) == 0 {
		return existing, nil
	}

	// SQLite caps bound parameters; chunk the IN clause.
	const chunkSize = 500
	for start := 0; start < len(links); start += chunkSize {
		end := start + chunkSize
		if end > len(links) {
			end = len(links)
		}
		chunk := links[start:end]

		query, args, err := sq.Select("link").From("articles").
			Where(sq.Eq{"link": chunk}).ToSql()
		if err != nil {
			return nil, fmt.Errorf("build existing links query: %w", err)
		}

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("query existing links: %w", err)
		}
		for rows.Next() {
			var link string
			if err := rows.Scan(&link); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan link: %w", err)
			}
			existing[link] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate links: %w", err)
		}
		rows.Close()
	}

	return existing, nil
}

// InsertArticles stores the batch in one transaction. Links already present
// are skipped, never overwritten: first write wins. Returns the number of
// rows actually inserted.
func (db *DB) InsertArticles(ctx context.Context, articles []Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
    INSERT INTO articles (
        title, link, description, source, publisher_type,
        content_type, country_region, published_date, fetched_date
    )
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(link) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, a := range articles {
		res, err := stmt.ExecContext(ctx,
			a.Title, a.Link, a.Description, a.Source, a.PublisherType,
			a.ContentType, a.CountryRegion,
			formatTimestamp(a.PublishedDate), formatTimestamp(a.FetchedDate),
		)
		if err != nil {
			return 0, fmt.Errorf("insert article %s: %w", a.Link, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit inserts: %w", err)
	}
	return added, nil
}

// DeleteOlderThan removes articles published strictly before the cutoff.
func (db *DB) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		"DELETE FROM articles WHERE published_date < ?",
		formatTimestamp(cutoff),
	)
	if err != nil {
		return 0, fmt.Errorf("delete old articles: %w", err)
	}
	return res.RowsAffected()
}

// EnforceCapacity deletes the oldest articles beyond maxArticles.
func (db *DB) EnforceCapacity(ctx context.Context, maxArticles int) (int64, error) {
	if maxArticles <= 0 {
		return 0, nil
	}
	res, err := db.ExecContext(ctx, `
        DELETE FROM articles
        WHERE id IN (
            SELECT id FROM articles
            ORDER BY published_date DESC
            LIMIT -1 OFFSET ?
        )`, maxArticles)
	if err != nil {
		return 0, fmt.Errorf("enforce capacity: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBySource removes every article from an exactly matching source.
func (db *DB) DeleteBySource(ctx context.Context, source string) (int64, error) {
	if source == "" {
		return 0, ErrInvalidInput
	}
	res, err := db.ExecContext(ctx, "DELETE FROM articles WHERE source = ?", source)
	if err != nil {
		return 0, fmt.Errorf("delete by source: %w", err)
	}
	return res.RowsAffected()
}

// UpdateContentType rewrites the category of a stored article, used by
// re-classification. The only mutation articles ever receive.
func (db *DB) UpdateContentType(ctx context.Context, link, contentType string) error {
	res, err := db.ExecContext(ctx,
		"UPDATE articles SET content_type = ? WHERE link = ?",
		contentType, link,
	)
	if err != nil {
		return fmt.Errorf("update content type: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AllArticles streams every stored article, oldest filter applied; used by
// re-classification.
func (db *DB) AllArticles(ctx context.Context) ([]Article, error) {
	return db.collectArticles(ctx, sq.Select(articleColumns...).From("articles").
		OrderBy("published_date DESC"))
}

func filterConditions(f ListFilter) sq.And {
	cond := sq.And{}
	if f.Category != "" {
		cond = append(cond, sq.Eq{"content_type": f.Category})
	}
	if f.PublisherType != "" {
		cond = append(cond, sq.Eq{"publisher_type": f.PublisherType})
	}
	if f.Source != "" {
		cond = append(cond, sq.Eq{"source": f.Source})
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		cond = append(cond, sq.Or{
			sq.Expr("LOWER(title) LIKE ?", like),
			sq.Expr("LOWER(description) LIKE ?", like),
		})
	}
	if f.Days > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -f.Days)
		cond = append(cond, sq.GtOrEq{"published_date": formatTimestamp(cutoff)})
	}
	if len(f.Countries) > 0 {
		or := sq.Or{}
		for _, country := range f.Countries {
			country = strings.TrimSpace(country)
			if country == "" {
				continue
			}
			// country_region holds a comma-joined sorted set; match exact
			// membership, not substrings.
			or = append(or,
				sq.Eq{"country_region": country},
				sq.Like{"country_region": country + ", %"},
				sq.Like{"country_region": "%, " + country},
				sq.Like{"country_region": "%, " + country + ", %"},
			)
		}
		if len(or) > 0 {
			cond = append(cond, or)
		}
	}
	return cond
}

var articleColumns = []string{
	"id", "title", "link", "description", "source", "publisher_type",
	"content_type", "country_region", "published_date", "fetched_date",
}

// ListArticles returns one page of filtered articles plus the total count
// matching the filter.
func (db *DB) ListArticles(ctx context.Context, f ListFilter) ([]Article, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 50
	}

	cond := filterConditions(f)

	countQuery := sq.Select("COUNT(*)").From("articles")
	if len(cond) > 0 {
		countQuery = countQuery.Where(cond)
	}
	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	order := "published_date DESC"
	if f.SortOldest {
		order = "published_date ASC"
	}
	listQuery := sq.Select(articleColumns...).From("articles").
		OrderBy(order).
		Limit(uint64(f.PerPage)).
		Offset(uint64((f.Page - 1) * f.PerPage))
	if len(cond) > 0 {
		listQuery = listQuery.Where(cond)
	}

	articles, err := db.collectArticles(ctx, listQuery)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (db *DB) collectArticles(ctx context.Context, builder sq.SelectBuilder) ([]Article, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		// The driver converts TIMESTAMP columns to time.Time itself.
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Link, &a.Description, &a.Source,
			&a.PublisherType, &a.ContentType, &a.CountryRegion,
			&a.PublishedDate, &a.FetchedDate,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.PublishedDate = a.PublishedDate.UTC()
		a.FetchedDate = a.FetchedDate.UTC()
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Sources lists every distinct source with its inferred primary country: the
// most frequent country among that source's articles.
func (db *DB) Sources(ctx context.Context) ([]SourceInfo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT source, country_region, COUNT(*)
		 FROM articles
		 GROUP BY source, country_region`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	type tally map[string]int
	counts := make(map[string]tally)
	for rows.Next() {
		var source, region string
		var n int
		if err := rows.Scan(&source, &region, &n); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		if counts[source] == nil {
			counts[source] = make(tally)
		}
		for _, country := range strings.Split(region, ", ") {
			if country != "" && country != "Global" {
				counts[source][country] += n
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sources := make([]SourceInfo, 0, len(counts))
	for source, byCountry := range counts {
		best, bestN := "", 0
		for country, n := range byCountry {
			if n > bestN || (n == bestN && country < best) {
				best, bestN = country, n
			}
		}
		sources = append(sources, SourceInfo{Name: source, Country: best})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

// Categories lists distinct content types present in storage.
func (db *DB) Categories(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "content_type")
}

// PublisherTypes lists distinct publisher types present in storage.
func (db *DB) PublisherTypes(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "publisher_type")
}

func (db *DB) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		fmt.Sprintf("SELECT DISTINCT %s FROM articles ORDER BY %s", column, column),
	)
	if err != nil {
		return nil, fmt.Errorf("query distinct %s: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v != "" {
			values = append(values, v)
		}
	}
	return values, rows.Err()
}

// Countries returns the union of DB-observed countries (comma-joined values
// split apart) and the fixed supported-country list, minus "Global", sorted.
func (db *DB) Countries(ctx context.Context) ([]string, error) {
	observed, err := db.distinct(ctx, "country_region")
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	for _, region := range observed {
		for _, country := range strings.Split(region, ", ") {
			country = strings.TrimSpace(country)
			if country != "" && country != "Global" {
				set[country] = struct{}{}
			}
		}
	}
	for _, country := range supportedCountries {
		set[country] = struct{}{}
	}

	countries := make([]string, 0, len(set))
	for c := range set {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries, nil
}

// GetStats aggregates totals, the 24-hour window, per-type breakdowns and
// the oldest publish date, under the given filter.
func (db *DB) GetStats(ctx context.Context, f ListFilter) (*Stats, error) {
	cond := filterConditions(f)
	stats := &Stats{
		ByPublisherType: make(map[string]int),
		ByContentType:   make(map[string]int),
	}

	if err := db.scanCount(ctx, sq.Select("COUNT(*)").From("articles"), cond, &stats.TotalArticles); err != nil {
		return nil, err
	}

	dayAgo := formatTimestamp(time.Now().UTC().Add(-24 * time.Hour))
	recentCond := append(sq.And{}, cond...)
	recentCond = append(recentCond, sq.GtOrEq{"published_date": dayAgo})
	if err := db.scanCount(ctx, sq.Select("COUNT(*)").From("articles"), recentCond, &stats.Recent24h); err != nil {
		return nil, err
	}

	if err := db.groupCount(ctx, "publisher_type", cond, stats.ByPublisherType); err != nil {
		return nil, err
	}
	if err := db.groupCount(ctx, "content_type", cond, stats.ByContentType); err != nil {
		return nil, err
	}

	oldestQuery := sq.Select("MIN(published_date)").From("articles")
	if len(cond) > 0 {
		oldestQuery = oldestQuery.Where(cond)
	}
	query, args, err := oldestQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build oldest query: %w", err)
	}
	var oldest sql.NullString
	if err := db.QueryRowContext(ctx, query, args...).Scan(&oldest); err != nil {
		return nil, fmt.Errorf("query oldest article: %w", err)
	}
	if oldest.Valid {
		stats.OldestArticle = oldest.String
	}

	return stats, nil
}

func (db *DB) scanCount(ctx context.Context, builder sq.SelectBuilder, cond sq.And, out *int) error {
	if len(cond) > 0 {
		builder = builder.Where(cond)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build count query: %w", err)
	}
	if err := db.QueryRowContext(ctx, query, args...).Scan(out); err != nil {
		return fmt.Errorf("scan count: %w", err)
	}
	return nil
}

func (db *DB) groupCount(ctx context.Context, column string, cond sq.And, out map[string]int) error {
	builder := sq.Select(column, "COUNT(*)").From("articles").GroupBy(column)
	if len(cond) > 0 {
		builder = builder.Where(cond)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build group query: %w", err)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query group by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		out[key] = n
	}
	return rows.Err()
}
