// internal/classify/keyword.go
package classify

import (
	"context"
	"regexp"
	"strings"
)

var cveRegex = regexp.MustCompile(`cve-\d{4}-\d+`)

// keywordStrategy is the deterministic fallback scorer. It is always
// available and reproducible: identical input always yields the same
// category.
type keywordStrategy struct{}

func (s *keywordStrategy) name() string { return "keyword" }

func (s *keywordStrategy) tryClassify(_ context.Context, in input) (Category, float64, bool) {
	return s.score(in), 1.0, true
}

// score accumulates weighted keyword hits per category and picks the winner.
// Ties break by fixed priority Alert > Research > Event > News; an all-zero
// tie defaults to News.
func (s *keywordStrategy) score(in input) Category {
	text := strings.ToLower(in.Title + " " + in.Description)
	urlLower := strings.ToLower(in.URL)
	sourceLower := strings.ToLower(in.Source)

	scores := map[Category]int{Event: 0, Research: 0, Alert: 0, News: 0}

	scores[Event] += 3 * countHits(text, strongEventKeywords)
	scores[Event] += 2 * countHits(text, mediumEventKeywords)
	scores[Event] += 2 * countHits(text, eventPhrases)
	if containsAny(urlLower, eventURLHints) {
		scores[Event] += 3
	}

	scores[Research] += 3 * countHits(text, strongResearchKeywords)
	scores[Research] += 2 * countHits(text, mediumResearchKeywords)
	scores[Research] += 2 * countHits(text, researchPhrases)
	if containsAny(urlLower, researchURLHints) {
		scores[Research] += 3
	}
	if containsAny(sourceLower, researchSourceHints) {
		scores[Research]++
	}

	scores[Alert] += 4 * countHits(text, strongAlertKeywords)
	scores[Alert] += 2 * countHits(text, mediumAlertKeywords)
	scores[Alert] += 3 * countHits(text, alertPhrases)
	if cveRegex.MatchString(text) {
		scores[Alert] += 3
	}
	if containsAny(text, vulnerabilityTerms) {
		scores[Alert] += 2
	}
	if containsAny(urlLower, alertURLHints) {
		scores[Alert] += 3
	}
	if containsAny(sourceLower, alertSourceHints) {
		scores[Alert] += 2
	}

	scores[News] += 2 * countHits(text, newsKeywords)
	scores[News] += 3 * countHits(text, newsPhrases)
	if containsAny(urlLower, newsURLHints) {
		scores[News]++
	}

	// Incident reporting without alert/advisory language is news, not an
	// advisory about an attack type.
	if strings.Contains(text, "incident") || strings.Contains(text, "breach") {
		if !strings.Contains(text, "alert") && !strings.Contains(text, "advisory") && !strings.Contains(text, "threat") {
			scores[News]++
		}
	}

	// "research" co-occurring with news/report language but no strong research
	// phrase is usually coverage of research, not the research itself.
	if strings.Contains(text, "research") && (strings.Contains(text, "news") || strings.Contains(text, "report")) {
		if !strings.Contains(text, "research paper") && !strings.Contains(text, "whitepaper") && !strings.Contains(text, "findings") {
			scores[Research]--
			scores[News]++
		}
	}

	maxScore := 0
	for _, v := range scores {
		if v > maxScore {
			maxScore = v
		}
	}
	if maxScore == 0 {
		return News
	}
	for _, c := range []Category{Alert, Research, Event, News} {
		if scores[c] == maxScore {
			return c
		}
	}
	return News
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
