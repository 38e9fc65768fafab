// internal/geo/attributor.go
// Country attribution for articles. Pure function of its inputs: layered
// heuristics over source name, URL, TLD and content, no network calls.
package geo

import (
	"net/url"
	"sort"
	"strings"
)

// Attributor infers zero or more countries for an article. All layers are
// additive; the union is rendered as a comma-joined sorted list, or "Global"
// when nothing matched.
type Attributor struct{}

func NewAttributor() *Attributor {
	return &Attributor{}
}

// contentMatchCap stops the content layer once this many countries matched,
// to avoid over-tagging articles that survey many regions.
const contentMatchCap = 3

// Attribute returns the country/region string for an article: "Global", a
// single title-cased country, or a sorted comma-joined list.
func (a *Attributor) Attribute(sourceName, rawURL, title, description string) string {
	sourceLower := strings.ToLower(sourceName)
	urlLower := strings.ToLower(rawURL)
	contentLower := strings.TrimSpace(strings.ToLower(title) + " " + strings.ToLower(description))

	countries := make(map[string]struct{})
	add := func(c string) { countries[c] = struct{}{} }

	host := hostOf(urlLower)

	// TLD layer: anchored to the true host suffix so ".it" never matches
	// inside a longer label like "itmedia".
	for tld, country := range tldToCountry {
		if strings.HasSuffix(host, tld) || strings.HasSuffix(urlLower, tld) {
			add(country)
		}
	}

	// Source-specific override: ITmedia is a Japanese outlet whose domain
	// contains ".it" as a substring. It resolves to Japan only.
	if strings.Contains(sourceLower, "itmedia") || strings.Contains(urlLower, "itmedia.co.jp") {
		add("Japan")
		delete(countries, "Italy")
	}

	// Government-source layer.
	for _, rule := range govRules {
		if matchesAny(sourceLower, rule.sourceFrags) || matchesAny(urlLower, rule.urlFrags) {
			add(rule.country)
		}
	}
	// Generic .gov without a country qualifier (.gov.uk, .gov.sg, .govt.nz)
	// is a United States domain.
	if i := strings.Index(urlLower, ".gov"); i >= 0 {
		rest := urlLower[i+len(".gov"):]
		if rest == "" || rest[0] == '/' || rest[0] == ':' || rest[0] == '?' {
			add("United States")
		}
	}
	if (strings.Contains(sourceLower, "csa") && strings.Contains(sourceLower, "singapore")) ||
		strings.Contains(urlLower, ".gov.sg") {
		add("Singapore")
	}

	// Vendor-location layer.
	for country, names := range vendorCountries {
		if matchesAny(sourceLower, names) {
			add(country)
		}
	}

	// Research-lab layer.
	for _, rule := range labRules {
		if matchesAny(sourceLower, rule.sourceFrags) || matchesAny(urlLower, rule.urlFrags) {
			add(rule.country)
		}
	}

	// Content-pattern layer, capped to avoid over-tagging.
	if len(countries) < contentMatchCap {
		for country, patterns := range countryPatterns {
			for _, pattern := range patterns {
				if pos := strings.Index(contentLower, pattern); pos >= 0 {
					if hasContextCue(contentLower, pos, len(pattern)) {
						add(country)
						break
					}
				}
			}
		}
	}

	// URL-pattern layer, independent of the TLD layer.
	for country, patterns := range urlPatterns {
		if matchesAny(urlLower, patterns) {
			add(country)
		}
	}

	return render(countries)
}

// hasContextCue reports whether a contextual cue word appears within 50
// characters on either side of a content-pattern match. Plain incidental
// mentions of a country are rejected.
func hasContextCue(content string, pos, patternLen int) bool {
	start := pos - 50
	if start < 0 {
		start = 0
	}
	end := pos + patternLen + 50
	if end > len(content) {
		end = len(content)
	}
	window := content[start:end]
	for _, cue := range contextWords {
		if strings.Contains(window, cue) {
			return true
		}
	}
	return false
}

func matchesAny(s string, frags []string) bool {
	for _, frag := range frags {
		if frag != "" && strings.Contains(s, frag) {
			return true
		}
	}
	return false
}

// hostOf extracts the hostname from a lowercased URL, tolerating bare hosts.
func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err == nil && u.Host != "" {
		return u.Hostname()
	}
	// No scheme: take everything up to the first path separator.
	if i := strings.IndexAny(rawURL, "/?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

func render(countries map[string]struct{}) string {
	if len(countries) == 0 {
		return "Global"
	}
	names := make([]string, 0, len(countries))
	for c := range countries {
		names = append(names, titleCaseCountry(c))
	}
	if len(names) == 1 {
		return names[0]
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// titleCaseCountry normalizes a country name to title case, with an exception
// table for multi-word proper names.
func titleCaseCountry(country string) string {
	lower := strings.ToLower(strings.TrimSpace(country))
	if fixed, ok := multiWordNames[lower]; ok {
		return fixed
	}
	words := strings.Fields(lower)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
