// internal/feed/dates.go
package feed

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layouts seen in the wild that dateparse occasionally trips over.
var extraLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// normalizeDate parses a feed entry timestamp into UTC. Unparseable or empty
// values fall back to the current time so an entry with a mangled date is
// still ingested rather than dropped.
func normalizeDate(raw string, now func() time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now().UTC()
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.UTC()
	}
	for _, layout := range extraLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now().UTC()
}
