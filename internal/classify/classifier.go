// internal/classify/classifier.go
// Content classification behind an ordered strategy chain: remote LLM, then
// local inference model, then the deterministic keyword scorer. The first
// strategy reporting sufficient confidence wins.
package classify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Category is the content label assigned to an article, distinct from the
// publisher type of its source.
type Category string

const (
	News     Category = "News"
	Alert    Category = "Alert"
	Research Category = "Research"
	Event    Category = "Event"
)

// Categories lists every valid category.
func Categories() []Category {
	return []Category{News, Alert, Research, Event}
}

// ParseCategory maps a free-form label to a Category, defaulting to News.
func ParseCategory(s string) Category {
	switch {
	case strings.Contains(strings.ToLower(s), "alert"):
		return Alert
	case strings.Contains(strings.ToLower(s), "research"):
		return Research
	case strings.Contains(strings.ToLower(s), "event"):
		return Event
	default:
		return News
	}
}

// input carries everything a strategy may consult.
type input struct {
	Title       string
	Description string
	Source      string
	URL         string
}

// strategy attempts one classification. ok=false means the strategy is
// unavailable or failed; the chain moves on.
type strategy interface {
	name() string
	tryClassify(ctx context.Context, in input) (Category, float64, bool)
}

// confidenceThreshold is the minimum confidence a remote/model result needs
// before it overrides the keyword fallback.
const confidenceThreshold = 0.4

// cacheLimit bounds the in-memory result cache. When full it is dropped
// wholesale; classification is cheap enough to rebuild.
const cacheLimit = 4096

// Config selects which strategies are constructed ahead of the keyword
// fallback.
type Config struct {
	LLMEndpoint    string
	LLMModel       string
	LLMAPIKey      string
	ModelEndpoint  string
	RequestTimeout time.Duration
	DisableRemote  bool
}

// Service owns the strategy chain and a process-scoped result cache. It is
// constructed once at startup and shared by all fetch workers.
type Service struct {
	strategies []strategy
	logger     zerolog.Logger

	mu    sync.Mutex
	cache map[string]Category
}

func NewService(cfg Config, logger zerolog.Logger) *Service {
	s := &Service{
		logger: logger.With().Str("component", "classifier").Logger(),
		cache:  make(map[string]Category),
	}
	if !cfg.DisableRemote {
		if cfg.LLMAPIKey != "" && cfg.LLMEndpoint != "" {
			s.strategies = append(s.strategies, newLLMStrategy(cfg))
		}
		if cfg.ModelEndpoint != "" {
			s.strategies = append(s.strategies, newModelStrategy(cfg))
		}
	}
	s.strategies = append(s.strategies, &keywordStrategy{})
	return s
}

// Classify assigns one category to an article. An absent title short-circuits
// to News. Strategy failures never propagate: the keyword scorer is the
// guaranteed last resort.
func (s *Service) Classify(ctx context.Context, title, description, source, url string) Category {
	if title == "" {
		return News
	}

	// Source and URL feed the keyword scorer, so they are part of the
	// cache identity.
	key := title + "|" + description + "|" + source + "|" + url
	s.mu.Lock()
	if c, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return c
	}
	s.mu.Unlock()

	in := input{Title: title, Description: description, Source: source, URL: url}

	result := News
	for _, strat := range s.strategies {
		category, confidence, ok := strat.tryClassify(ctx, in)
		if !ok {
			continue
		}
		if confidence <= confidenceThreshold {
			s.logger.Debug().
				Str("strategy", strat.name()).
				Float64("confidence", confidence).
				Msg("low-confidence result, trying next strategy")
			continue
		}
		result = category
		break
	}

	s.mu.Lock()
	if len(s.cache) >= cacheLimit {
		s.cache = make(map[string]Category)
	}
	s.cache[key] = result
	s.mu.Unlock()

	return result
}
