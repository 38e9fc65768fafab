// internal/classify/classifier_test.go
package classify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newKeywordOnlyService() *Service {
	return NewService(Config{DisableRemote: true}, zerolog.Nop())
}

func TestClassifyKeyword(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		url         string
		want        Category
	}{
		{
			name:  "cve disclosure is an alert",
			title: "CVE-2024-21412 exploited in the wild, patch now",
			want:  Alert,
		},
		{
			name:  "security advisory is an alert",
			title: "Threat advisory: active attack campaign targets VPN appliances",
			want:  Alert,
		},
		{
			name:        "conference registration is an event",
			title:       "Register now for the annual cybersecurity conference",
			description: "Early bird tickets available, keynote speaker lineup announced",
			want:        Event,
		},
		{
			name:  "event url hint contributes",
			title: "Annual summit agenda published",
			url:   "https://example.com/event/summit-2026",
			want:  Event,
		},
		{
			name:        "research publication",
			title:       "New research paper: peer-reviewed malware analysis",
			description: "Our research shows how the loader evades sandboxes",
			want:        Research,
		},
		{
			name:  "plain incident coverage is news",
			title: "Retailer confirms data breach affecting millions of customers",
			want:  News,
		},
		{
			name:  "no keyword hits default to news",
			title: "Weekly roundup",
			want:  News,
		},
	}

	svc := newKeywordOnlyService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Classify(context.Background(), tt.title, tt.description, "", tt.url)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyEmptyTitle(t *testing.T) {
	svc := newKeywordOnlyService()
	got := svc.Classify(context.Background(), "", "some description", "src", "")
	assert.Equal(t, News, got)
}

func TestClassifyDeterministic(t *testing.T) {
	svc := newKeywordOnlyService()
	title := "CVE-2025-0001: critical vulnerability in router firmware"
	first := svc.Classify(context.Background(), title, "", "", "")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.Classify(context.Background(), title, "", "", ""))
	}
}

func TestClassifyCacheKeyedOnAllInputs(t *testing.T) {
	// Source and URL influence the keyword scores, so two articles sharing a
	// title must not share a cached result.
	svc := newKeywordOnlyService()
	ctx := context.Background()
	title := "Quarterly highlights from the community"

	fresh := svc.Classify(ctx, title, "", "Example Labs", "https://example.com/research/q1")
	assert.Equal(t, Research, fresh)

	other := svc.Classify(ctx, title, "", "Daily Wire", "https://example.com/news/q1")
	assert.Equal(t, News, other)

	// Repeating the first inputs after the second warmed the cache must
	// still yield the first result.
	again := svc.Classify(ctx, title, "", "Example Labs", "https://example.com/research/q1")
	assert.Equal(t, fresh, again)
}

func TestKeywordTieBreakPriority(t *testing.T) {
	// scoring an input with no hits at all must stay News, not drift to
	// whichever category iterates first
	s := &keywordStrategy{}
	got, confidence, ok := s.tryClassify(context.Background(), input{Title: "hello world"})
	assert.True(t, ok)
	assert.Equal(t, 1.0, confidence)
	assert.Equal(t, News, got)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Alert", Alert},
		{"  alert\n", Alert},
		{"Category: Research", Research},
		{"Event", Event},
		{"News", News},
		{"gibberish", News},
		{"", News},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.in), "input %q", tt.in)
	}
}

func TestLLMStrategyWins(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Event"}}]}`))
	}))
	defer ts.Close()

	svc := NewService(Config{
		LLMEndpoint: ts.URL,
		LLMModel:    "test-model",
		LLMAPIKey:   "test-key",
	}, zerolog.Nop())

	// the keyword scorer would call this an alert; the remote answer wins
	got := svc.Classify(context.Background(), "CVE-2024-1111 critical vulnerability", "", "", "")
	assert.Equal(t, Event, got)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestLLMFailureFallsBackToKeyword(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	svc := NewService(Config{
		LLMEndpoint: ts.URL,
		LLMModel:    "test-model",
		LLMAPIKey:   "test-key",
	}, zerolog.Nop())

	got := svc.Classify(context.Background(), "CVE-2024-2222 exploited, emergency patch released", "", "", "")
	assert.Equal(t, Alert, got)
}

func TestModelStrategyConfidenceGate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/classify":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"label":"Event","confidence":0.2}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	svc := NewService(Config{ModelEndpoint: ts.URL}, zerolog.Nop())

	// 0.2 is below the confidence threshold, so the keyword scorer decides
	got := svc.Classify(context.Background(), "Threat advisory: ransomware alert for hospitals", "", "", "")
	assert.Equal(t, Alert, got)
}

func TestModelStrategyProbeFailureDisables(t *testing.T) {
	probes := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			probes++
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		t.Errorf("unexpected request to %s after failed probe", r.URL.Path)
	}))
	defer ts.Close()

	strat := newModelStrategy(Config{ModelEndpoint: ts.URL})
	for i := 0; i < 3; i++ {
		_, _, ok := strat.tryClassify(context.Background(), input{Title: "anything"})
		assert.False(t, ok)
	}
	assert.Equal(t, 1, probes, "probe must run exactly once")
}
