// internal/classify/llm.go
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const llmPrompt = `Categorize this cybersecurity article into exactly ONE category.

Categories:
- News: Incident reports, breaches, attacks, hacks, ransomware events
- Alert: Security advisories, CVE disclosures, vulnerability warnings, patches
- Research: Security research, technical analysis, whitepapers, studies
- Event: Conferences, webinars, summits, workshops, training

Article: %s

Respond with ONLY the category name (News, Alert, Research, or Event), nothing else.`

// llmConfidence is the fixed confidence attached to an accepted remote
// answer; the API reports no score of its own.
const llmConfidence = 0.9

// llmStrategy submits a categorization prompt to an OpenAI-compatible chat
// completions endpoint.
type llmStrategy struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func newLLMStrategy(cfg Config) *llmStrategy {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &llmStrategy{
		endpoint: cfg.LLMEndpoint,
		model:    cfg.LLMModel,
		apiKey:   cfg.LLMAPIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *llmStrategy) name() string { return "llm" }

func (s *llmStrategy) tryClassify(ctx context.Context, in input) (Category, float64, bool) {
	if s.apiKey == "" {
		return News, 0, false
	}

	text := in.Title + ". " + in.Description
	if len(text) > 500 {
		text = text[:500]
	}

	body, err := json.Marshal(map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(llmPrompt, text)},
		},
		"temperature": 0,
		"max_tokens":  10,
	})
	if err != nil {
		return News, 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return News, 0, false
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return News, 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return News, 0, false
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Choices) == 0 {
		return News, 0, false
	}

	label := strings.TrimSpace(parsed.Choices[0].Message.Content)
	return ParseCategory(label), llmConfidence, true
}
