// internal/classify/model.go
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// modelStrategy talks to a local zero-shot classification sidecar over HTTP.
// The service is probed lazily on first use; a failed probe permanently
// disables the strategy for the process lifetime, with no retry.
type modelStrategy struct {
	endpoint string
	client   *http.Client

	probeOnce sync.Once
	available bool
}

func newModelStrategy(cfg Config) *modelStrategy {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &modelStrategy{
		endpoint: cfg.ModelEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *modelStrategy) name() string { return "model" }

func (s *modelStrategy) probe(ctx context.Context) bool {
	s.probeOnce.Do(func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/health", nil)
		if err != nil {
			return
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return
		}
		resp.Body.Close()
		s.available = resp.StatusCode == http.StatusOK
	})
	return s.available
}

func (s *modelStrategy) tryClassify(ctx context.Context, in input) (Category, float64, bool) {
	if !s.probe(ctx) {
		return News, 0, false
	}

	text := in.Title + ". " + in.Description
	if len(text) > 512 {
		text = text[:512]
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return News, 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/classify", bytes.NewReader(body))
	if err != nil {
		return News, 0, false
	}
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
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return News, 0, false
	}

	return ParseCategory(parsed.Label), parsed.Confidence, true
}
