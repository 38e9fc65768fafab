// internal/feed/service.go
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultInterval = 12 * time.Hour

// ScheduleInfo describes the automatic fetch schedule for the API.
type ScheduleInfo struct {
	Enabled       bool    `json:"enabled"`
	IntervalHours float64 `json:"interval_hours"`
	NextRunTime   string  `json:"next_run_time,omitempty"`
	Running       bool    `json:"currently_running"`
}

// Service runs the coordinator on a fixed interval and serializes manual runs
// against scheduled ones.
type Service struct {
	coordinator *Coordinator
	logger      zerolog.Logger
	interval    time.Duration
	done        chan struct{}

	runMu sync.Mutex // held for the duration of a run

	mu      sync.Mutex
	nextRun time.Time
	running bool
	started bool
}

func NewService(coordinator *Coordinator, interval time.Duration, logger zerolog.Logger) *Service {
	if interval < time.Minute {
		interval = defaultInterval
	}
	return &Service{
		coordinator: coordinator,
		logger:      logger.With().Str("component", "scheduler").Logger(),
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (s *Service) Start() {
	s.mu.Lock()
	s.started = true
	s.nextRun = time.Now().UTC().Add(s.interval)
	s.mu.Unlock()
	go s.loop()
}

func (s *Service) Stop() {
	close(s.done)
}

func (s *Service) loop() {
	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.nextRun = time.Now().UTC().Add(s.interval)
			s.mu.Unlock()

			report := s.Run(context.Background(), RunOptions{})
			if report.Status != "success" {
				s.logger.Error().Str("message", report.Message).Msg("scheduled run failed")
			}
		case <-s.done:
			s.logger.Info().Msg("scheduler shutting down")
			return
		}
	}
}

// Run executes one ingestion run. If another run is already in flight a busy
// report is returned immediately instead of queueing.
func (s *Service) Run(ctx context.Context, opts RunOptions) Report {
	if !s.runMu.TryLock() {
		return Report{
			Status:  "error",
			Message: "a feed fetch is already in progress",
		}
	}
	defer s.runMu.Unlock()

	s.setRunning(true)
	defer s.setRunning(false)
	return s.coordinator.Run(ctx, opts)
}

func (s *Service) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// Schedule reports the current automatic fetch schedule.
func (s *Service) Schedule() ScheduleInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := ScheduleInfo{
		Enabled:       s.started,
		IntervalHours: s.interval.Hours(),
		Running:       s.running,
	}
	if s.started && !s.nextRun.IsZero() {
		info.NextRunTime = s.nextRun.Format(time.RFC3339)
	}
	return info
}
