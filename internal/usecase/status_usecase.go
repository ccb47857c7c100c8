package usecase

import (
	"sync"
	"time"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// StatusUseCase tracks the bot's run state for the dashboard and gates the
// sync loop's pause switch. Safe for concurrent use.
type StatusUseCase struct {
	mu     sync.RWMutex
	status entity.BotStatus
}

// NewStatusUseCase creates the status tracker.
func NewStatusUseCase() *StatusUseCase {
	return &StatusUseCase{}
}

func (s *StatusUseCase) Pause() {
	s.mu.Lock()
	s.status.Paused = true
	s.mu.Unlock()
}

func (s *StatusUseCase) Resume() {
	s.mu.Lock()
	s.status.Paused = false
	s.mu.Unlock()
}

func (s *StatusUseCase) IsPaused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Paused
}

// RecordRun stores the outcome of a completed sync pass.
func (s *StatusUseCase) RecordRun(report entity.SyncReport, repliesSent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.TotalRuns++
	s.status.RepliesSent += repliesSent
	s.status.LastRunMs = time.Now().UnixMilli()
	s.status.LastReport = report
	s.status.LastError = ""
}

// RecordError stores a run-level failure (thread-level skips are part of the
// report, not an error).
func (s *StatusUseCase) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastRunMs = time.Now().UnixMilli()
	s.status.LastError = err.Error()
}

// Snapshot returns a copy of the current status.
func (s *StatusUseCase) Snapshot() entity.BotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
