package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// SessionJanitor reaps idle player sessions.
type SessionJanitor interface {
	SweepExpired(now time.Time) int
}

type SessionSweeper struct {
	janitor  SessionJanitor
	interval time.Duration
}

func NewSessionSweeper(janitor SessionJanitor, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{janitor: janitor, interval: interval}
}

func (s *SessionSweeper) Start(ctx context.Context) {
	if s.janitor == nil {
		slog.Warn("session sweeper skipped: no janitor configured")
		return
	}
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if swept := s.janitor.SweepExpired(time.Now()); swept > 0 {
					slog.Info("player sessions swept", "count", swept)
				}
			}
		}
	}()
}
