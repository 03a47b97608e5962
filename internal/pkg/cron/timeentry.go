package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionCloser closes clock-in sessions nobody clocked out of.
type SessionCloser interface {
	AutoCloseStaleSessions(ctx context.Context) (int, error)
}

// StatePurger removes expired state store entries.
type StatePurger func(ctx context.Context) (int64, error)

type TimeEntryJobs struct {
	sessions SessionCloser
	purge    StatePurger
}

func NewTimeEntryJobs(sessions SessionCloser, purge StatePurger) *TimeEntryJobs {
	return &TimeEntryJobs{sessions: sessions, purge: purge}
}

func (j *TimeEntryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", time.Hour, j.AutoCloseStaleSessions)
	if j.purge != nil {
		scheduler.AddJob("purge_expired_state", time.Hour, j.PurgeExpiredState)
	}
}

func (j *TimeEntryJobs) AutoCloseStaleSessions(ctx context.Context) error {
	closed, err := j.sessions.AutoCloseStaleSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to auto-close sessions: %w", err)
	}
	if closed > 0 {
		slog.Info("cron: stale sessions auto-closed", "count", closed)
	}
	return nil
}

func (j *TimeEntryJobs) PurgeExpiredState(ctx context.Context) error {
	purged, err := j.purge(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired state: %w", err)
	}
	if purged > 0 {
		slog.Info("cron: expired state purged", "count", purged)
	}
	return nil
}
