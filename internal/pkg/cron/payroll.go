package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/statestore"
)

// lastCycleKey remembers the most recent cycle generated by the job.
const lastCycleKey = "cron:payroll:last_generated_cycle"

// CycleGenerator creates draft records for every active employee of a cycle.
type CycleGenerator interface {
	GenerateCycle(ctx context.Context, cycle payroll.Cycle) (payroll.GeneratePayrollResponse, error)
}

type PayrollJobs struct {
	generator CycleGenerator
	state     statestore.Store
	loc       *time.Location
	now       func() time.Time
}

func NewPayrollJobs(generator CycleGenerator, state statestore.Store, loc *time.Location) *PayrollJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollJobs{
		generator: generator,
		state:     state,
		loc:       loc,
		now:       time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_cycle_payroll", time.Hour, j.GenerateClosedCycle)
}

// GenerateClosedCycle runs on the day after a cycle closes and generates the
// draft payroll for that cycle, once.
func (j *PayrollJobs) GenerateClosedCycle(ctx context.Context) error {
	today := j.now().In(j.loc)
	if today.Day() != payroll.CycleClosingDay+1 {
		return nil
	}

	closed := payroll.CycleOf(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)).Previous()

	raw, err := j.state.Get(ctx, lastCycleKey)
	if err != nil && !errors.Is(err, statestore.ErrNotFound) {
		return fmt.Errorf("failed to read last generated cycle: %w", err)
	}
	var last payroll.Cycle
	if err == nil && json.Unmarshal(raw, &last) == nil && last == closed {
		return nil
	}

	slog.Info("cron: generating payroll for closed cycle", "cycle", closed.String())
	resp, err := j.generator.GenerateCycle(ctx, closed)
	if err != nil {
		return fmt.Errorf("failed to generate payroll for %s: %w", closed, err)
	}

	done, err := json.Marshal(closed)
	if err != nil {
		return err
	}
	if err := j.state.Set(ctx, lastCycleKey, done, 0); err != nil {
		return fmt.Errorf("failed to record generated cycle: %w", err)
	}
	slog.Info("cron: cycle payroll generated",
		"cycle", closed.String(),
		"generated", len(resp.Generated),
		"skipped", len(resp.Skipped),
	)
	return nil
}
