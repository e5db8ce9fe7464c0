// Package executor implements the lifecycle manager for platform-bound
// executors: lazy creation on first use, exactly-once disposal once a
// platform execution group's stages have all run, per Design Notes §4.4.
package executor

import (
	"context"
	"fmt"
	"log"

	"github.com/flowstage/xplat-exec-core/internal/planmodel"
	"github.com/flowstage/xplat-exec-core/internal/telemetry"
)

type liveExecutor struct {
	executor     planmodel.Executor
	platformName string
}

// Manager owns at most one live Executor per platform execution group and
// tracks how many of that group's stages have executed *during the
// current scheduler call*, so it can dispose the executor the moment the
// group finishes. The execution-stage counter is reset at the start of
// every ExecuteUntilBreakpoint call via ResetExecutionCounters (the
// scheduler replays every stage's path on each call, fast-forwarding
// already-done stages, so the counter must start over each time to reach
// a group's true size exactly once per call); the live executor map is
// not reset, since a resumed run must keep using the same executor
// instance for a group that hasn't finished yet.
//
// Manager is not safe for concurrent use; the scheduler drives it from a
// single goroutine (§5, "single-threaded cooperative").
type Manager struct {
	job      planmodel.Job
	tel      *telemetry.Telemetry
	live     map[planmodel.GroupID]liveExecutor
	executed map[planmodel.GroupID]int
}

// NewManager returns a Manager with no live executors.
func NewManager(job planmodel.Job, tel *telemetry.Telemetry) *Manager {
	return &Manager{
		job:      job,
		tel:      tel,
		live:     make(map[planmodel.GroupID]liveExecutor),
		executed: make(map[planmodel.GroupID]int),
	}
}

// GetOrCreate returns the live executor for group, constructing one via
// its platform's factory on first use. It must only be called for a group
// that is about to actually execute a stage -- never for a fast-forwarded
// (already-executed) stage, per the replay rule in §4.4.
func (m *Manager) GetOrCreate(ctx context.Context, group planmodel.PlatformExecution) (planmodel.Executor, error) {
	if entry, ok := m.live[group.ID()]; ok {
		return entry.executor, nil
	}
	factory := group.Platform().ExecutorFactory()
	ex, err := factory.Create(ctx, m.job)
	if err != nil {
		return nil, fmt.Errorf("executor: creating executor for %s on platform %q: %w", group.ID(), group.Platform().Name(), err)
	}
	m.live[group.ID()] = liveExecutor{executor: ex, platformName: group.Platform().Name()}
	m.tel.RecordExecutorCreated(ctx, group.Platform().Name())
	return ex, nil
}

// StageExecuted records that one more stage of group has been submitted
// this call -- either executed for real or fast-forwarded because it was
// already recorded as executed on a prior call -- disposing the group's
// executor once every member stage has been submitted. The scheduler
// calls this for both paths (driver.go's executeStage and fastForward),
// since a replay must still count fast-forwarded stages toward group
// completion for ResetExecutionCounters to dispose correctly.
func (m *Manager) StageExecuted(ctx context.Context, group planmodel.PlatformExecution) error {
	m.executed[group.ID()]++
	if m.executed[group.ID()] < group.Size() {
		return nil
	}
	return m.dispose(ctx, group.ID())
}

// ResetExecutionCounters clears the per-group execution-stage counters,
// mirroring the scheduler's prepare() step ("clear all counters").
// Live executors are left untouched.
func (m *Manager) ResetExecutionCounters() {
	m.executed = make(map[planmodel.GroupID]int)
}

// Shutdown disposes every remaining live executor, in an unspecified
// order. It is idempotent: executors already disposed by StageExecuted
// are not touched again.
func (m *Manager) Shutdown(ctx context.Context) error {
	var firstErr error
	for groupID := range m.live {
		if err := m.dispose(ctx, groupID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *Manager) dispose(ctx context.Context, groupID planmodel.GroupID) error {
	entry, ok := m.live[groupID]
	if !ok {
		return nil
	}
	delete(m.live, groupID)
	if err := entry.executor.Dispose(ctx); err != nil {
		log.Printf("[WARN] executor: dispose failed for %s: %v", groupID, err)
		return fmt.Errorf("executor: disposing executor for %s: %w", groupID, err)
	}
	m.tel.RecordExecutorDisposed(ctx, entry.platformName)
	return nil
}

// LiveCount reports how many executors are currently live, for tests that
// assert on lifecycle bookkeeping.
func (m *Manager) LiveCount() int { return len(m.live) }
