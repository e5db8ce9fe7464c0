// Package scheduler implements the cross-platform execution driver: the
// pass-based loop that walks a Plan stage-by-stage, honors breakpoints,
// owns the executor lifecycle, and merges execution state (§4.5).
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/flowstage/xplat-exec-core/internal/breakpoint"
	"github.com/flowstage/xplat-exec-core/internal/collections"
	"github.com/flowstage/xplat-exec-core/internal/execstate"
	"github.com/flowstage/xplat-exec-core/internal/executor"
	"github.com/flowstage/xplat-exec-core/internal/instrumentation"
	"github.com/flowstage/xplat-exec-core/internal/planmodel"
	"github.com/flowstage/xplat-exec-core/internal/speccache"
	"github.com/flowstage/xplat-exec-core/internal/telemetry"
)

// Driver is the scheduler owned by the host application: one Driver per
// job, constructed once and driven through however many
// ExecuteUntilBreakpoint / ExtendBreakpoint cycles the host needs.
//
// Driver is not safe for concurrent use. Per §5, it is single-threaded
// cooperative: the only suspension points are calls into an executor's
// Execute method.
type Driver struct {
	job             planmodel.Job
	instrumentation instrumentation.Strategy
	execManager     *executor.Manager
	tel             *telemetry.Telemetry
	specCache       speccache.Cache

	breakpoint *breakpoint.Conjunctive

	// executed is the driver-owned execution-status map (Design Notes §9):
	// it replaces mutating Stage.wasExecuted in place, and persists across
	// ExecuteUntilBreakpoint calls so that a resumed run can fast-forward.
	executed collections.Set[planmodel.StageID]

	// state is the rolling execution state, threaded through stage
	// executions and persisted across calls.
	state execstate.State

	// suspended is the suspended-stage set of the most recent snapshot,
	// reported again by CaptureState.
	suspended collections.Set[planmodel.StageID]
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithTelemetry attaches an OpenTelemetry instrumentation bundle. Without
// this option the driver emits no spans or metrics.
func WithTelemetry(tel *telemetry.Telemetry) Option {
	return func(d *Driver) { d.tel = tel }
}

// WithSpecificationCache attaches a cache for raw selectivity
// specification strings. Without this option, specification lookups always miss
// the cache (speccache.Noop), matching the source's disabled cache
// (Design Notes §9).
func WithSpecificationCache(cache speccache.Cache) Option {
	return func(d *Driver) { d.specCache = cache }
}

// New constructs a Driver for job, applying instrumentationStrategy before
// every actual (non-fast-forward) stage execution.
func New(job planmodel.Job, instrumentationStrategy instrumentation.Strategy, opts ...Option) *Driver {
	d := &Driver{
		job:             job,
		instrumentation: instrumentationStrategy,
		breakpoint:      breakpoint.NewConjunctive(),
		executed:        collections.NewSet[planmodel.StageID](),
		state:           execstate.New(),
		specCache:       speccache.Noop{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.execManager = executor.NewManager(job, d.tel)
	return d
}

// SpecificationCache returns the cache the driver was configured with,
// for operator estimators that want to share it.
func (d *Driver) SpecificationCache() speccache.Cache { return d.specCache }

// ExtendBreakpoint appends clause to the driver's current breakpoint
// conjunction. The conjunction is cleared at the end of every
// ExecuteUntilBreakpoint call (§4.3): breakpoints are per-invocation
// gates, not sticky.
func (d *Driver) ExtendBreakpoint(clause breakpoint.Clause) {
	d.breakpoint.Extend(clause)
}

// ExecuteUntilBreakpoint drives plan to completion or until every ready
// stage is blocked by the current breakpoint, whichever comes first. It
// may be called repeatedly on the same plan to resume a suspended run:
// stages already recorded as executed are fast-forwarded rather than
// re-executed.
func (d *Driver) ExecuteUntilBreakpoint(ctx context.Context, plan *planmodel.Plan) (execstate.Snapshot, error) {
	started := time.Now()

	d.execManager.ResetExecutionCounters()

	predecessorCounter := make(map[planmodel.StageID]int)
	suspended := collections.NewSet[planmodel.StageID]()
	activated := append([]planmodel.StageID(nil), plan.StartingStages()...)

	breakpointsDisabled := false
	anyLegitimateProgress := false
	submittedCount := 0

	for len(activated) > 0 {
		batch := activated
		activated = nil
		var newlyActivated []planmodel.StageID
		progressed := false

		for _, id := range batch {
			stage := plan.Stage(id)
			alreadyExecuted := d.executed.Has(id)

			// permitted reflects the real breakpoint verdict regardless of
			// breakpointsDisabled, so the loop can tell a legitimately
			// permitted stage apart from one only forced through by the
			// live-lock recovery override below.
			permitted := alreadyExecuted || d.breakpoint.Permits(stage)
			if !permitted && !breakpointsDisabled {
				suspended.Add(id)
				continue
			}

			if !alreadyExecuted {
				if err := d.executeStage(ctx, plan, stage); err != nil {
					return d.snapshot(suspended), err
				}
			} else if err := d.fastForward(ctx, plan, stage); err != nil {
				return d.snapshot(suspended), err
			}
			submittedCount++
			progressed = true
			if permitted {
				anyLegitimateProgress = true
			}

			for _, succID := range stage.Successors() {
				succ := plan.Stage(succID)
				predecessorCounter[succID]++
				if predecessorCounter[succID] > len(succ.Predecessors()) {
					panic(&ProgrammerError{Message: "predecessor counter exceeded predecessor count for " + succID.String()})
				}
				if predecessorCounter[succID] == len(succ.Predecessors()) {
					newlyActivated = append(newlyActivated, succID)
					delete(predecessorCounter, succID)
				}
			}
		}

		if !progressed {
			if anyLegitimateProgress {
				// At least one stage in this call has already executed (or
				// fast-forwarded) under a genuine breakpoint permission, so
				// the stages still stuck here are a legitimate breakpoint
				// suspension, not a live-lock: stop and let the caller
				// resume with a different conjunction. Forced-through
				// progress from an earlier recovery pass does not count --
				// only a real permission proves the breakpoint is capable
				// of letting something through on its own.
				break
			}
			log.Printf("[WARN] scheduler: no legitimate progress yet this call, disabling breakpoints for one recovery pass (%d stages suspended)", suspended.Len())
			breakpointsDisabled = true
			for id := range suspended {
				activated = append(activated, id)
			}
			suspended = collections.NewSet[planmodel.StageID]()
		} else {
			breakpointsDisabled = false
			activated = newlyActivated
		}
	}

	log.Printf("[DEBUG] scheduler: pass complete, submitted=%d suspended=%d elapsed=%s", submittedCount, suspended.Len(), time.Since(started))

	d.breakpoint = breakpoint.NewConjunctive()

	if submittedCount == 0 {
		return d.snapshot(suspended), &PlanError{Message: "could not execute a single stage"}
	}

	return d.snapshot(suspended), nil
}

func (d *Driver) executeStage(ctx context.Context, plan *planmodel.Plan, stage planmodel.Stage) error {
	d.instrumentation.ApplyTo(stage)
	group := plan.PlatformExecution(stage.Group())

	ex, err := d.execManager.GetOrCreate(ctx, group)
	if err != nil {
		return &ExecutorError{Stage: stage.ID().String(), Cause: err}
	}

	spanCtx, span := d.tel.StartStageSpan(ctx, stage.Description(), group.Platform().Name())
	start := time.Now()
	newState, err := ex.Execute(spanCtx, stage, d.state)
	span.End()
	d.tel.RecordStageDuration(ctx, time.Since(start), stage.Description())
	if err != nil {
		return &ExecutorError{Stage: stage.ID().String(), Cause: err}
	}

	d.state = execstate.Merge(d.state, newState)
	d.executed.Add(stage.ID())

	return d.execManager.StageExecuted(ctx, group)
}

// fastForward skips real execution for a stage already recorded as
// executed, but still advances the executor lifecycle bookkeeping for
// its group so replay of a finished group disposes correctly.
func (d *Driver) fastForward(ctx context.Context, plan *planmodel.Plan, stage planmodel.Stage) error {
	group := plan.PlatformExecution(stage.Group())
	return d.execManager.StageExecuted(ctx, group)
}

func (d *Driver) snapshot(suspended collections.Set[planmodel.StageID]) execstate.Snapshot {
	d.suspended = suspended
	return execstate.Snapshot{
		State:     d.state,
		Completed: stageIDsToInts(d.executed),
		Suspended: stageIDsToInts(suspended),
	}
}

// CaptureState returns an immutable record of the driver's current
// execution state, completed stages, and suspended stages as of the most
// recent ExecuteUntilBreakpoint call.
func (d *Driver) CaptureState() execstate.Snapshot {
	return d.snapshot(d.suspended)
}

// Shutdown disposes every executor still live across all platform
// executions the driver has touched.
func (d *Driver) Shutdown(ctx context.Context) error {
	return d.execManager.Shutdown(ctx)
}

func stageIDsToInts(s collections.Set[planmodel.StageID]) []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, int(id))
	}
	return out
}
