package planmodel

import (
	"context"

	"github.com/flowstage/xplat-exec-core/internal/execstate"
)

// Executor is a live, platform-specific worker bound to a single
// PlatformExecution. At most one Executor is live per platform execution
// at a time; it is created lazily on the first stage of its group that
// actually executes, and disposed exactly once after the last stage of
// its group executes (see the executor lifecycle package).
type Executor interface {
	// Execute runs stage, folding inState into whatever new observations
	// this execution produces, and returns the resulting state. Any error
	// returned propagates unchanged to the driver's caller: the stage is
	// not marked executed and the driver does not attempt recovery.
	Execute(ctx context.Context, stage Stage, inState execstate.State) (execstate.State, error)

	// Dispose releases this executor's resources. Called exactly once,
	// after the last stage of its platform execution has executed.
	Dispose(ctx context.Context) error
}

// ExecutorFactory creates Executor instances for a platform, given the
// job the driver was constructed for.
type ExecutorFactory interface {
	Create(ctx context.Context, job Job) (Executor, error)
}

// Platform is a handle to a concrete execution platform (a distributed
// runtime, a local runtime, ...), exposing the factory used to produce
// executors for platform executions bound to it.
type Platform interface {
	ExecutorFactory() ExecutorFactory
	Name() string
}
