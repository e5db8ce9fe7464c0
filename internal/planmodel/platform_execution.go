package planmodel

// PlatformExecution groups the stages of a Plan that run on a single
// platform's executor. A scheduler driver creates at most one live
// Executor per PlatformExecution, lazily on the first stage of the group
// that actually executes, and disposes it once every stage in the group
// has executed.
type PlatformExecution struct {
	id       GroupID
	platform Platform
	stages   []StageID
}

// ID returns the group's identity within its Plan.
func (p PlatformExecution) ID() GroupID { return p.id }

// Platform returns the platform this group of stages executes on.
func (p PlatformExecution) Platform() Platform { return p.platform }

// Stages returns the stage IDs belonging to this group, in the order they
// were added during construction. The slice is owned by the Plan and must
// not be modified.
func (p PlatformExecution) Stages() []StageID { return p.stages }

// Size returns the number of stages in this group, used by the executor
// lifecycle manager to know when the last stage of a group has executed.
func (p PlatformExecution) Size() int { return len(p.stages) }
