package planmodel

// Stage is a single unit of execution within a Plan: one node of the
// execution DAG. Stage values are immutable once a Plan has been built --
// there is deliberately no "executed" flag here. Which stages have run is
// tracked by the scheduler driver in a status map keyed by StageID, not by
// mutating the plan's own stages (Design Notes §9).
type Stage struct {
	id           StageID
	group        GroupID
	description  string
	predecessors []StageID
	successors   []StageID
}

// ID returns the stage's identity within its Plan.
func (s Stage) ID() StageID { return s.id }

// Group returns the platform execution this stage belongs to.
func (s Stage) Group() GroupID { return s.group }

// Description is a short human-readable label for logs and debug output.
func (s Stage) Description() string { return s.description }

// Predecessors returns the stages that must complete before this one may
// execute. The slice is owned by the Plan and must not be modified.
func (s Stage) Predecessors() []StageID { return s.predecessors }

// Successors returns the stages that become eligible once this one
// completes. The slice is owned by the Plan and must not be modified.
func (s Stage) Successors() []StageID { return s.successors }

// IsStarting reports whether this stage has no predecessors and is
// therefore eligible for execution as soon as the scheduler begins a pass.
func (s Stage) IsStarting() bool { return len(s.predecessors) == 0 }
