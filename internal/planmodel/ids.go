// Package planmodel implements the execution plan data model: a DAG of
// execution stages grouped into platform executions, stored as
// integer-indexed arenas per Design Notes §9 so that the object graph the
// garbage collector walks stays acyclic even though the logical stage
// graph is not tree-shaped.
package planmodel

import "fmt"

// StageID identifies an execution stage within a Plan. IDs are stable for
// the lifetime of a Plan and are assigned in construction order starting
// at zero.
type StageID int

func (id StageID) String() string {
	return fmt.Sprintf("stage[%d]", int(id))
}

// GroupID identifies a platform execution within a Plan.
type GroupID int

func (id GroupID) String() string {
	return fmt.Sprintf("group[%d]", int(id))
}
