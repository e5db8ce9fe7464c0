package planmodel

import (
	"fmt"
	"strings"
)

// Plan is an immutable, arena-indexed execution DAG: every Stage and
// PlatformExecution is stored by integer ID in a flat slice, so the object
// graph itself stays acyclic even though the logical stage graph can have
// arbitrary fan-in and fan-out (Design Notes §9). Stages reference their
// predecessors and successors by StageID rather than by pointer.
type Plan struct {
	job      Job
	stages   []Stage
	groups   []PlatformExecution
	starting []StageID
}

// Job returns the job this plan was built for.
func (p *Plan) Job() Job { return p.job }

// Stage looks up a stage by ID. It panics if id is out of range, which
// can only happen if the caller constructs a StageID by hand instead of
// obtaining it from this Plan or its Builder.
func (p *Plan) Stage(id StageID) Stage {
	return p.stages[int(id)]
}

// PlatformExecution looks up a platform execution group by ID.
func (p *Plan) PlatformExecution(id GroupID) PlatformExecution {
	return p.groups[int(id)]
}

// Stages returns every stage in the plan, indexed by StageID.
func (p *Plan) Stages() []Stage { return p.stages }

// PlatformExecutions returns every platform execution group in the plan,
// indexed by GroupID.
func (p *Plan) PlatformExecutions() []PlatformExecution { return p.groups }

// StartingStages returns the IDs of the stages with no predecessors: the
// set a scheduler pass activates before it has executed anything.
func (p *Plan) StartingStages() []StageID { return p.starting }

// StageDebugString renders a stage and its dependency edges in a compact
// form suitable for test failure messages and trace logs, grounded on the
// teacher's execution graph debug representation.
func (p *Plan) StageDebugString(id StageID) string {
	s := p.Stage(id)
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s(%s) <- [", s.ID(), s.Description())
	for i, pred := range s.Predecessors() {
		if i != 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(pred.String())
	}
	buf.WriteString("]")
	return buf.String()
}

// Builder incrementally constructs a Plan. It is not safe for concurrent
// use; build a Plan on a single goroutine and then share the resulting
// Plan freely, since Plan itself is read-only after Build succeeds.
type Builder struct {
	job       Job
	stages    []Stage
	groups    []PlatformExecution
	platforms map[GroupID]Platform
}

// NewBuilder returns an empty Builder for the given job.
func NewBuilder(job Job) *Builder {
	return &Builder{job: job, platforms: make(map[GroupID]Platform)}
}

// AddPlatformExecution registers a new platform execution group bound to
// platform and returns its ID, to be passed to AddStage.
func (b *Builder) AddPlatformExecution(platform Platform) GroupID {
	id := GroupID(len(b.groups))
	b.groups = append(b.groups, PlatformExecution{id: id, platform: platform})
	b.platforms[id] = platform
	return id
}

// AddStage appends a new stage to the given platform execution group and
// returns its ID. The stage initially has no predecessors or successors;
// call AddDependency to wire up the DAG.
func (b *Builder) AddStage(group GroupID, description string) (StageID, error) {
	if int(group) < 0 || int(group) >= len(b.groups) {
		return 0, fmt.Errorf("planmodel: unknown platform execution %s", group)
	}
	id := StageID(len(b.stages))
	b.stages = append(b.stages, Stage{id: id, group: group, description: description})
	b.groups[int(group)].stages = append(b.groups[int(group)].stages, id)
	return id, nil
}

// AddDependency records that successor may not execute until predecessor
// has completed. Both stages must already have been added to the builder.
func (b *Builder) AddDependency(predecessor, successor StageID) error {
	if int(predecessor) < 0 || int(predecessor) >= len(b.stages) {
		return fmt.Errorf("planmodel: unknown stage %s", predecessor)
	}
	if int(successor) < 0 || int(successor) >= len(b.stages) {
		return fmt.Errorf("planmodel: unknown stage %s", successor)
	}
	if predecessor == successor {
		return fmt.Errorf("planmodel: stage %s cannot depend on itself", predecessor)
	}
	b.stages[int(successor)].predecessors = append(b.stages[int(successor)].predecessors, predecessor)
	b.stages[int(predecessor)].successors = append(b.stages[int(predecessor)].successors, successor)
	return nil
}

// Build validates the accumulated stages and dependencies and returns the
// finished Plan. It fails if the dependency graph contains a cycle, since
// a cyclic plan can never reach completion.
func (b *Builder) Build() (*Plan, error) {
	if err := detectCycle(b.stages); err != nil {
		return nil, err
	}
	var starting []StageID
	for _, s := range b.stages {
		if s.IsStarting() {
			starting = append(starting, s.id)
		}
	}
	return &Plan{
		job:      b.job,
		stages:   append([]Stage(nil), b.stages...),
		groups:   append([]PlatformExecution(nil), b.groups...),
		starting: starting,
	}, nil
}

// detectCycle performs a depth-first search over the dependency edges and
// reports an error naming the first cycle found, if any.
func detectCycle(stages []Stage) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make([]int, len(stages))

	var visit func(id StageID, path []StageID) error
	visit = func(id StageID, path []StageID) error {
		switch state[int(id)] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("planmodel: dependency cycle detected at stage %s", id)
		}
		state[int(id)] = visiting
		for _, succ := range stages[int(id)].successors {
			if err := visit(succ, append(path, id)); err != nil {
				return err
			}
		}
		state[int(id)] = done
		return nil
	}

	for _, s := range stages {
		if state[int(s.id)] == unvisited {
			if err := visit(s.id, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
