// Package breakpoint implements the composable admission predicate the
// scheduler consults before submitting a stage for execution. A Breakpoint
// answers one question -- "may this stage run right now?" -- and is
// deliberately ignorant of everything else about the run.
package breakpoint

import "github.com/flowstage/xplat-exec-core/internal/planmodel"

// Clause is a single opaque admission test. Clauses may inspect any
// attribute of the stage they are given; they must not have side effects,
// since the scheduler may evaluate the same clause against the same stage
// more than once across passes.
type Clause func(stage planmodel.Stage) bool

// Breakpoint is a predicate gating stage admission.
type Breakpoint interface {
	Permits(stage planmodel.Stage) bool
}

// PermitAll is the Breakpoint that admits every stage. A Conjunctive with
// no clauses, which is the scheduler's default, behaves the same way.
type PermitAll struct{}

// Permits always returns true.
func (PermitAll) Permits(planmodel.Stage) bool { return true }

// Conjunctive combines an ordered list of clauses with logical AND. An
// empty conjunction permits everything, matching PermitAll.
type Conjunctive struct {
	clauses []Clause
}

// NewConjunctive returns an empty Conjunctive.
func NewConjunctive() *Conjunctive {
	return &Conjunctive{}
}

// Extend appends clause to the conjunction, to be evaluated alongside any
// clauses already present.
func (c *Conjunctive) Extend(clause Clause) {
	c.clauses = append(c.clauses, clause)
}

// Permits reports whether every clause in the conjunction admits stage.
// Clauses are evaluated in the order they were added and short-circuit on
// the first denial.
func (c *Conjunctive) Permits(stage planmodel.Stage) bool {
	for _, clause := range c.clauses {
		if !clause(stage) {
			return false
		}
	}
	return true
}

// Len reports how many clauses the conjunction currently holds.
func (c *Conjunctive) Len() int { return len(c.clauses) }
