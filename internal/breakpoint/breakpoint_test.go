package breakpoint_test

import (
	"testing"

	"github.com/flowstage/xplat-exec-core/internal/breakpoint"
	"github.com/flowstage/xplat-exec-core/internal/planmodel"
)

func TestPermitAll(t *testing.T) {
	var bp breakpoint.PermitAll
	job := planmodel.NewJob("t")
	b := planmodel.NewBuilder(job)
	g := b.AddPlatformExecution(nil)
	id, _ := b.AddStage(g, "a")
	plan, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bp.Permits(plan.Stage(id)) {
		t.Fatal("PermitAll should permit every stage")
	}
}

func TestConjunctiveEmptyPermitsAll(t *testing.T) {
	c := breakpoint.NewConjunctive()
	job := planmodel.NewJob("t")
	b := planmodel.NewBuilder(job)
	g := b.AddPlatformExecution(nil)
	id, _ := b.AddStage(g, "a")
	plan, _ := b.Build()

	if !c.Permits(plan.Stage(id)) {
		t.Fatal("empty conjunction should permit every stage")
	}
}

func TestConjunctiveDenyByName(t *testing.T) {
	c := breakpoint.NewConjunctive()
	c.Extend(func(s planmodel.Stage) bool { return s.Description() != "C" })

	job := planmodel.NewJob("t")
	b := planmodel.NewBuilder(job)
	g := b.AddPlatformExecution(nil)
	a, _ := b.AddStage(g, "A")
	cStage, _ := b.AddStage(g, "C")
	plan, _ := b.Build()

	if !c.Permits(plan.Stage(a)) {
		t.Fatal("expected stage A to be permitted")
	}
	if c.Permits(plan.Stage(cStage)) {
		t.Fatal("expected stage C to be denied")
	}
}

func TestConjunctiveDenyAll(t *testing.T) {
	c := breakpoint.NewConjunctive()
	c.Extend(func(planmodel.Stage) bool { return false })

	job := planmodel.NewJob("t")
	b := planmodel.NewBuilder(job)
	g := b.AddPlatformExecution(nil)
	id, _ := b.AddStage(g, "a")
	plan, _ := b.Build()

	if c.Permits(plan.Stage(id)) {
		t.Fatal("expected every stage to be denied")
	}
}
