// Package instrumentation defines the policy the scheduler consults
// before each actual (non-fast-forward) stage execution to mark channels
// for runtime measurement.
package instrumentation

import "github.com/flowstage/xplat-exec-core/internal/planmodel"

// Strategy is invoked once before each stage actually executes -- never
// for a fast-forwarded (already-executed) stage.
type Strategy interface {
	ApplyTo(stage planmodel.Stage)
}

// NoopStrategy applies no instrumentation. It is the default for runs
// that don't need per-channel runtime measurement.
type NoopStrategy struct{}

// ApplyTo does nothing.
func (NoopStrategy) ApplyTo(planmodel.Stage) {}
