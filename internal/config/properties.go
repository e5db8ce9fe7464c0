// Package config defines the boundary the core consumes from an embedding
// host's configuration layer. Plan and configuration-file parsing are
// explicitly out of scope for this module (see spec §1); this package
// only names the read-only contract the scheduler and estimators need.
package config

import "github.com/flowstage/xplat-exec-core/internal/estimate"

// Properties is the read-only configuration surface consumed by the
// estimator registry. Configuration is treated as read-only during a run.
type Properties interface {
	// GetOptionalStringProperty returns the string value configured for
	// key, and whether it was present at all.
	GetOptionalStringProperty(key string) (string, bool)

	// GetUdfSelectivityProvider returns the provider responsible for
	// supplying estimates for user-defined-function predicates, which
	// cannot be described by a static selectivity specification.
	GetUdfSelectivityProvider() UdfSelectivityProvider
}

// UdfSelectivityProvider supplies a selectivity estimate for a predicate
// described only by an opaque descriptor string, because the predicate's
// logic is a user-supplied function the optimizer cannot otherwise reason
// about.
type UdfSelectivityProvider interface {
	ProvideFor(predicateDescriptor string) (estimate.PIE, error)
}

// StaticProperties is a minimal map-backed Properties implementation for
// embedding hosts and tests that have no richer configuration layer of
// their own.
type StaticProperties struct {
	Values         map[string]string
	UdfSelectivity UdfSelectivityProvider
}

func (p *StaticProperties) GetOptionalStringProperty(key string) (string, bool) {
	v, ok := p.Values[key]
	return v, ok
}

func (p *StaticProperties) GetUdfSelectivityProvider() UdfSelectivityProvider {
	return p.UdfSelectivity
}

// NoUdfSelectivityProvider is a UdfSelectivityProvider that always fails,
// suitable as a default for hosts with no UDF predicates at all.
type NoUdfSelectivityProvider struct{}

func (NoUdfSelectivityProvider) ProvideFor(predicateDescriptor string) (estimate.PIE, error) {
	return estimate.PIE{}, &NoProviderError{PredicateDescriptor: predicateDescriptor}
}

// NoProviderError is returned by NoUdfSelectivityProvider for every request.
type NoProviderError struct {
	PredicateDescriptor string
}

func (e *NoProviderError) Error() string {
	return "no UDF selectivity provider configured for predicate " + e.PredicateDescriptor
}
