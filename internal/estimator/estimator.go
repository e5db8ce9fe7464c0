// Package estimator implements the operator cardinality estimator
// contract: a per-operator factory that, given a configuration, yields an
// estimator capable of projecting an output cardinality from a set of
// input cardinalities.
package estimator

import (
	"context"
	"strconv"

	"github.com/flowstage/xplat-exec-core/internal/config"
	"github.com/flowstage/xplat-exec-core/internal/estimate"
)

// Kind tags the shape of an Estimator so a caller (typically the
// optimizer) can introspect it without a type switch or dynamic cast, per
// Design Notes §9 ("Polymorphism").
type Kind string

const (
	KindDefaultSelectivity Kind = "default-selectivity"
	KindCoefficientAware   Kind = "coefficient-aware"
	KindCustom             Kind = "custom"
)

// Estimator produces an output cardinality estimate from a context and a
// slice of input estimates. For unary operators there is exactly one
// input estimate.
type Estimator interface {
	Kind() Kind
	Estimate(ctx context.Context, inputs []estimate.CardinalityEstimate) (estimate.CardinalityEstimate, error)
}

// Operator is the contract consumed from the operator library: every
// operator exposes an optional cardinality estimator for one of its
// outputs.
type Operator interface {
	NumInputs() int
	NumOutputs() int

	// CreateCardinalityEstimator returns the estimator for the given
	// output index, or ok == false if the operator declines to estimate
	// that output (e.g. it has no useful model for it).
	CreateCardinalityEstimator(outputIndex int, cfg config.Properties) (est Estimator, ok bool, err error)
}

// ProgrammerError indicates a contract violation by the caller of an
// Estimator or Operator: a corrupt plan, not a runtime condition the
// caller can recover from. Matching the teacher's own internal-assertion
// panics (execgraph's opcode/operand-count checks), these are raised via
// panic rather than returned.
type ProgrammerError struct {
	Message string
}

func (e *ProgrammerError) Error() string {
	return "programmer error: " + e.Message
}

// validateInputs panics with a ProgrammerError if the number of supplied
// input estimates does not match wantInputs.
func validateInputs(inputs []estimate.CardinalityEstimate, wantInputs int) {
	if len(inputs) != wantInputs {
		panic(&ProgrammerError{Message: "input estimate count mismatch: got " +
			strconv.Itoa(len(inputs)) + ", want " + strconv.Itoa(wantInputs)})
	}
}

// validateOutputIndex panics with a ProgrammerError if outputIndex is out
// of the [0, numOutputs) range.
func validateOutputIndex(outputIndex, numOutputs int) {
	if outputIndex < 0 || outputIndex >= numOutputs {
		panic(&ProgrammerError{Message: "output index " + strconv.Itoa(outputIndex) +
			" out of range [0, " + strconv.Itoa(numOutputs) + ")"})
	}
}
