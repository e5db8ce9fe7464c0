package estimator

import (
	"context"
	"math"

	"github.com/flowstage/xplat-exec-core/internal/estimate"
)

// DefaultBaselineSelectivity and DefaultBaselineConfidence are the
// standard deduplication baseline UnaryOperator falls back to when no
// selectivity specification is configured for an operator instance.
const (
	DefaultBaselineSelectivity = 0.7
	DefaultBaselineConfidence  = 0.7
)

// DefaultSelectivityEstimator models a unary operator whose output
// cardinality is a fixed fraction of its input, with a fixed confidence
// discount. The standard baseline for deduplication is Selectivity = 0.7,
// Confidence = 0.7.
type DefaultSelectivityEstimator struct {
	Selectivity float64
	Confidence  float64
}

func (DefaultSelectivityEstimator) Kind() Kind {
	return KindDefaultSelectivity
}

// Estimate computes (floor(lo*s), floor(hi*s), c*inputP) for the single
// input estimate. It panics with a ProgrammerError if it is not given
// exactly one input.
func (e DefaultSelectivityEstimator) Estimate(_ context.Context, inputs []estimate.CardinalityEstimate) (estimate.CardinalityEstimate, error) {
	validateInputs(inputs, 1)
	in := inputs[0]
	return estimate.NewCardinality(estimate.PIE{
		Lower: math.Floor(in.Lower * e.Selectivity),
		Upper: math.Floor(in.Upper * e.Selectivity),
		P:     e.Confidence * in.P,
	}), nil
}
