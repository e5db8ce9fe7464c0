package estimator

import (
	"context"

	"github.com/flowstage/xplat-exec-core/internal/estimate"
)

// CoefficientAwareEstimator models a unary operator whose selectivity is
// driven by a PIE read from a selectivity specification (see
// estimate.ParseSpec), optionally carrying a non-zero Coeff.
//
// When Coeff == 0, the operator's output scales linearly with its input
// on both ends: (lo*sel.Lower, hi*sel.Upper, p*sel.P).
//
// When Coeff != 0, the lower (optimistic) bound keeps scaling linearly,
// but the upper (worst-case) bound is replaced by a quadratic term in the
// input's own upper bound, scaled by Coeff: (hi*Coeff*hi). This models
// operators -- deduplication under heavy hash collisions is the
// motivating example -- whose worst-case output grows with the square of
// input size rather than linearly with it.
type CoefficientAwareEstimator struct {
	Spec estimate.PIE
}

func (CoefficientAwareEstimator) Kind() Kind {
	return KindCoefficientAware
}

func (e CoefficientAwareEstimator) Estimate(_ context.Context, inputs []estimate.CardinalityEstimate) (estimate.CardinalityEstimate, error) {
	validateInputs(inputs, 1)
	in := inputs[0]

	lower := in.Lower * e.Spec.Lower
	var upper float64
	if e.Spec.Coeff == 0 {
		upper = in.Upper * e.Spec.Upper
	} else {
		upper = in.Upper * e.Spec.Coeff * in.Upper
	}

	return estimate.NewCardinality(estimate.PIE{
		Lower: lower,
		Upper: upper,
		P:     in.P * e.Spec.P,
	}), nil
}
