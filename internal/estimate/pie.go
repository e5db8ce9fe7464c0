// Package estimate implements the probabilistic interval estimate (PIE)
// algebra: immutable value objects for uncertain numeric quantities, plus
// the arithmetic and comparison operations the scheduler and optimizer
// need to combine and rank them.
package estimate

import (
	"fmt"
	"math"
)

// PIE is a probabilistic interval estimate: a claim that the true value of
// some quantity lies in [Lower, Upper] with subjective probability P.
//
// Lower and Upper are float64 rather than an integer type because the
// same algebra is shared by two different domains: selectivity
// specifications express Lower/Upper as fractional ratios (e.g. 0.3),
// while CardinalityEstimate and TimeEstimate use it to hold whole-number
// counts and millisecond durations. Both fit exactly in a float64 over
// the ranges this core deals with.
//
// PIE is an immutable value type. Every operation below returns a new PIE
// rather than mutating the receiver.
type PIE struct {
	Lower, Upper float64
	P            float64

	// IsOverride marks that this estimate should win when merging with
	// another estimate for the same quantity, regardless of which one
	// would otherwise be preferred.
	IsOverride bool

	// KeyString and Coeff are only meaningful for estimates built from a
	// selectivity specification (see ParseSpec); they default to the
	// empty string and zero for estimates built directly through
	// arithmetic.
	KeyString string
	Coeff     float64
}

// New builds a PIE with the consolidated defaults described in Design
// Notes §9: Coeff = 0, KeyString = "", IsOverride = false. It does not
// validate Lower <= Upper or P in [0, 1]; callers constructing estimates
// from untrusted input should go through ParseSpec instead.
func New(lower, upper float64, p float64) PIE {
	return PIE{Lower: lower, Upper: upper, P: p}
}

// Exact returns the PIE representing a value known with certainty: (v, v, 1).
func Exact(v float64) PIE {
	return PIE{Lower: v, Upper: v, P: 1}
}

// Plus combines two independent estimates. The resulting interval is the
// sum of the two intervals; the resulting probability is the minimum of
// the two inputs, because a sum is only as trustworthy as its weakest term.
func Plus(a, b PIE) PIE {
	return PIE{
		Lower: a.Lower + b.Lower,
		Upper: a.Upper + b.Upper,
		P:     math.Min(a.P, b.P),
	}
}

// PlusScalar shifts both endpoints of a by k, leaving P unchanged.
func PlusScalar(a PIE, k float64) PIE {
	return PIE{Lower: a.Lower + k, Upper: a.Upper + k, P: a.P}
}

// Times scales both endpoints of a by scalar, rounding half-up, leaving P
// unchanged. Times(a, 1) returns a unchanged (an object-identity-free
// optimization: no rounding error can be introduced by a no-op scale).
func Times(a PIE, scalar float64) PIE {
	if scalar == 1 {
		return a
	}
	return PIE{
		Lower:      roundHalfUp(a.Lower * scalar),
		Upper:      roundHalfUp(a.Upper * scalar),
		P:          a.P,
		IsOverride: a.IsOverride,
		KeyString:  a.KeyString,
		Coeff:      a.Coeff,
	}
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// IsExactly reports whether a represents the single value v with certainty.
func (a PIE) IsExactly(v float64) bool {
	return a.P == 1 && a.Lower == v && a.Upper == v
}

// Equal reports structural equality over (Lower, Upper, P). IsOverride,
// KeyString, and Coeff are metadata about provenance, not part of the
// numeric identity of the estimate, so they are excluded.
func (a PIE) Equal(b PIE) bool {
	return a.Lower == b.Lower && a.Upper == b.Upper && a.P == b.P
}

// EqualWithinDelta reports whether a and b agree on (Lower, Upper, P)
// within the given per-field tolerances.
func (a PIE) EqualWithinDelta(b PIE, lowerDelta, upperDelta, pDelta float64) bool {
	return math.Abs(a.Lower-b.Lower) <= lowerDelta &&
		math.Abs(a.Upper-b.Upper) <= upperDelta &&
		math.Abs(a.P-b.P) <= pDelta
}

// Average returns (Lower+Upper)/2.
func (a PIE) Average() float64 {
	return (a.Lower + a.Upper) / 2
}

// GeometricMean returns round(sqrt(Lower*Upper)).
func (a PIE) GeometricMean() float64 {
	return roundHalfUp(math.Sqrt(a.Lower * a.Upper))
}

// String renders the generic interval form used in diagnostics:
// "(lo..hi ~ pp.p%)".
func (a PIE) String() string {
	return fmt.Sprintf("(%s..%s ~ %.1f%%)", trimTrailingZeros(a.Lower), trimTrailingZeros(a.Upper), a.P*100)
}

func trimTrailingZeros(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// Comparator is a total preorder over estimates suitable for ranking
// alternative plans by expected value, used by the optimizer.
//
// Any estimate with P == 0 is treated as strictly worse ("greater", in
// the usual less-is-better comparator convention) than any estimate with
// P > 0, because a zero-confidence estimate carries no information.
// Otherwise estimates are compared by geometric mean. Ties -- including
// between two P == 0 estimates -- return 0, leaving stability to the
// caller, which keeps this a valid (if not strict) total preorder.
func Comparator(a, b PIE) int {
	aZero, bZero := a.P == 0, b.P == 0
	switch {
	case aZero && bZero:
		return 0
	case aZero:
		return 1
	case bZero:
		return -1
	}
	aMean, bMean := a.GeometricMean(), b.GeometricMean()
	switch {
	case aMean < bMean:
		return -1
	case aMean > bMean:
		return 1
	default:
		return 0
	}
}
