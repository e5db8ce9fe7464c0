package estimator

import (
	"github.com/flowstage/xplat-exec-core/internal/config"
	"github.com/flowstage/xplat-exec-core/internal/estimate"
)

// UnaryOperator is a concrete Operator for the common single-input,
// single-output shape described in spec §4.2 (e.g. a deduplication or
// filter predicate): its only configuration is the key a selectivity
// specification is read from. When SpecKey is absent from cfg, it falls
// back to the fixed deduplication baseline (DefaultSelectivityEstimator)
// rather than declining to estimate at all.
type UnaryOperator struct {
	SpecKey string
}

func (UnaryOperator) NumInputs() int  { return 1 }
func (UnaryOperator) NumOutputs() int { return 1 }

// CreateCardinalityEstimator returns a CoefficientAwareEstimator sourced
// from the configured selectivity specification, or the deduplication
// baseline if none is configured. outputIndex must be 0; any other value
// is a caller contract violation (see validateOutputIndex).
func (o UnaryOperator) CreateCardinalityEstimator(outputIndex int, cfg config.Properties) (Estimator, bool, error) {
	validateOutputIndex(outputIndex, o.NumOutputs())

	pie, ok, err := estimate.LoadSelectivity(cfg.GetOptionalStringProperty, o.SpecKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return DefaultSelectivityEstimator{
			Selectivity: DefaultBaselineSelectivity,
			Confidence:  DefaultBaselineConfidence,
		}, true, nil
	}
	return CoefficientAwareEstimator{Spec: pie}, true, nil
}
