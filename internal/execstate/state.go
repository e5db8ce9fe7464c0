// Package execstate models the accumulated observations a scheduler pass
// threads through stage executions: channel cardinalities, per-stage
// timings, and arbitrary platform-defined measurements. It deliberately
// has no dependency on planmodel -- stages are identified here by their
// raw integer ID rather than planmodel.StageID, so that planmodel can
// import execstate (for the Executor contract) without creating a cycle.
package execstate

import "fmt"

// State is an immutable-by-convention bag of observations accumulated
// during a scheduler pass. Callers obtain new State values from Merge
// rather than mutating one in place.
type State struct {
	channelCardinality map[string]float64
	stageTiming        map[int]float64
	measurements       map[string]any
}

// New returns an empty State.
func New() State {
	return State{}
}

// WithChannelCardinality returns a State with the given channel's observed
// cardinality set, leaving all other observations unchanged.
func (s State) WithChannelCardinality(channel string, cardinality float64) State {
	out := s.clone()
	if out.channelCardinality == nil {
		out.channelCardinality = make(map[string]float64, 1)
	}
	out.channelCardinality[channel] = cardinality
	return out
}

// ChannelCardinality returns the observed cardinality of channel, if any.
func (s State) ChannelCardinality(channel string) (float64, bool) {
	v, ok := s.channelCardinality[channel]
	return v, ok
}

// WithStageTiming returns a State with the given stage's observed
// duration (in milliseconds) set.
func (s State) WithStageTiming(stageID int, millis float64) State {
	out := s.clone()
	if out.stageTiming == nil {
		out.stageTiming = make(map[int]float64, 1)
	}
	out.stageTiming[stageID] = millis
	return out
}

// StageTiming returns the observed duration of stageID, if any.
func (s State) StageTiming(stageID int) (float64, bool) {
	v, ok := s.stageTiming[stageID]
	return v, ok
}

// WithMeasurement returns a State with an arbitrary platform-defined
// measurement recorded under key. Platforms use this for observations
// the core model has no built-in representation for.
func (s State) WithMeasurement(key string, value any) State {
	out := s.clone()
	if out.measurements == nil {
		out.measurements = make(map[string]any, 1)
	}
	out.measurements[key] = value
	return out
}

// Measurement returns the platform-defined measurement recorded under key.
func (s State) Measurement(key string) (any, bool) {
	v, ok := s.measurements[key]
	return v, ok
}

func (s State) clone() State {
	out := State{
		channelCardinality: make(map[string]float64, len(s.channelCardinality)),
		stageTiming:        make(map[int]float64, len(s.stageTiming)),
		measurements:       make(map[string]any, len(s.measurements)),
	}
	for k, v := range s.channelCardinality {
		out.channelCardinality[k] = v
	}
	for k, v := range s.stageTiming {
		out.stageTiming[k] = v
	}
	for k, v := range s.measurements {
		out.measurements[k] = v
	}
	return out
}

// Merge folds next into s, returning the union of both states' keys.
// Where both states observe the same key, next wins: Merge models a
// scheduler pass folding a freshly-executed stage's output into the
// state accumulated so far.
func Merge(s, next State) State {
	out := s.clone()
	for k, v := range next.channelCardinality {
		if out.channelCardinality == nil {
			out.channelCardinality = make(map[string]float64, len(next.channelCardinality))
		}
		out.channelCardinality[k] = v
	}
	for k, v := range next.stageTiming {
		if out.stageTiming == nil {
			out.stageTiming = make(map[int]float64, len(next.stageTiming))
		}
		out.stageTiming[k] = v
	}
	for k, v := range next.measurements {
		if out.measurements == nil {
			out.measurements = make(map[string]any, len(next.measurements))
		}
		out.measurements[k] = v
	}
	return out
}

func (s State) String() string {
	return fmt.Sprintf("state{channels=%d, stages=%d, measurements=%d}",
		len(s.channelCardinality), len(s.stageTiming), len(s.measurements))
}
