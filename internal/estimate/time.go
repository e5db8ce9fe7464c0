package estimate

import "fmt"

// TimeEstimate is a PIE specialization over the integer domain of
// milliseconds, used both for pre-execution plan costing and for
// recording the actual elapsed time of a stage once it has run.
type TimeEstimate struct {
	PIE
}

// ZeroTime is the degenerate "instantaneous" estimate: (0, 0, 1).
var ZeroTime = TimeEstimate{Exact(0)}

// MinimumTime is the smallest non-zero time estimate supported: (1, 1, 1).
// Executors that measure elapsed time at millisecond granularity should
// round up to this rather than report zero for genuinely non-zero work.
var MinimumTime = TimeEstimate{Exact(1)}

// NewTime wraps a PIE as a time estimate. Callers are responsible for the
// estimate's unit being milliseconds.
func NewTime(p PIE) TimeEstimate {
	return TimeEstimate{p}
}

// String renders the duration-specific diagnostic form:
// "(lowerDuration .. upperDuration, p=xx.x%)".
func (t TimeEstimate) String() string {
	return fmt.Sprintf("(%s .. %s, p=%.1f%%)", formatMillis(t.Lower), formatMillis(t.Upper), t.P*100)
}

func formatMillis(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", int64(ms))
	}
	return fmt.Sprintf("%.3fs", ms/1000)
}
