package execstate

// Snapshot is the resumable record a Driver hands back to a caller that
// pauses at a breakpoint: the observed State plus which stages have
// finished executing and which are parked waiting on a breakpoint.
// A Snapshot is a read-only report: it cannot be loaded into a Driver.
// Execution resumes by calling ExecuteUntilBreakpoint again on the same
// Driver, which fast-forwards already-completed stages rather than
// re-executing them.
type Snapshot struct {
	State     State
	Completed []int
	Suspended []int
}

// IsComplete reports whether every stage named in allStages appears in
// the snapshot's Completed set.
func (s Snapshot) IsComplete(allStages []int) bool {
	done := make(map[int]struct{}, len(s.Completed))
	for _, id := range s.Completed {
		done[id] = struct{}{}
	}
	for _, id := range allStages {
		if _, ok := done[id]; !ok {
			return false
		}
	}
	return true
}
