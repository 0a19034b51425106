package trace

// Run is one independent top-level search: a maximal sequence of steps, in
// discovery order, starting from a zero-choice root state.
type Run []*ProcessingStep

// Root returns the first step of the run.
func (r Run) Root() *ProcessingStep {
	if len(r) == 0 {
		return nil
	}
	return r[0]
}

// MaxDepth returns the largest subtree depth among the run's steps.
func (r Run) MaxDepth() int {
	max := 0
	for _, s := range r {
		if s.Depth > max {
			max = s.Depth
		}
	}
	return max
}

// splitRuns partitions the materialized step sequence into runs. A state
// with an empty choice set starts a new run; every following state belongs
// to it until the next such state. A log that opens mid-search (first step
// already carrying choices) still opens a run rather than being dropped.
func splitRuns(steps []*ProcessingStep) []Run {
	var runs []Run
	for _, s := range steps {
		if s.Solution.Empty() || len(runs) == 0 {
			runs = append(runs, Run{s})
			continue
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], s)
	}
	return runs
}
