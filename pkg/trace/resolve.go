package trace

import (
	"fmt"

	"resolvis/pkg/model"
)

// ProcessingStep is a fully resolved, immutable node in the reconstructed
// search graph. Steps are created once during graph resolution and may be
// read concurrently afterwards.
type ProcessingStep struct {
	// Parent links back to the step whose successor list names this step.
	// Nil for the first step of a run.
	Parent *ParentLink

	// Solution is the resolver state snapshot this step processed.
	Solution model.Solution

	// Order is the 0-based discovery index within the whole log.
	Order int

	// Successors lists the states this step generated, in log order.
	Successors []Successor

	// Promotions holds the promotions recorded while this step was open,
	// deduplicated, in order of first appearance.
	Promotions []model.Promotion

	// TextStart and TextLen delimit this step's byte range in the source
	// log: [TextStart, TextStart+TextLen).
	TextStart int64
	TextLen   int64

	// Depth is the height of the subtree rooted here, counting this step.
	// A step with no processed successors has depth 1.
	Depth int

	// BranchSize counts this step, the branch sizes of its processed
	// successors, and one for each unprocessed successor.
	BranchSize int
}

// Successor is a resolved successor link: either a reference to the step
// that processed the generated state, or the bare solution when the log
// never shows that state being processed.
type Successor struct {
	// Step is the processed successor, nil when unprocessed.
	Step *ProcessingStep

	// Solution is the generated state. Always set.
	Solution model.Solution

	// Choice is the decision that produced the link, when the log named one.
	Choice model.LinkChoice

	// Forced marks links generated under forced resolution.
	Forced bool
}

// Processed reports whether the log shows this successor being processed.
func (s Successor) Processed() bool { return s.Step != nil }

// ParentLink attaches a step to its parent together with the choice that
// led there.
type ParentLink struct {
	Choice model.LinkChoice
	Parent *ProcessingStep
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	done
)

type parentRef struct {
	parentIdx int
	choice    model.LinkChoice
}

// resolve turns the finalized pass output into the immutable step graph.
//
// Successor references can point forward — a state named before it is
// processed — or at states never processed at all, so this runs in two
// phases. Phase 1 indexes every solution to its discovery index and builds
// the inverse child-to-parent map (the last-discovered parent wins when
// several steps claim the same child). Phase 2 materializes steps with
// memoized post-order recursion guarded against cycles, then fills parent
// pointers in a final sweep once every step exists.
func resolve(source string, parts []*partialStep) ([]*ProcessingStep, error) {
	index := make(map[string]int, len(parts))
	for i, p := range parts {
		index[p.sol.Key()] = i
	}

	parents := make(map[string]parentRef)
	for i, p := range parts {
		for _, ref := range p.successors {
			parents[ref.sol.Key()] = parentRef{parentIdx: i, choice: ref.choice}
		}
	}

	r := &resolver{
		source: source,
		parts:  parts,
		index:  index,
		built:  make([]*ProcessingStep, len(parts)),
		state:  make([]visitState, len(parts)),
	}
	for i := range parts {
		if _, err := r.materialize(i); err != nil {
			return nil, err
		}
	}

	for i, p := range parts {
		if pr, ok := parents[p.sol.Key()]; ok {
			r.built[i].Parent = &ParentLink{Choice: pr.choice, Parent: r.built[pr.parentIdx]}
		}
	}

	return r.built, nil
}

type resolver struct {
	source string
	parts  []*partialStep
	index  map[string]int
	built  []*ProcessingStep
	state  []visitState
}

// materialize builds the step at discovery index i, recursing into
// processed successors first so depth and branch size come out bottom-up.
// Each step is computed at most once; revisiting a step already on the
// recursion path means the log's links loop and the load fails.
func (r *resolver) materialize(i int) (*ProcessingStep, error) {
	switch r.state[i] {
	case done:
		return r.built[i], nil
	case visiting:
		return nil, fmt.Errorf("%s: %w: involving %s", r.source, ErrLinkCycle, r.parts[i].sol.Key())
	}
	r.state[i] = visiting

	p := r.parts[i]
	step := &ProcessingStep{
		Solution:   p.sol,
		Order:      i,
		Promotions: dedupPromotions(p.promotions),
		TextStart:  p.textStart,
		TextLen:    p.textLen,
		BranchSize: 1,
	}

	maxChildDepth := 0
	for _, ref := range p.successors {
		succ := Successor{Solution: ref.sol, Choice: ref.choice, Forced: ref.forced}
		if j, ok := r.index[ref.sol.Key()]; ok {
			child, err := r.materialize(j)
			if err != nil {
				return nil, err
			}
			succ.Step = child
			step.BranchSize += child.BranchSize
			if child.Depth > maxChildDepth {
				maxChildDepth = child.Depth
			}
		} else {
			step.BranchSize++
		}
		step.Successors = append(step.Successors, succ)
	}
	step.Depth = 1 + maxChildDepth

	r.built[i] = step
	r.state[i] = done
	return step, nil
}

// dedupPromotions keeps the first occurrence of each promotion.
func dedupPromotions(ps []model.Promotion) []model.Promotion {
	if len(ps) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ps))
	var out []model.Promotion
	for _, p := range ps {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		out = append(out, p)
	}
	return out
}
