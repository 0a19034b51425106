package trace

import (
	"fmt"

	"resolvis/pkg/model"
)

// successorRef is a successor observation before cross-referencing: the
// named solution may belong to a step parsed later, or to no step at all.
type successorRef struct {
	sol    model.Solution
	choice model.LinkChoice
	forced bool
}

// partialStep is a search state while its log text is still being read.
// It stays open until the next "Processing" line or end of file fixes its
// byte length.
type partialStep struct {
	sol        model.Solution
	successors []successorRef
	promotions []model.Promotion
	textStart  int64
	textLen    int64 // -1 while open
}

// genContext is the open "generating successors" context. Nesting is not
// supported: a new context simply replaces the old one.
type genContext struct {
	forced bool
	dep    model.Dep
}

// builder accumulates partial steps over a single forward pass of the log.
// It owns all parse state exclusively; the driver in load.go feeds it one
// classified line at a time and sets lineStart before each dispatch.
type builder struct {
	steps     []*partialStep
	gen       *genContext
	lastTrial model.LinkChoice
	lineStart int64
}

func newBuilder() *builder {
	return &builder{lastTrial: model.Unknown}
}

// current returns the most recently opened step, or nil before the first
// "Processing" line.
func (b *builder) current() *partialStep {
	if len(b.steps) == 0 {
		return nil
	}
	return b.steps[len(b.steps)-1]
}

// beginStep closes the open step at the current line start and opens a new
// one for sol. The generating context and the last trial choice reset:
// they belong to the state that just ended.
func (b *builder) beginStep(sol model.Solution) {
	if cur := b.current(); cur != nil {
		cur.textLen = b.lineStart - cur.textStart
	}
	b.steps = append(b.steps, &partialStep{
		sol:       sol,
		textStart: b.lineStart,
		textLen:   -1,
	})
	b.gen = nil
	b.lastTrial = model.Unknown
}

// addPromotion attaches a promotion to the open step. Promotions observed
// before any step are dropped; the resolver emits them in irregular spots
// and the log tolerates it.
func (b *builder) addPromotion(p model.Promotion) {
	if cur := b.current(); cur != nil {
		cur.promotions = append(cur.promotions, p)
	}
}

func (b *builder) beginSuccessors(forced bool, dep model.Dep) {
	b.gen = &genContext{forced: forced, dep: dep}
}

func (b *builder) endSuccessors() {
	b.gen = nil
	b.lastTrial = model.Unknown
}

func (b *builder) tryResolution(dep model.Dep, ver model.Version, fromDepSource bool) {
	b.lastTrial = model.Known(model.InstallVersionFor(ver, dep, fromDepSource))
}

func (b *builder) tryUnresolved(dep model.Dep) {
	b.lastTrial = model.Known(model.BreakSoftDep(dep))
}

// addSuccessor records a successor observation on the open step, tagged
// with the last trial choice and the forced flag of the open generating
// context. A successor equal to the step's own solution is a synthetic
// artifact when that solution has no broken deps and is dropped; with
// broken deps remaining it is a structural error.
func (b *builder) addSuccessor(sol model.Solution) error {
	cur := b.current()
	if cur == nil {
		return nil
	}
	if sol.Equal(cur.sol) {
		if cur.sol.BrokenEmpty() {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrSelfSuccessor, sol.Key())
	}
	forced := b.gen != nil && b.gen.forced
	cur.successors = append(cur.successors, successorRef{
		sol:    sol,
		choice: b.lastTrial,
		forced: forced,
	})
	return nil
}

// finish closes the last open step against the end of the log.
func (b *builder) finish(totalBytes int64) {
	if cur := b.current(); cur != nil && cur.textLen < 0 {
		cur.textLen = totalBytes - cur.textStart
	}
}
