package trace

import (
	"errors"
	"strings"

	"resolvis/pkg/model"
)

// lineHandler consumes the text after a recognized prefix and mutates the
// builder accordingly.
type lineHandler func(b *builder, rest string) error

type linePattern struct {
	prefix string
	handle lineHandler
}

// lineTable maps resolver log lines to events. It is consulted top to
// bottom and the first matching prefix wins; the order is semantically
// significant because a line could textually satisfy more than one
// pattern. Lines matching no pattern are skipped — the resolver freely
// interleaves unrelated output with the lines we care about.
var lineTable = []linePattern{
	{prefix: "Processing ", handle: handleProcessing},
	{prefix: "Inserting new promotion: ", handle: handlePromotion},
	{prefix: "Generating successors for ", handle: handleSuccessorsFor(false)},
	{prefix: "Forced resolution of ", handle: handleSuccessorsFor(true)},
	{prefix: "Trying to resolve ", handle: handleTryResolve},
	{prefix: "Trying to leave ", handle: handleTryUnresolved},
	{prefix: "Generated successor: ", handle: handleGeneratedSuccessor},
	{prefix: "Done generating successors.", handle: handleSuccessorsDone},
}

// classify finds the first matching pattern for a line. It returns the
// handler, the text after the prefix, and the prefix length (for column
// arithmetic in error reporting).
func classify(line string) (lineHandler, string, int, bool) {
	for _, p := range lineTable {
		if strings.HasPrefix(line, p.prefix) {
			return p.handle, line[len(p.prefix):], len(p.prefix), true
		}
	}
	return nil, "", 0, false
}

func handleProcessing(b *builder, rest string) error {
	sol, err := model.ParseSolution(rest)
	if err != nil {
		return err
	}
	b.beginStep(sol)
	return nil
}

func handlePromotion(b *builder, rest string) error {
	p, err := model.ParsePromotion(rest)
	if err != nil {
		return err
	}
	b.addPromotion(p)
	return nil
}

func handleSuccessorsFor(forced bool) lineHandler {
	return func(b *builder, rest string) error {
		dep, err := model.ParseDep(strings.TrimSpace(rest))
		if err != nil {
			return err
		}
		b.beginSuccessors(forced, dep)
		return nil
	}
}

const (
	byInstalling  = " by installing "
	fromDepSource = " from the dependency source"
	unresolved    = " unresolved"
)

func handleTryResolve(b *builder, rest string) error {
	dep, rem, err := model.ParseDepPrefix(rest)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(rem, byInstalling) {
		return syntaxAt(rest, rem, "expected \"by installing\" after dep")
	}
	verText := rem[len(byInstalling):]
	fromSrc := false
	if strings.HasSuffix(verText, fromDepSource) {
		fromSrc = true
		verText = strings.TrimSuffix(verText, fromDepSource)
	}
	ver, err := model.ParseVersion(verText)
	if err != nil {
		return shiftCol(err, len(rest)-len(verText))
	}
	b.tryResolution(dep, ver, fromSrc)
	return nil
}

func handleTryUnresolved(b *builder, rest string) error {
	dep, rem, err := model.ParseDepPrefix(rest)
	if err != nil {
		return err
	}
	if strings.TrimRight(rem, " ") != unresolved {
		return syntaxAt(rest, rem, "expected \"unresolved\" after dep")
	}
	b.tryUnresolved(dep)
	return nil
}

func handleGeneratedSuccessor(b *builder, rest string) error {
	sol, err := model.ParseSolution(rest)
	if err != nil {
		return err
	}
	return b.addSuccessor(sol)
}

func handleSuccessorsDone(b *builder, rest string) error {
	b.endSuccessors()
	return nil
}

// syntaxAt builds a syntax error pointing at where rem begins within rest.
func syntaxAt(rest, rem, msg string) error {
	return &model.SyntaxError{Col: len(rest) - len(rem) + 1, Msg: msg}
}

// shiftCol moves a syntax error's column right by delta, used when a field
// is parsed from a substring of the handler's text.
func shiftCol(err error, delta int) error {
	var se *model.SyntaxError
	if errors.As(err, &se) {
		return &model.SyntaxError{Col: se.Col + delta, Msg: se.Msg}
	}
	return err
}
