package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfSuccessor is returned when a generated-successor line names the
	// solution of the state currently being processed while that solution
	// still has broken deps. A state cannot be its own successor.
	ErrSelfSuccessor = errors.New("a state cannot be its own successor")

	// ErrLinkCycle is returned when successor links form a cycle, which makes
	// depth and branch size ill-founded. Well-formed logs never contain one.
	ErrLinkCycle = errors.New("successor links form a cycle")
)

// ParseError is a fatal load failure positioned in the source log.
// Col is 1-based within the line and zero when no column applies.
type ParseError struct {
	Source string
	Line   int
	Col    int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Source, e.Line, e.Col, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
