// Package model defines the value types of the resolver search domain:
// packages, versions, dependencies, choices, promotions, and solution
// snapshots. All types are immutable after construction and compare by
// value, never by pointer identity.
//
// Value equality is implemented through canonical string keys. Every type
// has a Key method whose result doubles as the type's textual encoding, so
// two values are equal exactly when their keys are equal. Solutions in
// particular are cross-referenced by key throughout the trace packages.
//
// The textual encodings (also the grammar accepted by the parsers in this
// package) are:
//
//	version:   NAME VER
//	dep:       VERSION -> {VERSION, VERSION, ...}
//	choice:    Install(VERSION)
//	           Install(VERSION via DEP)
//	           Install(VERSION via DEP [dep source])
//	           Break(DEP)
//	solution:  <CHOICE, CHOICE, ...> or <CHOICE, ...>;[DEP, DEP, ...]
//
// Names and version strings may not contain whitespace or the reserved
// characters used by the grammar itself.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// Package identifies a software package by name.
type Package string

// Version is a package at a specific version string.
type Version struct {
	Pkg    Package
	Number string
}

// Key returns the canonical encoding, e.g. "apt 0.8.25".
func (v Version) Key() string { return fmt.Sprintf("%s %s", v.Pkg, v.Number) }

func (v Version) String() string { return v.Key() }

// Dep is a dependency: a source version together with the candidate
// versions that can solve it. The solver list keeps its declared order.
type Dep struct {
	Source  Version
	Solvers []Version
}

// Key returns the canonical encoding, e.g. "apt 0.8 -> {libc6 2.11, libc6 2.13}".
func (d Dep) Key() string {
	solvers := make([]string, len(d.Solvers))
	for i, s := range d.Solvers {
		solvers[i] = s.Key()
	}
	return fmt.Sprintf("%s -> {%s}", d.Source.Key(), strings.Join(solvers, ", "))
}

func (d Dep) String() string { return d.Key() }

// Equal reports whether two deps have the same source and solver list.
func (d Dep) Equal(o Dep) bool { return d.Key() == o.Key() }

// ChoiceKind distinguishes the two decisions the resolver can record.
type ChoiceKind int

const (
	// ChoiceInstall records the installation of a specific version.
	ChoiceInstall ChoiceKind = iota
	// ChoiceBreak records accepting a soft dependency as broken.
	ChoiceBreak
)

// Choice is one decision made during the search: install a version
// (optionally attributed to the dep that triggered it) or leave a soft
// dependency broken.
type Choice struct {
	Kind ChoiceKind

	// Version is the install target. Valid only for ChoiceInstall.
	Version Version
	// Reason is the dep that triggered the install, when the log named one.
	Reason *Dep
	// FromDepSource records whether the install came from the dependency
	// source rather than ordinary candidate enumeration. Nil when the log
	// did not say.
	FromDepSource *bool

	// Broken is the soft dep left unresolved. Valid only for ChoiceBreak.
	Broken Dep
}

// InstallVersion returns an install choice with no recorded trigger.
func InstallVersion(v Version) Choice {
	return Choice{Kind: ChoiceInstall, Version: v}
}

// InstallVersionFor returns an install choice attributed to reason.
func InstallVersionFor(v Version, reason Dep, fromDepSource bool) Choice {
	return Choice{Kind: ChoiceInstall, Version: v, Reason: &reason, FromDepSource: &fromDepSource}
}

// BreakSoftDep returns a choice accepting dep as broken.
func BreakSoftDep(dep Dep) Choice {
	return Choice{Kind: ChoiceBreak, Broken: dep}
}

// Key returns the canonical encoding, e.g. "Install(apt 0.8.25)" or
// "Break(apt 0.8 -> {libc6 2.11})".
func (c Choice) Key() string {
	if c.Kind == ChoiceBreak {
		return fmt.Sprintf("Break(%s)", c.Broken.Key())
	}
	var b strings.Builder
	b.WriteString("Install(")
	b.WriteString(c.Version.Key())
	if c.Reason != nil {
		b.WriteString(" via ")
		b.WriteString(c.Reason.Key())
		if c.FromDepSource != nil && *c.FromDepSource {
			b.WriteString(" [dep source]")
		}
	}
	b.WriteString(")")
	return b.String()
}

func (c Choice) String() string { return c.Key() }

// Equal reports whether two choices are the same decision.
func (c Choice) Equal(o Choice) bool { return c.Key() == o.Key() }

// slot returns the solution-map key this choice occupies: the dep it
// resolves when known, otherwise the installed version itself.
func (c Choice) slot() string {
	switch {
	case c.Kind == ChoiceBreak:
		return c.Broken.Key()
	case c.Reason != nil:
		return c.Reason.Key()
	default:
		return "install " + c.Version.Key()
	}
}

// LinkChoice is the choice attached to a successor link. The log does not
// always carry enough context to name one, so a link choice is either a
// known Choice or Unknown.
type LinkChoice struct {
	known  bool
	choice Choice
}

// Unknown is the zero link choice: no information about the decision that
// produced the link.
var Unknown = LinkChoice{}

// Known wraps a concrete choice as a link choice.
func Known(c Choice) LinkChoice { return LinkChoice{known: true, choice: c} }

// Choice returns the underlying choice and whether it is known.
func (lc LinkChoice) Choice() (Choice, bool) { return lc.choice, lc.known }

// IsKnown reports whether the link carries a concrete choice.
func (lc LinkChoice) IsKnown() bool { return lc.known }

// Key returns the choice's key, or "?" for Unknown.
func (lc LinkChoice) Key() string {
	if !lc.known {
		return "?"
	}
	return lc.choice.Key()
}

func (lc LinkChoice) String() string { return lc.Key() }

// Promotion is an opaque derived-conflict record lifted verbatim from the
// log text. Promotions compare by text and are deduplicated per step.
type Promotion struct {
	Text string
}

// Key returns the promotion text.
func (p Promotion) Key() string { return p.Text }

func (p Promotion) String() string { return p.Text }

// Solution is a snapshot of resolver state: the choices made so far, keyed
// by the dep each choice resolves, plus the set of deps currently broken.
//
// Solutions are the sole identity used to cross-reference search states.
// Two solutions with equal choice sets and equal broken sets are the same
// key regardless of where in the log they were parsed, so equality is by
// canonical key, with choices and broken deps sorted.
type Solution struct {
	choices map[string]Choice
	broken  map[string]Dep
	key     string
}

// NewSolution builds a solution from its choices and broken deps. Later
// choices occupying the same slot replace earlier ones.
func NewSolution(choices []Choice, broken []Dep) Solution {
	s := Solution{
		choices: make(map[string]Choice, len(choices)),
		broken:  make(map[string]Dep, len(broken)),
	}
	for _, c := range choices {
		s.choices[c.slot()] = c
	}
	for _, d := range broken {
		s.broken[d.Key()] = d
	}
	s.key = s.canonical()
	return s
}

// EmptySolution returns the solution with no choices and no broken deps,
// the shape that marks the root of a search run.
func EmptySolution() Solution { return NewSolution(nil, nil) }

func (s Solution) canonical() string {
	keys := make([]string, 0, len(s.choices))
	for _, c := range s.choices {
		keys = append(keys, c.Key())
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(strings.Join(keys, ", "))
	b.WriteString(">")

	if len(s.broken) > 0 {
		deps := make([]string, 0, len(s.broken))
		for k := range s.broken {
			deps = append(deps, k)
		}
		slices.Sort(deps)
		b.WriteString(";[")
		b.WriteString(strings.Join(deps, ", "))
		b.WriteString("]")
	}
	return b.String()
}

// Key returns the canonical encoding used as the solution's identity.
func (s Solution) Key() string {
	if s.key == "" {
		return "<>"
	}
	return s.key
}

func (s Solution) String() string { return s.Key() }

// Equal reports whether two solutions are the same snapshot.
func (s Solution) Equal(o Solution) bool { return s.Key() == o.Key() }

// Empty reports whether no choices have been made. Empty solutions mark
// the start of an independent search run.
func (s Solution) Empty() bool { return len(s.choices) == 0 }

// BrokenEmpty reports whether the broken-dep set is empty.
func (s Solution) BrokenEmpty() bool { return len(s.broken) == 0 }

// Len returns the number of choices made.
func (s Solution) Len() int { return len(s.choices) }

// Choices returns the choices in canonical (sorted key) order.
func (s Solution) Choices() []Choice {
	out := make([]Choice, 0, len(s.choices))
	for _, c := range s.choices {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Choice) int { return strings.Compare(a.Key(), b.Key()) })
	return out
}

// Broken returns the broken deps in canonical (sorted key) order.
func (s Solution) Broken() []Dep {
	out := make([]Dep, 0, len(s.broken))
	for _, d := range s.broken {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Dep) int { return strings.Compare(a.Key(), b.Key()) })
	return out
}
