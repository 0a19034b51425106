package model

import "testing"

func dep(src Version, solvers ...Version) Dep {
	return Dep{Source: src, Solvers: solvers}
}

func TestChoiceKey(t *testing.T) {
	apt := Version{Pkg: "apt", Number: "0.8"}
	libc := Version{Pkg: "libc6", Number: "2.11"}
	d := dep(apt, libc)

	tests := []struct {
		name   string
		choice Choice
		want   string
	}{
		{name: "Install", choice: InstallVersion(apt), want: "Install(apt 0.8)"},
		{
			name:   "InstallWithReason",
			choice: InstallVersionFor(libc, d, false),
			want:   "Install(libc6 2.11 via apt 0.8 -> {libc6 2.11})",
		},
		{
			name:   "InstallFromDepSource",
			choice: InstallVersionFor(libc, d, true),
			want:   "Install(libc6 2.11 via apt 0.8 -> {libc6 2.11} [dep source])",
		},
		{name: "Break", choice: BreakSoftDep(d), want: "Break(apt 0.8 -> {libc6 2.11})"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.choice.Key(); got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSolutionEquality(t *testing.T) {
	apt := Version{Pkg: "apt", Number: "0.8"}
	zlib := Version{Pkg: "zlib", Number: "1.2"}

	a := NewSolution([]Choice{InstallVersion(apt), InstallVersion(zlib)}, nil)
	b := NewSolution([]Choice{InstallVersion(zlib), InstallVersion(apt)}, nil)
	if !a.Equal(b) {
		t.Errorf("choice order changed identity: %q != %q", a.Key(), b.Key())
	}

	c := NewSolution([]Choice{InstallVersion(apt)}, nil)
	if a.Equal(c) {
		t.Error("different choice sets compare equal")
	}

	d1 := dep(apt, zlib)
	withBroken := NewSolution([]Choice{InstallVersion(apt)}, []Dep{d1})
	if c.Equal(withBroken) {
		t.Error("broken set ignored in identity")
	}
}

func TestSolutionSlotReplacement(t *testing.T) {
	apt := Version{Pkg: "apt", Number: "0.8"}
	libcOld := Version{Pkg: "libc6", Number: "2.11"}
	libcNew := Version{Pkg: "libc6", Number: "2.13"}
	d := dep(apt, libcOld, libcNew)

	// Two choices resolving the same dep occupy one slot; the later wins.
	s := NewSolution([]Choice{
		InstallVersionFor(libcOld, d, false),
		InstallVersionFor(libcNew, d, false),
	}, nil)
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if got := s.Choices()[0].Version; got != libcNew {
		t.Errorf("kept choice = %v, want %v", got, libcNew)
	}

	// Reasonless installs of different versions occupy distinct slots.
	s2 := NewSolution([]Choice{InstallVersion(libcOld), InstallVersion(libcNew)}, nil)
	if s2.Len() != 2 {
		t.Errorf("len = %d, want 2", s2.Len())
	}
}

func TestSolutionZeroValue(t *testing.T) {
	var s Solution
	if got := s.Key(); got != "<>" {
		t.Errorf("zero key = %q, want <>", got)
	}
	if !s.Empty() || !s.BrokenEmpty() {
		t.Error("zero solution not empty")
	}
	if !s.Equal(EmptySolution()) {
		t.Error("zero solution != EmptySolution()")
	}
}

func TestLinkChoice(t *testing.T) {
	if Unknown.IsKnown() {
		t.Error("Unknown.IsKnown() = true")
	}
	if got := Unknown.Key(); got != "?" {
		t.Errorf("Unknown key = %q, want ?", got)
	}

	c := InstallVersion(Version{Pkg: "apt", Number: "0.8"})
	lc := Known(c)
	if !lc.IsKnown() {
		t.Error("Known(...).IsKnown() = false")
	}
	got, ok := lc.Choice()
	if !ok || !got.Equal(c) {
		t.Errorf("Choice() = %v, %v", got, ok)
	}
	if lc.Key() != c.Key() {
		t.Errorf("key = %q, want %q", lc.Key(), c.Key())
	}
}
