package model

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantCol int
	}{
		{name: "Simple", input: "apt 0.8.25", want: "apt 0.8.25"},
		{name: "ExtraSpaces", input: "apt   0.8.25", want: "apt 0.8.25"},
		{name: "TrailingSpace", input: "apt 0.8.25  ", want: "apt 0.8.25"},
		{name: "EpochVersion", input: "dpkg 1:1.16.0", want: "dpkg 1:1.16.0"},
		{name: "MissingNumber", input: "apt", wantCol: 4},
		{name: "Empty", input: "", wantCol: 1},
		{name: "ReservedInName", input: "a<b 1.0", wantCol: 2},
		{name: "TrailingText", input: "apt 0.8 extra", wantCol: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.wantCol > 0 {
				var se *SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("ParseVersion(%q) = %v, want syntax error", tt.input, err)
				}
				if se.Col != tt.wantCol {
					t.Errorf("col = %d, want %d", se.Col, tt.wantCol)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.input, err)
			}
			if got := v.Key(); got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDep(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantSolvers int
		wantCol     int
	}{
		{
			name:        "SingleSolver",
			input:       "apt 0.8 -> {libc6 2.11}",
			want:        "apt 0.8 -> {libc6 2.11}",
			wantSolvers: 1,
		},
		{
			name:        "MultipleSolvers",
			input:       "apt 0.8 -> {libc6 2.11, libc6 2.13}",
			want:        "apt 0.8 -> {libc6 2.11, libc6 2.13}",
			wantSolvers: 2,
		},
		{
			name:        "EmptySolvers",
			input:       "apt 0.8 -> {}",
			want:        "apt 0.8 -> {}",
			wantSolvers: 0,
		},
		{
			name:        "SolverOrderPreserved",
			input:       "apt 0.8 -> {z 1, a 2}",
			want:        "apt 0.8 -> {z 1, a 2}",
			wantSolvers: 2,
		},
		{name: "MissingArrow", input: "apt 0.8 {libc6 2.11}", wantCol: 9},
		{name: "MissingBrace", input: "apt 0.8 -> libc6 2.11", wantCol: 12},
		{name: "UnterminatedSolvers", input: "apt 0.8 -> {libc6 2.11", wantCol: 23},
		{name: "TrailingText", input: "apt 0.8 -> {} tail", wantCol: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDep(tt.input)
			if tt.wantCol > 0 {
				var se *SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("ParseDep(%q) = %v, want syntax error", tt.input, err)
				}
				if se.Col != tt.wantCol {
					t.Errorf("col = %d, want %d", se.Col, tt.wantCol)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDep(%q): %v", tt.input, err)
			}
			if got := d.Key(); got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
			if got := len(d.Solvers); got != tt.wantSolvers {
				t.Errorf("solvers = %d, want %d", got, tt.wantSolvers)
			}
		})
	}
}

func TestParseDepPrefix(t *testing.T) {
	d, rest, err := ParseDepPrefix("apt 0.8 -> {libc6 2.11} by installing libc6 2.11")
	if err != nil {
		t.Fatalf("ParseDepPrefix: %v", err)
	}
	if got := d.Key(); got != "apt 0.8 -> {libc6 2.11}" {
		t.Errorf("dep = %q", got)
	}
	if rest != " by installing libc6 2.11" {
		t.Errorf("rest = %q", rest)
	}
}

func TestParseSolution(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantChoices int
		wantBroken  int
		wantCol     int
	}{
		{name: "Empty", input: "<>", want: "<>"},
		{
			name:        "SingleInstall",
			input:       "<Install(apt 0.8.25)>",
			want:        "<Install(apt 0.8.25)>",
			wantChoices: 1,
		},
		{
			name:        "InstallWithReason",
			input:       "<Install(libc6 2.11 via apt 0.8 -> {libc6 2.11})>",
			want:        "<Install(libc6 2.11 via apt 0.8 -> {libc6 2.11})>",
			wantChoices: 1,
		},
		{
			name:        "InstallFromDepSource",
			input:       "<Install(libc6 2.11 via apt 0.8 -> {libc6 2.11} [dep source])>",
			want:        "<Install(libc6 2.11 via apt 0.8 -> {libc6 2.11} [dep source])>",
			wantChoices: 1,
		},
		{
			name:        "Break",
			input:       "<Break(apt 0.8 -> {libc6 2.11})>",
			want:        "<Break(apt 0.8 -> {libc6 2.11})>",
			wantChoices: 1,
		},
		{
			name:        "ChoicesSortedInKey",
			input:       "<Install(zlib 1.2), Install(apt 0.8)>",
			want:        "<Install(apt 0.8), Install(zlib 1.2)>",
			wantChoices: 2,
		},
		{
			name:       "BrokenOnly",
			input:      "<>;[apt 0.8 -> {libc6 2.11}]",
			want:       "<>;[apt 0.8 -> {libc6 2.11}]",
			wantBroken: 1,
		},
		{
			name:        "ChoicesAndBroken",
			input:       "<Install(apt 0.8)>;[dpkg 1.15 -> {dpkg 1.16}]",
			want:        "<Install(apt 0.8)>;[dpkg 1.15 -> {dpkg 1.16}]",
			wantChoices: 1,
			wantBroken:  1,
		},
		{name: "MissingAngle", input: "Install(apt 0.8)>", wantCol: 1},
		{name: "BadChoice", input: "<Remove(apt 0.8)>", wantCol: 2},
		{name: "Unterminated", input: "<Install(apt 0.8)", wantCol: 18},
		{name: "BrokenMissingBracket", input: "<>;apt 0.8 -> {}", wantCol: 4},
		{name: "TrailingText", input: "<> tail", wantCol: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSolution(tt.input)
			if tt.wantCol > 0 {
				var se *SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("ParseSolution(%q) = %v, want syntax error", tt.input, err)
				}
				if se.Col != tt.wantCol {
					t.Errorf("col = %d, want %d", se.Col, tt.wantCol)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSolution(%q): %v", tt.input, err)
			}
			if got := s.Key(); got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
			if got := s.Len(); got != tt.wantChoices {
				t.Errorf("choices = %d, want %d", got, tt.wantChoices)
			}
			if got := len(s.Broken()); got != tt.wantBroken {
				t.Errorf("broken = %d, want %d", got, tt.wantBroken)
			}
		})
	}
}

func TestParseSolutionRoundTrip(t *testing.T) {
	// A solution's key is itself a valid encoding that parses back to an
	// equal solution.
	inputs := []string{
		"<>",
		"<Install(apt 0.8.25)>",
		"<Install(libc6 2.11 via apt 0.8 -> {libc6 2.11} [dep source]), Break(x 1 -> {y 2})>",
		"<Install(apt 0.8)>;[dpkg 1.15 -> {dpkg 1.16, dpkg 1.17}]",
	}
	for _, in := range inputs {
		s1, err := ParseSolution(in)
		if err != nil {
			t.Fatalf("ParseSolution(%q): %v", in, err)
		}
		s2, err := ParseSolution(s1.Key())
		if err != nil {
			t.Fatalf("ParseSolution(key %q): %v", s1.Key(), err)
		}
		if !s1.Equal(s2) {
			t.Errorf("round trip of %q: %q != %q", in, s1.Key(), s2.Key())
		}
	}
}

func TestParsePromotion(t *testing.T) {
	p, err := ParsePromotion("  (T100: <Install(apt 0.8)>)  ")
	if err != nil {
		t.Fatalf("ParsePromotion: %v", err)
	}
	if p.Text != "(T100: <Install(apt 0.8)>)" {
		t.Errorf("text = %q", p.Text)
	}

	if _, err := ParsePromotion("   "); err == nil {
		t.Error("empty promotion accepted")
	}
}
