package model

import (
	"fmt"
	"strings"
)

// SyntaxError reports a malformed encoding at a 1-based column within the
// parsed text. The loader wraps it with the source name and line number.
type SyntaxError struct {
	Col int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("column %d: %s", e.Col, e.Msg)
}

// reserved is the set of characters that terminate a name or version token.
const reserved = "(){}<>[],;"

// ParseVersion parses a complete version encoding, e.g. "apt 0.8.25".
func ParseVersion(s string) (Version, error) {
	p := &scanner{src: s}
	v, err := p.version()
	if err != nil {
		return Version{}, err
	}
	if err := p.end(); err != nil {
		return Version{}, err
	}
	return v, nil
}

// ParseDep parses a complete dep encoding, e.g.
// "apt 0.8 -> {libc6 2.11, libc6 2.13}".
func ParseDep(s string) (Dep, error) {
	d, rest, err := ParseDepPrefix(s)
	if err != nil {
		return Dep{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return Dep{}, &SyntaxError{Col: len(s) - len(rest) + 1, Msg: "unexpected trailing text"}
	}
	return d, nil
}

// ParseDepPrefix parses a dep at the start of s and returns the unconsumed
// remainder. The classifier uses it for lines where a dep is followed by
// more prose, e.g. "apt 0.8 -> {libc6 2.11} by installing libc6 2.11".
func ParseDepPrefix(s string) (Dep, string, error) {
	p := &scanner{src: s}
	d, err := p.dep()
	if err != nil {
		return Dep{}, "", err
	}
	return d, p.rest(), nil
}

// ParseSolution parses a complete solution encoding, e.g.
// "<Install(apt 0.8.25)>;[dpkg 1.15 -> {dpkg 1.16}]".
func ParseSolution(s string) (Solution, error) {
	p := &scanner{src: s}
	sol, err := p.solution()
	if err != nil {
		return Solution{}, err
	}
	if err := p.end(); err != nil {
		return Solution{}, err
	}
	return sol, nil
}

// ParsePromotion captures a promotion record. Promotions are opaque: the
// trimmed text is the value. Only an empty record is rejected.
func ParsePromotion(s string) (Promotion, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Promotion{}, &SyntaxError{Col: 1, Msg: "empty promotion"}
	}
	return Promotion{Text: text}, nil
}

// scanner is a minimal cursor over the encoding grammar. All errors carry
// the current column so the loader can point at the offending field.
type scanner struct {
	src string
	pos int
}

func (p *scanner) errf(format string, args ...any) error {
	return &SyntaxError{Col: p.pos + 1, Msg: fmt.Sprintf(format, args...)}
}

func (p *scanner) eof() bool { return p.pos >= len(p.src) }

func (p *scanner) rest() string { return p.src[p.pos:] }

func (p *scanner) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// end asserts that only trailing whitespace remains.
func (p *scanner) end() error {
	p.spaces()
	if !p.eof() {
		return p.errf("unexpected trailing text")
	}
	return nil
}

func (p *scanner) spaces() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// lit consumes the exact literal or fails.
func (p *scanner) lit(l string) error {
	if !strings.HasPrefix(p.rest(), l) {
		return p.errf("expected %q", l)
	}
	p.pos += len(l)
	return nil
}

// has reports whether the literal comes next, consuming it if so.
func (p *scanner) has(l string) bool {
	if strings.HasPrefix(p.rest(), l) {
		p.pos += len(l)
		return true
	}
	return false
}

// token reads a run of non-reserved, non-space characters.
func (p *scanner) token(what string) (string, error) {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || strings.IndexByte(reserved, c) >= 0 {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errf("expected %s", what)
	}
	return p.src[start:p.pos], nil
}

// version := NAME VER
func (p *scanner) version() (Version, error) {
	name, err := p.token("package name")
	if err != nil {
		return Version{}, err
	}
	p.spaces()
	num, err := p.token("version string")
	if err != nil {
		return Version{}, err
	}
	return Version{Pkg: Package(name), Number: num}, nil
}

// dep := version "->" "{" [version ("," version)*] "}"
func (p *scanner) dep() (Dep, error) {
	src, err := p.version()
	if err != nil {
		return Dep{}, err
	}
	p.spaces()
	if err := p.lit("->"); err != nil {
		return Dep{}, err
	}
	p.spaces()
	if err := p.lit("{"); err != nil {
		return Dep{}, err
	}
	d := Dep{Source: src}
	p.spaces()
	if p.has("}") {
		return d, nil
	}
	for {
		v, err := p.version()
		if err != nil {
			return Dep{}, err
		}
		d.Solvers = append(d.Solvers, v)
		p.spaces()
		if p.has(",") {
			p.spaces()
			continue
		}
		if p.has("}") {
			return d, nil
		}
		return Dep{}, p.errf("expected \",\" or \"}\" in solver list")
	}
}

// choice := "Install(" version [" via " dep] [" [dep source]"] ")" | "Break(" dep ")"
func (p *scanner) choice() (Choice, error) {
	switch {
	case p.has("Install("):
		v, err := p.version()
		if err != nil {
			return Choice{}, err
		}
		c := InstallVersion(v)
		p.spaces()
		if p.has("via ") {
			reason, err := p.dep()
			if err != nil {
				return Choice{}, err
			}
			fromDepSource := false
			p.spaces()
			if p.has("[dep source]") {
				fromDepSource = true
				p.spaces()
			}
			c = InstallVersionFor(v, reason, fromDepSource)
		}
		if err := p.lit(")"); err != nil {
			return Choice{}, err
		}
		return c, nil
	case p.has("Break("):
		d, err := p.dep()
		if err != nil {
			return Choice{}, err
		}
		if err := p.lit(")"); err != nil {
			return Choice{}, err
		}
		return BreakSoftDep(d), nil
	default:
		return Choice{}, p.errf("expected \"Install(\" or \"Break(\"")
	}
}

// solution := "<" [choice ("," choice)*] ">" [";[" dep ("," dep)* "]"]
func (p *scanner) solution() (Solution, error) {
	if err := p.lit("<"); err != nil {
		return Solution{}, err
	}
	var choices []Choice
	p.spaces()
	if !p.has(">") {
		for {
			c, err := p.choice()
			if err != nil {
				return Solution{}, err
			}
			choices = append(choices, c)
			p.spaces()
			if p.has(",") {
				p.spaces()
				continue
			}
			if p.has(">") {
				break
			}
			return Solution{}, p.errf("expected \",\" or \">\" in choice list")
		}
	}

	var broken []Dep
	if p.has(";") {
		if err := p.lit("["); err != nil {
			return Solution{}, err
		}
		p.spaces()
		if !p.has("]") {
			for {
				d, err := p.dep()
				if err != nil {
					return Solution{}, err
				}
				broken = append(broken, d)
				p.spaces()
				if p.has(",") {
					p.spaces()
					continue
				}
				if p.has("]") {
					break
				}
				return Solution{}, p.errf("expected \",\" or \"]\" in broken list")
			}
		}
	}

	return NewSolution(choices, broken), nil
}
