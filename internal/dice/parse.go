package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits on a single dice term.
const (
	MaxCount = 100
	MaxSides = 1000
)

// ParseError reports where an expression stopped making sense.
type ParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dice: %s at position %d in %q", e.Msg, e.Pos, e.Expr)
}

// Term is one signed component of an expression: a group of dice or a flat
// modifier when Sides is zero.
type Term struct {
	Sign  int
	Count int
	Sides int
	Flat  int
}

func (t Term) String() string {
	sign := "+"
	if t.Sign < 0 {
		sign = "-"
	}
	if t.Sides == 0 {
		return sign + strconv.Itoa(t.Flat)
	}
	return fmt.Sprintf("%s%dd%d", sign, t.Count, t.Sides)
}

// Expression is a parsed dice expression such as "2d6+1d4-1".
type Expression struct {
	Source string
	Terms  []Term
}

// String returns the normalised form of the expression.
func (e Expression) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		s := t.String()
		if i == 0 && t.Sign > 0 {
			s = s[1:]
		}
		b.WriteString(s)
	}
	return b.String()
}

// Parse reads an expression made of dice terms ("d20", "3d6") and flat
// modifiers joined by + or -. Spaces are ignored.
func Parse(expr string) (Expression, error) {
	p := parser{src: expr}
	out := Expression{Source: expr}

	p.skipSpace()
	if p.done() {
		return out, p.errorf("empty expression")
	}

	sign := 1
	if c := p.peek(); c == '+' || c == '-' {
		if c == '-' {
			sign = -1
		}
		p.pos++
	}

	for {
		p.skipSpace()
		term, err := p.term(sign)
		if err != nil {
			return out, err
		}
		out.Terms = append(out.Terms, term)

		p.skipSpace()
		if p.done() {
			break
		}
		switch p.peek() {
		case '+':
			sign = 1
		case '-':
			sign = -1
		default:
			return out, p.errorf("unexpected %q", p.peek())
		}
		p.pos++
	}

	if !out.HasDice() {
		return out, &ParseError{Expr: expr, Pos: 0, Msg: "expression has no dice"}
	}
	return out, nil
}

// HasDice reports whether any term rolls dice.
func (e Expression) HasDice() bool {
	for _, t := range e.Terms {
		if t.Sides > 0 {
			return true
		}
	}
	return false
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.done() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Expr: p.src, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) number() (int, bool, error) {
	start := p.pos
	for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, false, nil
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, false, &ParseError{Expr: p.src, Pos: start, Msg: "number out of range"}
	}
	return n, true, nil
}

func (p *parser) term(sign int) (Term, error) {
	start := p.pos
	n, hasCount, err := p.number()
	if err != nil {
		return Term{}, err
	}

	if p.done() || (p.peek() != 'd' && p.peek() != 'D') {
		if !hasCount {
			if p.done() {
				return Term{}, p.errorf("expected a number or dice")
			}
			return Term{}, p.errorf("unexpected %q", p.peek())
		}
		return Term{Sign: sign, Flat: n}, nil
	}
	p.pos++

	count := 1
	if hasCount {
		count = n
	}
	if count < 1 || count > MaxCount {
		return Term{}, &ParseError{Expr: p.src, Pos: start, Msg: fmt.Sprintf("dice count must be between 1 and %d", MaxCount)}
	}

	sidesPos := p.pos
	sides, ok, err := p.number()
	if err != nil {
		return Term{}, err
	}
	if !ok {
		return Term{}, p.errorf("expected number of sides")
	}
	if sides < 2 || sides > MaxSides {
		return Term{}, &ParseError{Expr: p.src, Pos: sidesPos, Msg: fmt.Sprintf("dice sides must be between 2 and %d", MaxSides)}
	}

	return Term{Sign: sign, Count: count, Sides: sides}, nil
}
