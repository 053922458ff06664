// Package dice rolls dice expressions and duality dice.
package dice

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// TermResult is the outcome of a single term.
type TermResult struct {
	Term  Term
	Rolls []int
	Value int
}

// Result is the outcome of rolling an expression.
type Result struct {
	Expression Expression
	Terms      []TermResult
	Total      int
}

// String renders the result as "2d6+1: [3 5] +1 = 9".
func (r Result) String() string {
	parts := make([]string, 0, len(r.Terms))
	for i, t := range r.Terms {
		var s string
		if t.Term.Sides == 0 {
			s = strconv.Itoa(t.Term.Flat)
		} else {
			rolls := make([]string, len(t.Rolls))
			for j, v := range t.Rolls {
				rolls[j] = strconv.Itoa(v)
			}
			s = "[" + strings.Join(rolls, " ") + "]"
		}
		switch {
		case t.Term.Sign < 0:
			s = "-" + s
		case i > 0:
			s = "+" + s
		}
		parts = append(parts, s)
	}
	return fmt.Sprintf("%s: %s = %d", r.Expression, strings.Join(parts, " "), r.Total)
}

// Roller rolls dice with its own random source. A Roller is not safe for
// concurrent use.
type Roller struct {
	rng *rand.Rand
}

// NewRoller returns a roller drawing from rng, or from a time-seeded source
// when rng is nil.
func NewRoller(rng *rand.Rand) *Roller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // game dice, not security critical
	}
	return &Roller{rng: rng}
}

// Die rolls a single die with the given number of sides.
func (r *Roller) Die(sides int) int {
	return r.rng.Intn(sides) + 1
}

// Roll parses and rolls expr.
func (r *Roller) Roll(expr string) (Result, error) {
	e, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	return r.RollExpression(e), nil
}

// RollExpression rolls an already parsed expression.
func (r *Roller) RollExpression(e Expression) Result {
	res := Result{Expression: e, Terms: make([]TermResult, 0, len(e.Terms))}
	for _, t := range e.Terms {
		tr := TermResult{Term: t}
		if t.Sides == 0 {
			tr.Value = t.Flat
		} else {
			tr.Rolls = make([]int, t.Count)
			for i := range tr.Rolls {
				tr.Rolls[i] = r.Die(t.Sides)
				tr.Value += tr.Rolls[i]
			}
		}
		res.Total += t.Sign * tr.Value
		res.Terms = append(res.Terms, tr)
	}
	return res
}

// Outcome is the narrative result of a duality roll.
type Outcome string

const (
	WithHope        Outcome = "with Hope"
	WithFear        Outcome = "with Fear"
	CriticalSuccess Outcome = "critical success"
)

// DualityResult is a roll of the Hope and Fear d12s.
type DualityResult struct {
	Hope     int
	Fear     int
	Modifier int
	Total    int
	Outcome  Outcome
}

func (d DualityResult) String() string {
	mod := ""
	switch {
	case d.Modifier > 0:
		mod = fmt.Sprintf(" +%d", d.Modifier)
	case d.Modifier < 0:
		mod = fmt.Sprintf(" %d", d.Modifier)
	}
	return fmt.Sprintf("Hope %d, Fear %d%s = %d %s", d.Hope, d.Fear, mod, d.Total, d.Outcome)
}

// Duality rolls the Hope and Fear dice and adds modifier.
func (r *Roller) Duality(modifier int) DualityResult {
	return duality(r.Die(12), r.Die(12), modifier)
}

func duality(hope, fear, modifier int) DualityResult {
	res := DualityResult{
		Hope:     hope,
		Fear:     fear,
		Modifier: modifier,
		Total:    hope + fear + modifier,
	}
	switch {
	case hope == fear:
		res.Outcome = CriticalSuccess
	case hope > fear:
		res.Outcome = WithHope
	default:
		res.Outcome = WithFear
	}
	return res
}
