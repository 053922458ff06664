package dice

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr  string
		want  []Term
		canon string
	}{
		{expr: "d20", want: []Term{{Sign: 1, Count: 1, Sides: 20}}, canon: "1d20"},
		{expr: "2d6+3", want: []Term{{Sign: 1, Count: 2, Sides: 6}, {Sign: 1, Flat: 3}}, canon: "2d6+3"},
		{expr: " 2D6 + 1d4 - 1 ", want: []Term{{Sign: 1, Count: 2, Sides: 6}, {Sign: 1, Count: 1, Sides: 4}, {Sign: -1, Flat: 1}}, canon: "2d6+1d4-1"},
		{expr: "-1d4+2", want: []Term{{Sign: -1, Count: 1, Sides: 4}, {Sign: 1, Flat: 2}}, canon: "-1d4+2"},
		{expr: "1d12+2+1", want: []Term{{Sign: 1, Count: 1, Sides: 12}, {Sign: 1, Flat: 2}, {Sign: 1, Flat: 1}}, canon: "1d12+2+1"},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			e, err := Parse(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, e.Terms)
			assert.Equal(t, tc.canon, e.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		expr string
		pos  int
	}{
		{expr: "", pos: 0},
		{expr: "   ", pos: 3},
		{expr: "5", pos: 0},
		{expr: "2d", pos: 2},
		{expr: "2d6+", pos: 4},
		{expr: "2x6", pos: 1},
		{expr: "0d6", pos: 0},
		{expr: "2d1", pos: 2},
		{expr: "101d6", pos: 0},
		{expr: "1d6++2", pos: 4},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			_, err := Parse(tc.expr)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %v", err)
			assert.Equal(t, tc.pos, perr.Pos)
			assert.Contains(t, perr.Error(), tc.expr)
		})
	}
}

func TestRollBounds(t *testing.T) {
	r := NewRoller(rand.New(rand.NewSource(7)))

	for i := 0; i < 200; i++ {
		res, err := r.Roll("3d6+2")
		require.NoError(t, err)

		require.Len(t, res.Terms, 2)
		require.Len(t, res.Terms[0].Rolls, 3)
		for _, v := range res.Terms[0].Rolls {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, 6)
		}
		assert.Equal(t, res.Terms[0].Value+2, res.Total)
		assert.GreaterOrEqual(t, res.Total, 5)
		assert.LessOrEqual(t, res.Total, 20)
	}
}

func TestRollIsDeterministicForSeed(t *testing.T) {
	a, err := NewRoller(rand.New(rand.NewSource(42))).Roll("4d12-3")
	require.NoError(t, err)
	b, err := NewRoller(rand.New(rand.NewSource(42))).Roll("4d12-3")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRollSubtractsNegativeTerms(t *testing.T) {
	r := NewRoller(rand.New(rand.NewSource(3)))
	res := r.RollExpression(Expression{Terms: []Term{
		{Sign: 1, Flat: 10},
		{Sign: -1, Count: 1, Sides: 4},
	}})

	assert.Equal(t, 10-res.Terms[1].Value, res.Total)
}

func TestResultString(t *testing.T) {
	e, err := Parse("2d6+1")
	require.NoError(t, err)

	res := Result{
		Expression: e,
		Terms: []TermResult{
			{Term: e.Terms[0], Rolls: []int{3, 5}, Value: 8},
			{Term: e.Terms[1], Value: 1},
		},
		Total: 9,
	}
	assert.Equal(t, "2d6+1: [3 5] +1 = 9", res.String())
}

func TestDualityOutcome(t *testing.T) {
	tests := []struct {
		name    string
		hope    int
		fear    int
		mod     int
		outcome Outcome
		total   int
	}{
		{name: "hope", hope: 9, fear: 4, mod: 2, outcome: WithHope, total: 15},
		{name: "fear", hope: 3, fear: 11, mod: 0, outcome: WithFear, total: 14},
		{name: "critical", hope: 6, fear: 6, mod: -1, outcome: CriticalSuccess, total: 11},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := duality(tc.hope, tc.fear, tc.mod)
			assert.Equal(t, tc.outcome, got.Outcome)
			assert.Equal(t, tc.total, got.Total)
		})
	}
}

func TestDualityRoll(t *testing.T) {
	r := NewRoller(rand.New(rand.NewSource(11)))
	for i := 0; i < 100; i++ {
		d := r.Duality(1)
		assert.GreaterOrEqual(t, d.Hope, 1)
		assert.LessOrEqual(t, d.Hope, 12)
		assert.GreaterOrEqual(t, d.Fear, 1)
		assert.LessOrEqual(t, d.Fear, 12)
		assert.Equal(t, d.Hope+d.Fear+1, d.Total)
	}
	assert.Equal(t, "Hope 9, Fear 4 +2 = 15 with Hope", duality(9, 4, 2).String())
}
