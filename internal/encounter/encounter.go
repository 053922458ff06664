// Package encounter computes battle point budgets for combat encounters.
package encounter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidPartySize = errors.New("party size must be at least 1")

// Adjustment modifies the battle point budget.
type Adjustment string

const (
	EasierFight                  Adjustment = "easier"
	MultipleSolos                Adjustment = "multiple-solos"
	BoostDamage                  Adjustment = "boost-damage"
	LowerTier                    Adjustment = "lower-tier"
	NoBruisersHordesLeadersSolos Adjustment = "no-big-threats"
	HarderFight                  Adjustment = "harder"
)

var adjustmentPoints = map[Adjustment]int{
	EasierFight:                  -1,
	MultipleSolos:                -2,
	BoostDamage:                  -2,
	LowerTier:                    1,
	NoBruisersHordesLeadersSolos: 1,
	HarderFight:                  2,
}

var adjustmentLabels = map[Adjustment]string{
	EasierFight:                  "Easier or shorter fight",
	MultipleSolos:                "Two or more Solo adversaries",
	BoostDamage:                  "Increased damage",
	LowerTier:                    "Adversary from a lower tier",
	NoBruisersHordesLeadersSolos: "No Bruisers, Hordes, Leaders or Solos",
	HarderFight:                  "Harder or longer fight",
}

// Adjustments lists every adjustment in display order.
var Adjustments = []Adjustment{
	EasierFight,
	MultipleSolos,
	BoostDamage,
	LowerTier,
	NoBruisersHordesLeadersSolos,
	HarderFight,
}

// Points returns the budget change of a.
func (a Adjustment) Points() int {
	return adjustmentPoints[a]
}

// Label returns a human readable description of a.
func (a Adjustment) Label() string {
	if l, ok := adjustmentLabels[a]; ok {
		return l
	}
	return string(a)
}

// ParseAdjustment accepts the adjustment name in any case.
func ParseAdjustment(s string) (Adjustment, error) {
	a := Adjustment(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := adjustmentPoints[a]; !ok {
		names := make([]string, len(Adjustments))
		for i, known := range Adjustments {
			names[i] = string(known)
		}
		return "", fmt.Errorf("unknown adjustment %q: expected one of %s", s, strings.Join(names, ", "))
	}
	return a, nil
}

var typeCosts = map[string]int{
	"minion":   1,
	"social":   1,
	"support":  1,
	"horde":    2,
	"ranged":   2,
	"skulk":    2,
	"standard": 2,
	"leader":   3,
	"bruiser":  4,
	"solo":     5,
}

// bigThreats are the types whose absence raises the budget.
var bigThreats = map[string]bool{
	"bruiser": true,
	"horde":   true,
	"leader":  true,
	"solo":    true,
}

// Selection is a number of adversaries of one type.
type Selection struct {
	Type  string
	Count int
}

// Line is the cost of one selection.
type Line struct {
	Selection
	Cost int
}

// Summary is the result of an encounter calculation.
type Summary struct {
	PartySize   int
	Base        int
	Budget      int
	Spent       int
	Remaining   int
	Lines       []Line
	Adjustments []Adjustment
}

// Over reports whether the selections exceed the budget.
func (s Summary) Over() bool {
	return s.Remaining < 0
}

// BaseBudget is the unadjusted budget for a party.
func BaseBudget(partySize int) int {
	return 3*partySize + 2
}

// Cost returns the battle points spent on count adversaries of type t.
// Minions are bought in groups the size of the party.
func Cost(t string, count, partySize int) (int, error) {
	key := strings.ToLower(strings.TrimSpace(t))
	per, ok := typeCosts[key]
	if !ok {
		return 0, fmt.Errorf("unknown adversary type %q", t)
	}
	if count < 0 {
		return 0, fmt.Errorf("%s count cannot be negative", t)
	}
	if key == "minion" {
		if partySize < 1 {
			return 0, ErrInvalidPartySize
		}
		return per * ((count + partySize - 1) / partySize), nil
	}
	return per * count, nil
}

// Calculate prices selections against the budget for partySize. Requested
// adjustments are applied once each. MultipleSolos is added when two or more
// Solos are selected and NoBruisersHordesLeadersSolos when none of those
// types are.
func Calculate(partySize int, selections []Selection, adjustments []Adjustment) (Summary, error) {
	if partySize < 1 {
		return Summary{}, ErrInvalidPartySize
	}

	s := Summary{PartySize: partySize, Base: BaseBudget(partySize)}

	var solos int
	var hasBigThreat bool
	for _, sel := range selections {
		cost, err := Cost(sel.Type, sel.Count, partySize)
		if err != nil {
			return Summary{}, err
		}
		if sel.Count == 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(sel.Type))
		if key == "solo" {
			solos += sel.Count
		}
		if bigThreats[key] {
			hasBigThreat = true
		}
		s.Lines = append(s.Lines, Line{Selection: sel, Cost: cost})
		s.Spent += cost
	}

	applied := make(map[Adjustment]bool)
	for _, a := range adjustments {
		if _, ok := adjustmentPoints[a]; !ok {
			return Summary{}, fmt.Errorf("unknown adjustment %q", a)
		}
		applied[a] = true
	}
	if solos >= 2 {
		applied[MultipleSolos] = true
	}
	if len(s.Lines) > 0 && !hasBigThreat {
		applied[NoBruisersHordesLeadersSolos] = true
	}

	s.Budget = s.Base
	for _, a := range Adjustments {
		if applied[a] {
			s.Adjustments = append(s.Adjustments, a)
			s.Budget += a.Points()
		}
	}
	s.Remaining = s.Budget - s.Spent

	return s, nil
}

// ParseSelection reads "Type:count" or "Type" (count 1).
func ParseSelection(s string) (Selection, error) {
	name, countStr, hasCount := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if _, ok := typeCosts[strings.ToLower(name)]; !ok {
		return Selection{}, fmt.Errorf("unknown adversary type %q", name)
	}

	count := 1
	if hasCount {
		n, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || n < 0 {
			return Selection{}, fmt.Errorf("invalid count in %q", s)
		}
		count = n
	}
	return Selection{Type: name, Count: count}, nil
}

// Types returns the priced adversary types, sorted.
func Types() []string {
	out := make([]string, 0, len(typeCosts))
	for t := range typeCosts {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
