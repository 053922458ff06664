// Package card defines the adversary and environment stat blocks managed by
// DaggerForge.
package card

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Paintersrp/daggerforge/internal/search"
)

// Kind distinguishes the two card families.
type Kind string

const (
	KindAdversary   Kind = "adversary"
	KindEnvironment Kind = "environment"
)

// ParseKind accepts singular, plural and short forms of a card kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adversary", "adversaries", "adv", "a":
		return KindAdversary, nil
	case "environment", "environments", "env", "e":
		return KindEnvironment, nil
	default:
		return "", fmt.Errorf("unknown card kind %q: expected adversary or environment", s)
	}
}

// Plural returns the plural label used in headings and sidecar keys.
func (k Kind) Plural() string {
	switch k {
	case KindAdversary:
		return "adversaries"
	case KindEnvironment:
		return "environments"
	default:
		return string(k)
	}
}

// Source labels with special meaning.
const (
	SourceCore   = search.DefaultSource
	SourceCustom = "custom"
)

// MinTier and MaxTier bound the tiers a card may declare.
const (
	MinTier = 1
	MaxTier = 4
)

// AdversaryTypes lists the adversary roles.
var AdversaryTypes = []string{
	"Bruiser",
	"Horde",
	"Leader",
	"Minion",
	"Ranged",
	"Skulk",
	"Social",
	"Solo",
	"Standard",
	"Support",
}

// EnvironmentTypes lists the environment roles.
var EnvironmentTypes = []string{
	"Event",
	"Exploration",
	"Social",
	"Traversal",
}

// TypesFor returns the canonical types of a kind.
func TypesFor(k Kind) []string {
	if k == KindEnvironment {
		return EnvironmentTypes
	}
	return AdversaryTypes
}

// CanonicalType returns the canonical spelling of t for kind k.
func CanonicalType(k Kind, t string) (string, bool) {
	for _, known := range TypesFor(k) {
		if strings.EqualFold(known, strings.TrimSpace(t)) {
			return known, true
		}
	}
	return "", false
}

// FeatureKind is the timing of a card feature.
type FeatureKind string

const (
	FeatureAction   FeatureKind = "Action"
	FeatureReaction FeatureKind = "Reaction"
	FeaturePassive  FeatureKind = "Passive"
)

// Feature is a named ability printed on a card.
type Feature struct {
	Name string      `json:"name" yaml:"name" validate:"required"`
	Kind FeatureKind `json:"kind" yaml:"kind" validate:"omitempty,oneof=Action Reaction Passive"`
	Desc string      `json:"desc" yaml:"desc"`
}

// Adversary is an adversary stat block.
type Adversary struct {
	ID              string    `json:"id,omitempty"         yaml:"id,omitempty"`
	Name            string    `json:"name"                 yaml:"name"            validate:"required"`
	Tier            int       `json:"tier"                 yaml:"tier"            validate:"min=1,max=4"`
	Type            string    `json:"type"                 yaml:"type"            validate:"required,cardtype=adversary"`
	HordeSize       int       `json:"hordeSize,omitempty"  yaml:"horde_size"      validate:"min=0"`
	Source          string    `json:"source,omitempty"     yaml:"source"`
	Desc            string    `json:"desc"                 yaml:"desc"`
	Motives         string    `json:"motives,omitempty"    yaml:"motives"`
	Difficulty      int       `json:"difficulty"           yaml:"difficulty"      validate:"min=0"`
	MajorThreshold  int       `json:"major,omitempty"      yaml:"major"           validate:"min=0"`
	SevereThreshold int       `json:"severe,omitempty"     yaml:"severe"          validate:"min=0,gtefield=MajorThreshold"`
	HP              int       `json:"hp"                   yaml:"hp"              validate:"min=0"`
	Stress          int       `json:"stress"               yaml:"stress"          validate:"min=0"`
	Attack          string    `json:"atk,omitempty"        yaml:"atk"`
	Weapon          string    `json:"weapon,omitempty"     yaml:"weapon"`
	Range           string    `json:"range,omitempty"      yaml:"range"`
	Damage          string    `json:"damage,omitempty"     yaml:"damage"`
	Experience      string    `json:"experience,omitempty" yaml:"experience"`
	Features        []Feature `json:"features,omitempty"   yaml:"features"        validate:"dive"`
}

// DisplayType returns the type label printed on the card. Hordes carry their
// size, for example "Horde (5/HP)".
func (a *Adversary) DisplayType() string {
	if strings.EqualFold(a.Type, "horde") && a.HordeSize > 0 {
		return fmt.Sprintf("%s (%d/HP)", a.Type, a.HordeSize)
	}
	return ""
}

// SearchFields implements search.Searchable.
func (a *Adversary) SearchFields() search.Fields {
	return search.Fields{
		Name:        a.Name,
		Tier:        tierLabel(a.Tier),
		Type:        a.Type,
		DisplayType: a.DisplayType(),
		Source:      a.Source,
		Desc:        a.Desc,
	}
}

// Environment is an environment stat block.
type Environment struct {
	ID                   string    `json:"id,omitempty"                   yaml:"id,omitempty"`
	Name                 string    `json:"name"                           yaml:"name"                  validate:"required"`
	Tier                 int       `json:"tier"                           yaml:"tier"                  validate:"min=1,max=4"`
	Type                 string    `json:"type"                           yaml:"type"                  validate:"required,cardtype=environment"`
	Source               string    `json:"source,omitempty"               yaml:"source"`
	Desc                 string    `json:"desc"                           yaml:"desc"`
	Impulses             string    `json:"impulses,omitempty"             yaml:"impulses"`
	Difficulty           int       `json:"difficulty"                     yaml:"difficulty"            validate:"min=0"`
	PotentialAdversaries string    `json:"potentialAdversaries,omitempty" yaml:"potential_adversaries"`
	Features             []Feature `json:"features,omitempty"             yaml:"features"              validate:"dive"`
}

// SearchFields implements search.Searchable.
func (e *Environment) SearchFields() search.Fields {
	return search.Fields{
		Name:   e.Name,
		Tier:   tierLabel(e.Tier),
		Type:   e.Type,
		Source: e.Source,
		Desc:   e.Desc,
	}
}

// SourceOrDefault returns the card source, or core when none is set.
func SourceOrDefault(source string) string {
	if source == "" {
		return SourceCore
	}
	return source
}

func tierLabel(tier int) string {
	if tier <= 0 {
		return ""
	}
	return strconv.Itoa(tier)
}
