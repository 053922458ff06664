// Package search filters and ranks card collections for the browsers and the
// search command.
//
// An Engine owns a collection and a filter state. Search combines fuzzy text
// matching with multi-select tier, source and type filters, and
// AvailableOptions reports the facet values present in the collection.
package search

import (
	"slices"
	"sort"
	"strings"
)

// DefaultSource is assumed for items that do not declare a source.
const DefaultSource = "core"

// hordeFamily is the only type whose numbered variants, such as "horde (3)",
// match the base filter value.
const hordeFamily = "horde"

// Fields are the values the engine reads from an item.
type Fields struct {
	Name        string
	Tier        string
	Type        string
	DisplayType string
	Source      string
	Desc        string
}

// Searchable is implemented by anything the engine can filter.
type Searchable interface {
	SearchFields() Fields
}

// Facet names a categorical filter dimension.
type Facet string

const (
	FacetTiers   Facet = "tiers"
	FacetSources Facet = "sources"
	FacetTypes   Facet = "types"
)

// ParseFacet resolves a facet by name, accepting singular forms.
func ParseFacet(name string) (Facet, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tiers", "tier":
		return FacetTiers, true
	case "sources", "source":
		return FacetSources, true
	case "types", "type":
		return FacetTypes, true
	default:
		return "", false
	}
}

// Engine filters and ranks a collection of items. The engine never mutates
// the items it holds and keeps no cached results.
//
// An Engine is not safe for concurrent use.
type Engine[T Searchable] struct {
	items   []T
	filters Filters
}

// New returns an engine with an empty collection and cleared filters.
func New[T Searchable]() *Engine[T] {
	e := &Engine[T]{}
	e.ClearFilters()
	return e
}

// SetItems replaces the working collection.
func (e *Engine[T]) SetItems(items []T) {
	e.items = items
}

// Items returns the working collection.
func (e *Engine[T]) Items() []T {
	return e.items
}

// SetFilters applies the provided updates to the filter state. Fields that
// no update touches keep their current value.
func (e *Engine[T]) SetFilters(updates ...FilterUpdate) {
	for _, update := range updates {
		if update != nil {
			update(&e.filters)
		}
	}
}

// ReplaceFilters overwrites the whole filter state, typically with a value
// previously returned by Filters.
func (e *Engine[T]) ReplaceFilters(f Filters) {
	e.filters = f.Clone()
}

// Filters returns a copy of the current filter state.
func (e *Engine[T]) Filters() Filters {
	return e.filters.Clone()
}

// ClearFilters resets the filter state to its initial, empty value.
func (e *Engine[T]) ClearFilters() {
	e.filters = Filters{
		Tiers:   []string{},
		Sources: []string{},
		Types:   []string{},
	}
}

// Search returns the items passing every active filter. With a text query
// the results are ordered by descending relevance; otherwise they keep
// collection order.
func (e *Engine[T]) Search() []T {
	query := strings.TrimSpace(e.filters.Query)
	m := newMatcher(e.filters)

	if query == "" {
		results := make([]T, 0, len(e.items))
		for _, item := range e.items {
			if m.matches(item.SearchFields()) {
				results = append(results, item)
			}
		}
		return results
	}

	type scored struct {
		item  T
		score float64
	}

	ranked := make([]scored, 0)
	for _, item := range e.items {
		fields := item.SearchFields()
		if !m.matches(fields) {
			continue
		}
		score := ItemScore(fields, query)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, scored{item: item, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	results := make([]T, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// AvailableOptions returns the sorted, distinct, non-empty values present in
// the collection for facet. The scan covers the whole collection, not the
// filtered result.
func (e *Engine[T]) AvailableOptions(facet Facet) []string {
	seen := make(map[string]struct{})
	add := func(v string) {
		if v != "" {
			seen[v] = struct{}{}
		}
	}

	for _, item := range e.items {
		f := item.SearchFields()
		switch facet {
		case FacetTiers:
			add(f.Tier)
		case FacetSources:
			add(sourceOf(f))
		case FacetTypes:
			add(f.Type)
			add(f.DisplayType)
		}
	}

	options := make([]string, 0, len(seen))
	for v := range seen {
		options = append(options, v)
	}
	slices.Sort(options)
	return options
}

type matcher struct {
	tiers   map[string]struct{}
	sources map[string]struct{}
	types   []string
}

func newMatcher(f Filters) matcher {
	m := matcher{}
	if len(f.Tiers) > 0 {
		m.tiers = make(map[string]struct{}, len(f.Tiers))
		for _, t := range f.Tiers {
			m.tiers[t] = struct{}{}
		}
	}
	if len(f.Sources) > 0 {
		m.sources = make(map[string]struct{}, len(f.Sources))
		for _, s := range f.Sources {
			m.sources[strings.ToLower(s)] = struct{}{}
		}
	}
	if len(f.Types) > 0 {
		m.types = make([]string, len(f.Types))
		for i, t := range f.Types {
			m.types[i] = strings.ToLower(t)
		}
	}
	return m
}

func (m matcher) matches(f Fields) bool {
	return m.matchTier(f) && m.matchSource(f) && m.matchType(f)
}

func (m matcher) matchTier(f Fields) bool {
	if m.tiers == nil {
		return true
	}
	_, ok := m.tiers[f.Tier]
	return ok
}

func (m matcher) matchSource(f Fields) bool {
	if m.sources == nil {
		return true
	}
	_, ok := m.sources[strings.ToLower(sourceOf(f))]
	return ok
}

func (m matcher) matchType(f Fields) bool {
	if m.types == nil {
		return true
	}

	itemType := strings.ToLower(f.Type)
	displayType := strings.ToLower(f.DisplayType)

	for _, want := range m.types {
		if itemType == want || (displayType != "" && displayType == want) {
			return true
		}
		if want == hordeFamily && isHordeVariant(itemType) {
			return true
		}
	}
	return false
}

func isHordeVariant(itemType string) bool {
	return itemType == hordeFamily || strings.HasPrefix(itemType, hordeFamily+" (")
}

func sourceOf(f Fields) string {
	if f.Source == "" {
		return DefaultSource
	}
	return f.Source
}
