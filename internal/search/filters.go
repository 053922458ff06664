package search

import "strings"

// Filters describes the active filter state of an Engine.
type Filters struct {
	// Query is the free-text query. It is trimmed before use and an empty
	// query disables text filtering.
	Query string
	// Tiers lists the tier labels to match. An empty set matches all tiers.
	Tiers []string
	// Sources lists the provenance labels to match, compared
	// case-insensitively. An empty set matches all sources.
	Sources []string
	// Types lists the category labels to match, compared case-insensitively
	// against both the type and display type of an item.
	Types []string
}

// Clone returns a copy of the filters that shares no backing arrays with f.
func (f Filters) Clone() Filters {
	return Filters{
		Query:   f.Query,
		Tiers:   cloneStrings(f.Tiers),
		Sources: cloneStrings(f.Sources),
		Types:   cloneStrings(f.Types),
	}
}

// IsEmpty reports whether no filter is active.
func (f Filters) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" &&
		len(f.Tiers) == 0 &&
		len(f.Sources) == 0 &&
		len(f.Types) == 0
}

// FilterUpdate mutates a single field of the filter state. Updates passed to
// SetFilters replace the field they target and leave every other field as-is.
type FilterUpdate func(*Filters)

// WithQuery replaces the text query.
func WithQuery(query string) FilterUpdate {
	return func(f *Filters) {
		f.Query = query
	}
}

// WithTiers replaces the selected tiers. Calling it without arguments clears
// the tier filter.
func WithTiers(tiers ...string) FilterUpdate {
	values := cloneStrings(tiers)
	return func(f *Filters) {
		f.Tiers = values
	}
}

// WithSources replaces the selected sources.
func WithSources(sources ...string) FilterUpdate {
	values := cloneStrings(sources)
	return func(f *Filters) {
		f.Sources = values
	}
}

// WithTypes replaces the selected types.
func WithTypes(types ...string) FilterUpdate {
	values := cloneStrings(types)
	return func(f *Filters) {
		f.Types = values
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append(make([]string, 0, len(values)), values...)
}
