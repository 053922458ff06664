package content

import (
	"fmt"
	"strings"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/search"
)

// Card is a library card of either kind, searchable by the engine.
type Card struct {
	Kind   card.Kind
	Value  any
	fields search.Fields
}

func (c Card) SearchFields() search.Fields { return c.fields }

func (c Card) Name() string { return c.fields.Name }

// Identity distinguishes cards that share a name. Stored cards use their ID;
// built-in and pack cards fall back to the address of their value, which is
// stable for the lifetime of a library.
func (c Card) Identity() string {
	var id string
	switch v := c.Value.(type) {
	case *card.Adversary:
		id = v.ID
	case *card.Environment:
		id = v.ID
	}
	if id != "" {
		return "id:" + id
	}
	return fmt.Sprintf("ptr:%p", c.Value)
}

// Cards returns the cards of kind in library order.
func (l *Library) Cards(kind card.Kind) []Card {
	if l == nil {
		return []Card{}
	}

	if kind == card.KindEnvironment {
		out := make([]Card, 0, len(l.Environments))
		for _, e := range l.Environments {
			out = append(out, Card{Kind: kind, Value: e, fields: e.SearchFields()})
		}
		return out
	}

	out := make([]Card, 0, len(l.Adversaries))
	for _, a := range l.Adversaries {
		out = append(out, Card{Kind: card.KindAdversary, Value: a, fields: a.SearchFields()})
	}
	return out
}

// Engine returns a search engine loaded with the cards of kind.
func (l *Library) Engine(kind card.Kind) *search.Engine[Card] {
	e := search.New[Card]()
	e.SetItems(l.Cards(kind))
	return e
}

// Lookup returns the cards of kind whose name equals name, ignoring case.
// When nothing matches exactly, the fuzzy search results are returned
// instead.
func (l *Library) Lookup(kind card.Kind, name string) []Card {
	name = strings.TrimSpace(name)

	var exact []Card
	for _, c := range l.Cards(kind) {
		if strings.EqualFold(c.Name(), name) {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	e := l.Engine(kind)
	e.SetFilters(search.WithQuery(name))
	return e.Search()
}
