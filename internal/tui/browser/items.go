package browser

import (
	"strings"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/content"
)

// entry adapts a library card to the bubbles list.
type entry struct {
	content.Card
}

func (e entry) Title() string { return e.Name() }

func (e entry) Description() string {
	f := e.SearchFields()
	typ := f.Type
	if f.DisplayType != "" {
		typ = f.DisplayType
	}

	parts := make([]string, 0, 3)
	if f.Tier != "" {
		parts = append(parts, "Tier "+f.Tier)
	}
	if typ != "" {
		parts = append(parts, typ)
	}
	parts = append(parts, card.SourceOrDefault(f.Source))
	return strings.Join(parts, " · ")
}

func (e entry) FilterValue() string { return e.Name() }

func entriesFor(lib *content.Library, kind card.Kind) []entry {
	cards := lib.Cards(kind)
	out := make([]entry, len(cards))
	for i, c := range cards {
		out[i] = entry{Card: c}
	}
	return out
}
