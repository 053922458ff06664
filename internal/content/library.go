package content

import (
	"github.com/Paintersrp/daggerforge/internal/card"
)

// Library is the merged set of cards available in a vault.
type Library struct {
	Adversaries  []*card.Adversary
	Environments []*card.Environment
}

// Custom supplies the cards the user has saved in the vault.
type Custom interface {
	Adversaries() []*card.Adversary
	Environments() []*card.Environment
}

// NewLibrary merges the built-in cards, the packs and the custom cards, in
// that order. custom may be nil.
func NewLibrary(packs []*Pack, custom Custom) (*Library, error) {
	adversaries, err := CoreAdversaries()
	if err != nil {
		return nil, err
	}
	environments, err := CoreEnvironments()
	if err != nil {
		return nil, err
	}

	lib := &Library{Adversaries: adversaries, Environments: environments}
	for _, p := range packs {
		lib.Adversaries = append(lib.Adversaries, p.Adversaries...)
		lib.Environments = append(lib.Environments, p.Environments...)
	}
	if custom != nil {
		lib.Adversaries = append(lib.Adversaries, custom.Adversaries()...)
		lib.Environments = append(lib.Environments, custom.Environments()...)
	}

	return lib, nil
}

// Sources returns the distinct sources in the library, in first-seen order.
func (l *Library) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		s = card.SourceOrDefault(s)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, a := range l.Adversaries {
		add(a.Source)
	}
	for _, e := range l.Environments {
		add(e.Source)
	}
	return out
}
