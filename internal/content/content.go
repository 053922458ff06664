// Package content loads the built-in cards and the content packs kept in a
// vault.
package content

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/Paintersrp/daggerforge/internal/card"
)

//go:embed data
var embeddedData embed.FS

// CoreAdversaries returns a fresh copy of the built-in adversaries.
func CoreAdversaries() ([]*card.Adversary, error) {
	var out []*card.Adversary
	if err := decodeEmbedded("data/adversaries.json", &out); err != nil {
		return nil, err
	}
	for _, a := range out {
		a.Source = card.SourceCore
	}
	return out, nil
}

// CoreEnvironments returns a fresh copy of the built-in environments.
func CoreEnvironments() ([]*card.Environment, error) {
	var out []*card.Environment
	if err := decodeEmbedded("data/environments.json", &out); err != nil {
		return nil, err
	}
	for _, e := range out {
		e.Source = card.SourceCore
	}
	return out, nil
}

func decodeEmbedded(name string, v any) error {
	raw, err := embeddedData.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading embedded %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding embedded %s: %w", name, err)
	}
	return nil
}
