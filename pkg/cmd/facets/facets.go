package facets

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/content"
	"github.com/Paintersrp/daggerforge/internal/search"
	"github.com/Paintersrp/daggerforge/internal/state"
)

func NewCmdFacets(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "facets <adversaries|environments> <tiers|sources|types>",
		Short:     "List the tiers, sources or types available to filter on.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"adversaries", "environments", "tiers", "sources", "types"},
		Example: heredoc.Doc(`
			daggerforge facets adversaries types
			daggerforge facets environments sources
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := card.ParseKind(args[0])
			if err != nil {
				return err
			}
			facet, ok := search.ParseFacet(args[1])
			if !ok {
				return fmt.Errorf("unknown facet %q: expected tiers, sources or types", args[1])
			}

			lib, err := s.Library()
			if lib == nil {
				return err
			}

			return Print(cmd.OutOrStdout(), lib, kind, facet)
		},
	}

	return cmd
}

// Print writes the available values of facet, one per line.
func Print(w io.Writer, lib *content.Library, kind card.Kind, facet search.Facet) error {
	for _, v := range lib.Engine(kind).AvailableOptions(facet) {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
