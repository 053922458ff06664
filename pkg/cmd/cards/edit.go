package cards

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/internal/store"
)

func newCmdEdit(s *state.State) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "edit <id> --file card.yaml",
		Short: "Replace a custom card with the contents of a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		Example: heredoc.Doc(`
			daggerforge card list adversaries
			daggerforge card edit 2f0c6d1e-... --file frost-wolf.yaml
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("a card file is required, use --file")
			}

			updated, err := Update(s.Store, args[0], file)
			if err != nil {
				return err
			}

			logger.FromContext(cmd.Context()).Info("custom card updated",
				zap.String("id", args[0]),
				zap.String("file", file),
				zap.String("card", describe(updated)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", describe(updated))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file describing the card")

	return cmd
}

// Update replaces the stored card with the given ID by the card in file. The
// file is decoded as the kind of the stored card and keeps its ID.
func Update(st *store.Store, id, file string) (any, error) {
	existing, err := st.Find(id)
	if err != nil {
		return nil, err
	}

	kind := card.KindAdversary
	if _, ok := existing.(*card.Environment); ok {
		kind = card.KindEnvironment
	}

	c, err := DecodeFile(file, kind)
	if err != nil {
		return nil, err
	}

	switch v := c.(type) {
	case *card.Adversary:
		v.ID = id
		if canonical, ok := card.CanonicalType(card.KindAdversary, v.Type); ok {
			v.Type = canonical
		}
		err = st.UpdateAdversary(v)
	case *card.Environment:
		v.ID = id
		if canonical, ok := card.CanonicalType(card.KindEnvironment, v.Type); ok {
			v.Type = canonical
		}
		err = st.UpdateEnvironment(v)
	}
	if err != nil {
		return nil, err
	}

	return st.Find(id)
}
