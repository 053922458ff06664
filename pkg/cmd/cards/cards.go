package cards

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/fzf"
	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/internal/store"
	"github.com/Paintersrp/daggerforge/pkg/cmd/insert"
	"github.com/Paintersrp/daggerforge/pkg/shared/arg"
)

func NewCmdCard(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "card",
		Aliases: []string{"cards", "c"},
		Short:   "Manage the custom cards saved in the vault.",
		Long: heredoc.Doc(`
			Custom cards live in the workspace data file, .daggerforge/data.json
			inside the vault by default. They show up in search and the browser
			with the source "custom" unless they declare their own.
		`),
	}

	cmd.AddCommand(
		newCmdAdd(s),
		newCmdEdit(s),
		newCmdNew(s),
		newCmdList(s),
		newCmdShow(s),
		newCmdRemove(s),
	)

	return cmd
}

func newCmdList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:       "list [adversaries|environments]",
		Aliases:   []string{"ls"},
		Short:     "List custom cards with their IDs",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: arg.KindArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := arg.HandleKind(args)
			if err != nil {
				return err
			}
			return List(cmd.OutOrStdout(), s.Store, kind)
		},
	}
}

// List prints the custom cards of kind held by st.
func List(w io.Writer, st *store.Store, kind card.Kind) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTIER\tTYPE\tSOURCE")

	n := 0
	if kind == card.KindEnvironment {
		for _, e := range st.Environments() {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", e.ID, e.Name, e.Tier, e.Type, card.SourceOrDefault(e.Source))
			n++
		}
	} else {
		for _, a := range st.Adversaries() {
			typ := a.Type
			if dt := a.DisplayType(); dt != "" {
				typ = dt
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", a.ID, a.Name, a.Tier, typ, card.SourceOrDefault(a.Source))
			n++
		}
	}

	if n == 0 {
		_, err := fmt.Fprintf(w, "No custom %s saved\n", kind.Plural())
		return err
	}
	return tw.Flush()
}

func newCmdShow(s *state.State) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <adversary|environment> <name>",
		Short: "Print a card's stat block",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := arg.HandleKind(args)
			if err != nil {
				return err
			}
			name, err := arg.HandleName(args)
			if err != nil {
				return err
			}

			lib, err := s.Library()
			if lib == nil {
				return err
			}

			c, err := insert.Choose(lib, kind, name, s.Templater.Render)
			if err != nil {
				return err
			}

			md, err := s.Templater.Render(c.Value)
			if err != nil {
				return err
			}
			if raw {
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), fzf.RenderMarkdown(md, 80))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown instead of rendering it")

	return cmd
}

func newCmdRemove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a custom card by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := s.Store.Find(args[0])
			if err != nil {
				return err
			}
			if err := s.Store.Delete(args[0]); err != nil {
				return err
			}

			logger.FromContext(cmd.Context()).Info("custom card removed", zap.String("id", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", describe(found))
			return nil
		},
	}
}

func describe(c any) string {
	switch v := c.(type) {
	case *card.Adversary:
		return fmt.Sprintf("adversary %q (%s)", v.Name, v.ID)
	case *card.Environment:
		return fmt.Sprintf("environment %q (%s)", v.Name, v.ID)
	default:
		return "card"
	}
}
