package insert

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/content"
	"github.com/Paintersrp/daggerforge/internal/editor"
	"github.com/Paintersrp/daggerforge/internal/fzf"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/pkg/shared/arg"
	"github.com/Paintersrp/daggerforge/pkg/shared/flags"
)

var (
	writeClipboard = clipboard.WriteAll
	pick           = fzf.Pick
)

func NewCmdInsert(s *state.State) *cobra.Command {
	var (
		toClipboard bool
		open        bool
	)

	cmd := &cobra.Command{
		Use:     "insert <adversary|environment> <name> [--target file] [--heading heading] [--clipboard]",
		Aliases: []string{"i", "add"},
		Short:   "Insert a card's stat block into a note or canvas.",
		Args:    cobra.MinimumNArgs(2),
		Long: heredoc.Doc(`
			Renders the named card and inserts it into the target note or canvas.
			Names are matched exactly first, ignoring case, and fuzzily otherwise.
			When several cards match, a picker lets you choose.

			With --clipboard and no --target the stat block is only copied.
		`),
		Example: heredoc.Doc(`
			daggerforge insert adversary "Ice Golem" --target Sessions/Session-04
			daggerforge insert env "Raging River" --target Maps/Crossing.canvas
			daggerforge insert adversary bear --clipboard
		`),
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

			c, err := Choose(lib, kind, name, s.Templater.Render)
			if err != nil {
				return err
			}

			if toClipboard {
				md, err := s.Templater.Render(c.Value)
				if err != nil {
					return err
				}
				if err := writeClipboard(md); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to the clipboard\n", c.Name())
				if !cmd.Flags().Changed("target") {
					return nil
				}
			}

			target, err := flags.HandleTarget(cmd, s.Vault)
			if err != nil {
				return err
			}

			status, err := s.InsertCard(c.Value, target, flags.HandleHeading(cmd, s.Workspace.InsertHeading))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)

			if open {
				return editor.Open(s.Workspace.Editor, s.Vault, target)
			}
			return nil
		},
	}

	flags.AddTarget(cmd)
	flags.AddHeading(cmd)
	cmd.Flags().BoolVarP(&toClipboard, "clipboard", "c", false, "Copy the rendered stat block to the clipboard")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the target in the workspace editor afterwards")

	return cmd
}

// Choose resolves name to a single card, asking the user to pick when the
// name is ambiguous.
func Choose(
	lib *content.Library,
	kind card.Kind,
	name string,
	render func(any) (string, error),
) (content.Card, error) {
	matches := lib.Lookup(kind, name)
	switch len(matches) {
	case 0:
		return content.Card{}, fmt.Errorf("no %s matches %q", kind, name)
	case 1:
		return matches[0], nil
	}

	labels := make([]string, len(matches))
	for i, m := range matches {
		f := m.SearchFields()
		labels[i] = fmt.Sprintf("%s (Tier %s, %s)", m.Name(), f.Tier, card.SourceOrDefault(f.Source))
	}

	preview := func(i, w, _ int) string {
		if i < 0 {
			return ""
		}
		md, err := render(matches[i].Value)
		if err != nil {
			return err.Error()
		}
		return fzf.RenderMarkdown(md, w)
	}

	idx, err := pick(labels, strings.TrimSpace(name), fmt.Sprintf("Several %s match %q", kind.Plural(), name), preview)
	if err != nil {
		return content.Card{}, err
	}
	return matches[idx], nil
}
