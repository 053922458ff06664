package search

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/content"
	engine "github.com/Paintersrp/daggerforge/internal/search"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/pkg/shared/arg"
	"github.com/Paintersrp/daggerforge/pkg/shared/flags"
)

const defaultWidth = 100

func NewCmdSearch(s *state.State) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "search <adversaries|environments> [query]",
		Aliases:   []string{"s", "find"},
		Short:     "Search cards by name, type or description.",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: arg.KindArgs,
		Long: heredoc.Doc(`
			Prints the cards matching the query and filters, best match first.
			Without a query every card passing the filters is listed in library
			order. Tier and source default to the workspace search settings.
		`),
		Example: heredoc.Doc(`
			daggerforge search adversaries golem
			daggerforge search adversaries --tier 1 --type horde
			daggerforge search environments --source core --json
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := arg.HandleKind(args)
			if err != nil {
				return err
			}

			updates, err := flags.HandleFilters(cmd, s.Workspace)
			if err != nil {
				return err
			}
			updates = append(updates, engine.WithQuery(strings.Join(args[1:], " ")))

			lib, err := s.Library()
			if lib == nil {
				return err
			}

			results := Run(lib, kind, updates...)
			if asJSON {
				return WriteJSON(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cards found")
				return nil
			}
			return WriteTable(cmd.OutOrStdout(), results, terminalWidth())
		},
	}

	flags.AddFilters(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the matching cards as JSON")

	return cmd
}

// Run searches the cards of kind in lib.
func Run(lib *content.Library, kind card.Kind, updates ...engine.FilterUpdate) []content.Card {
	e := lib.Engine(kind)
	e.SetFilters(updates...)
	return e.Search()
}

// WriteJSON prints the cards as an indented JSON array.
func WriteJSON(w io.Writer, results []content.Card) error {
	values := make([]any, len(results))
	for i, r := range results {
		values[i] = r.Value
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(values)
}

// WriteTable prints one row per card, truncating descriptions to fit width.
func WriteTable(w io.Writer, results []content.Card, width int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTIER\tTYPE\tSOURCE\tDESCRIPTION")

	rows := make([][4]string, len(results))
	widths := [4]int{4, 4, 4, 6}
	for i, r := range results {
		f := r.SearchFields()
		typ := f.Type
		if f.DisplayType != "" {
			typ = f.DisplayType
		}
		rows[i] = [4]string{f.Name, f.Tier, typ, card.SourceOrDefault(f.Source)}
		for j, col := range rows[i] {
			widths[j] = max(widths[j], len(col))
		}
	}
	used := widths[0] + widths[1] + widths[2] + widths[3] + 4*2
	descWidth := max(width-used, 10)

	for i, r := range results {
		desc := truncate.StringWithTail(r.SearchFields().Desc, uint(descWidth), "…")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rows[i][0], rows[i][1], rows[i][2], rows[i][3], desc)
	}

	return tw.Flush()
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
