package encounter

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	budget "github.com/Paintersrp/daggerforge/internal/encounter"
	"github.com/Paintersrp/daggerforge/internal/state"
)

var (
	overStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E55")).Bold(true)
	underStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

func NewCmdEncounter() *cobra.Command {
	var (
		party   int
		adds    []string
		adjusts []string
	)

	names := make([]string, len(budget.Adjustments))
	for i, a := range budget.Adjustments {
		names[i] = string(a)
	}

	cmd := &cobra.Command{
		Use:         "encounter --party N [--add Type:count ...] [--adjust name ...]",
		Aliases:     []string{"enc", "bp"},
		Short:       "Price an encounter in battle points.",
		Annotations: map[string]string{state.SkipAnnotation: "true"},
		Long: heredoc.Docf(`
			Computes the battle point budget for a party and prices the selected
			adversaries against it. The base budget is 3 points per PC plus 2.

			Minions are bought in groups the size of the party. Two or more Solos
			and an encounter without Bruisers, Hordes, Leaders or Solos adjust
			the budget automatically.

			Adjustments: %s
		`, strings.Join(names, ", ")),
		Example: heredoc.Doc(`
			daggerforge encounter --party 4 --add Solo --add Minion:8 --add Standard:2
			daggerforge encounter --party 3 --add Bruiser:2 --adjust harder
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			selections := make([]budget.Selection, 0, len(adds))
			for _, a := range adds {
				sel, err := budget.ParseSelection(a)
				if err != nil {
					return err
				}
				selections = append(selections, sel)
			}

			adjustments := make([]budget.Adjustment, 0, len(adjusts))
			for _, a := range adjusts {
				adj, err := budget.ParseAdjustment(a)
				if err != nil {
					return err
				}
				adjustments = append(adjustments, adj)
			}

			summary, err := budget.Calculate(party, selections, adjustments)
			if err != nil {
				return err
			}

			return Print(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().IntVarP(&party, "party", "p", 4, "Number of PCs in the party")
	cmd.Flags().StringArrayVarP(&adds, "add", "a", nil, "Adversaries to add as Type or Type:count")
	cmd.Flags().StringArrayVar(&adjusts, "adjust", nil, "Budget adjustments to apply")

	return cmd
}

// Print writes a readable breakdown of s.
func Print(w io.Writer, s budget.Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Party of %d: base budget %d\n", s.PartySize, s.Base)
	for _, a := range s.Adjustments {
		fmt.Fprintf(&b, "  %+d  %s\n", a.Points(), a.Label())
	}
	fmt.Fprintf(&b, "Budget: %d\n\n", s.Budget)

	for _, l := range s.Lines {
		fmt.Fprintf(&b, "  %-10s x%-3d %2d BP\n", l.Type, l.Count, l.Cost)
	}
	if len(s.Lines) > 0 {
		b.WriteString("\n")
	}

	status := fmt.Sprintf("Spent %d of %d, %d remaining", s.Spent, s.Budget, s.Remaining)
	if s.Over() {
		status = overStyle.Render(fmt.Sprintf("Spent %d of %d, %d over budget", s.Spent, s.Budget, -s.Remaining))
	} else {
		status = underStyle.Render(status)
	}
	b.WriteString(status + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
