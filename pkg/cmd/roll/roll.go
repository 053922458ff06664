package roll

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/daggerforge/internal/dice"
	"github.com/Paintersrp/daggerforge/internal/state"
)

func NewCmdRoll() *cobra.Command {
	var (
		duality  bool
		modifier int
		times    int
		seed     int64
	)

	cmd := &cobra.Command{
		Use:         "roll [expression] [--duality] [--mod N]",
		Aliases:     []string{"r"},
		Short:       "Roll dice expressions or the Hope and Fear duality dice.",
		Annotations: map[string]string{state.SkipAnnotation: "true"},
		Long: heredoc.Doc(`
			Rolls an expression such as 2d6+3 or 1d20+1d4-1, or the duality dice.

			A duality roll adds both d12s and the modifier. The result is with
			Hope when the Hope die is higher, with Fear when the Fear die is
			higher, and a critical success when they match.
		`),
		Example: heredoc.Doc(`
			daggerforge roll 2d8+3
			daggerforge roll --duality --mod 2
			daggerforge roll d20 --times 3
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng *rand.Rand
			if seed != 0 {
				rng = rand.New(rand.NewSource(seed)) //nolint:gosec // game dice
			}
			r := dice.NewRoller(rng)

			expr := strings.Join(args, "")
			if !duality && expr == "" {
				return fmt.Errorf("give a dice expression or use --duality")
			}
			if times < 1 {
				return fmt.Errorf("--times must be at least 1")
			}

			var e dice.Expression
			if !duality {
				parsed, err := dice.Parse(expr)
				if err != nil {
					return err
				}
				e = parsed
			}

			for range times {
				if duality {
					fmt.Fprintln(cmd.OutOrStdout(), r.Duality(modifier))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.RollExpression(e))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&duality, "duality", "d", false, "Roll the Hope and Fear d12s")
	cmd.Flags().IntVarP(&modifier, "mod", "m", 0, "Modifier added to a duality roll")
	cmd.Flags().IntVarP(&times, "times", "n", 1, "Number of times to roll")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible rolls")
	_ = cmd.Flags().MarkHidden("seed")

	return cmd
}
