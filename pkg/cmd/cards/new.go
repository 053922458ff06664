package cards

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/pkg/shared/arg"
)

var ranges = []string{"Melee", "Very Close", "Close", "Far", "Very Far"}

// prompter asks the questions of the card wizard.
type prompter interface {
	Select(prompt string, choices []string) (string, error)
	Input(prompt, placeholder string, required bool) (string, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Select(prompt string, choices []string) (string, error) {
	sel := selection.New(prompt, choices)
	sel.Filter = nil
	return sel.RunPrompt()
}

func (terminalPrompter) Input(prompt, placeholder string, required bool) (string, error) {
	input := textinput.New(prompt)
	input.Placeholder = placeholder
	if !required {
		input.Validate = nil
	}
	value, err := input.RunPrompt()
	return strings.TrimSpace(value), err
}

func newCmdNew(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:       "new <adversary|environment>",
		Short:     "Create a custom card interactively",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: arg.KindArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := arg.HandleKind(args)
			if err != nil {
				return err
			}

			c, err := Prompt(terminalPrompter{}, kind)
			if err != nil {
				return err
			}

			saved, err := Save(s.Store, c)
			if err != nil {
				return err
			}

			logger.FromContext(cmd.Context()).Info("custom card created", zap.String("card", describe(saved)))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", describe(saved))
			return nil
		},
	}
}

// Prompt walks the user through the fields of a new card of kind.
func Prompt(p prompter, kind card.Kind) (any, error) {
	w := wizard{p: p}

	name := w.input("Name:", "Frost Wolf", true)
	tier := w.number(w.choose("Tier:", []string{"1", "2", "3", "4"}))
	typ := w.choose("Type:", card.TypesFor(kind))
	desc := w.input("Description:", "", false)

	if kind == card.KindEnvironment {
		e := &card.Environment{
			Name:                 name,
			Tier:                 tier,
			Type:                 typ,
			Desc:                 desc,
			Impulses:             w.input("Impulses:", "Drown the unwary, sweep away the bridge", false),
			Difficulty:           w.number(w.input("Difficulty (0 for special):", "12", false)),
			PotentialAdversaries: w.input("Potential adversaries:", "", false),
		}
		return e, w.err
	}

	a := &card.Adversary{
		Name: name,
		Tier: tier,
		Type: typ,
		Desc: desc,
	}
	if typ == "Horde" {
		a.HordeSize = w.number(w.input("Horde size (per HP):", "5", true))
	}
	a.Motives = w.input("Motives & tactics:", "", false)
	a.Difficulty = w.number(w.input("Difficulty:", "12", true))
	a.MajorThreshold = w.number(w.input("Major threshold (0 for none):", "8", false))
	a.SevereThreshold = w.number(w.input("Severe threshold (0 for none):", "15", false))
	a.HP = w.number(w.input("HP:", "5", true))
	a.Stress = w.number(w.input("Stress:", "3", true))
	a.Attack = w.input("Attack modifier:", "+1", false)
	a.Weapon = w.input("Weapon:", "Claws", false)
	a.Range = w.choose("Range:", ranges)
	a.Damage = w.input("Damage:", "1d8+2 phy", false)

	return a, w.err
}

// wizard stops asking once a prompt has failed and keeps the first error.
type wizard struct {
	p   prompter
	err error
}

func (w *wizard) choose(prompt string, choices []string) string {
	if w.err != nil {
		return ""
	}
	v, err := w.p.Select(prompt, choices)
	w.err = err
	return v
}

func (w *wizard) input(prompt, placeholder string, required bool) string {
	if w.err != nil {
		return ""
	}
	v, err := w.p.Input(prompt, placeholder, required)
	w.err = err
	return v
}

func (w *wizard) number(v string) int {
	if w.err != nil || v == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
	if err != nil {
		w.err = errors.Join(fmt.Errorf("%q is not a number", v), err)
	}
	return n
}
