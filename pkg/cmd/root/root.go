package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/config"
	"github.com/Paintersrp/daggerforge/internal/constants"
	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/pkg/cmd/browse"
	"github.com/Paintersrp/daggerforge/pkg/cmd/cards"
	"github.com/Paintersrp/daggerforge/pkg/cmd/encounter"
	"github.com/Paintersrp/daggerforge/pkg/cmd/facets"
	"github.com/Paintersrp/daggerforge/pkg/cmd/initialize"
	"github.com/Paintersrp/daggerforge/pkg/cmd/insert"
	"github.com/Paintersrp/daggerforge/pkg/cmd/roll"
	"github.com/Paintersrp/daggerforge/pkg/cmd/search"
	"github.com/Paintersrp/daggerforge/pkg/cmd/workspace"
)

// NewCmdRoot builds the command tree. s is filled in before any command
// that needs it runs, so subcommands hold the pointer and read it lazily.
func NewCmdRoot(s *state.State) *cobra.Command {
	var workspaceName string

	cmd := &cobra.Command{
		Use:     "daggerforge",
		Aliases: []string{"dforge", "df"},
		Short:   "Browse, search and insert DaggerForge stat blocks into your Obsidian vault.",
		Long: heredoc.Doc(`
			DaggerForge keeps adversary and environment cards close to your session notes.

			Browse the built-in cards, your content packs and your own custom cards,
			filter them by tier, source and type, and drop formatted stat blocks
			straight into a note or canvas.

			  daggerforge init ~/vaults/campaign
			  daggerforge browse adversaries --target Sessions/Session-04
			  daggerforge search adversaries golem --tier 2
		`),
		Version:       constants.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsState(cmd) {
				return nil
			}
			if err := load(s, viper.GetString("workspace")); err != nil {
				return err
			}
			attachLogger(cmd, s.Logger)
			return nil
		},
		// Opens the adversary browser when no subcommand is given.
		RunE: browse.NewCmdBrowse(s).RunE,
	}

	cmd.PersistentFlags().
		StringVarP(&workspaceName, "workspace", "w", "", "Workspace to use for this command.")
	_ = viper.BindPFlag("workspace", cmd.PersistentFlags().Lookup("workspace"))

	cmd.SetUsageTemplate(constants.Help)

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		browse.NewCmdBrowse(s),
		search.NewCmdSearch(s),
		facets.NewCmdFacets(s),
		insert.NewCmdInsert(s),
		cards.NewCmdCard(s),
		roll.NewCmdRoll(),
		encounter.NewCmdEncounter(),
		workspace.NewCmdWorkspace(s),
	)

	return cmd
}

func skipsState(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[state.SkipAnnotation]; ok {
			return true
		}
	}
	return false
}

// attachLogger makes log available to the running command through its
// context.
func attachLogger(cmd *cobra.Command, log *zap.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.ContextWithLogger(ctx, log))
}

func load(s *state.State, workspaceName string) error {
	loaded, err := state.NewState(workspaceName)
	if err != nil {
		var initErr *config.ConfigInitError
		if errors.As(err, &initErr) {
			return fmt.Errorf("%w\nhint: run 'daggerforge init <vault>' to configure a vault", err)
		}
		return err
	}

	*s = *loaded
	return nil
}
