package browse

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/cache"
	"github.com/Paintersrp/daggerforge/internal/content"
	"github.com/Paintersrp/daggerforge/internal/fzf"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/internal/tui/browser"
	"github.com/Paintersrp/daggerforge/pkg/shared/arg"
	"github.com/Paintersrp/daggerforge/pkg/shared/flags"
)

func NewCmdBrowse(s *state.State) *cobra.Command {
	var (
		target  string
		heading string
	)

	cmd := &cobra.Command{
		Use:       "browse [adversaries|environments]",
		Aliases:   []string{"b"},
		Short:     "Browse cards interactively and insert them into a note or canvas.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: arg.KindArgs,
		Long: heredoc.Doc(`
			Opens the card browser. Type to search, then narrow the results with
			the tier (t), source (s) and type (y) toggles. Enter inserts the
			selected card into the target note or canvas.

			Without --target a picker lists the notes and canvases in the vault
			before the browser opens. Dismiss it to browse without inserting.
		`),
		Example: heredoc.Doc(`
			daggerforge browse
			daggerforge browse environments --target Sessions/Session-04
			daggerforge b adversaries --target Maps/Dungeon.canvas --heading Encounter
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("heading") {
				heading = s.Workspace.InsertHeading
			}
			return run(s, args, target, heading)
		},
	}

	cmd.Flags().
		StringVarP(&target, "target", "t", "", "Note or canvas to insert into, relative to the vault.")
	cmd.Flags().
		StringVar(&heading, "heading", "", "Insert at the end of the section under this heading.")

	return cmd
}

func run(s *state.State, args []string, target, heading string) error {
	kind, err := arg.HandleKind(args)
	if err != nil {
		return err
	}

	lib, err := s.Library()
	if lib == nil {
		return err
	}

	path, err := flags.ResolveTarget(s.Vault, target)
	switch {
	case errors.Is(err, fzf.ErrNoSelection):
		path = ""
	case err != nil:
		return err
	}

	previews, err := cache.New(cache.DefaultSize)
	if err != nil {
		return err
	}

	opts := browser.Options{
		Kind:     kind,
		Library:  lib,
		Defaults: flags.WorkspaceDefaults(s.Workspace),
		Render:   s.Templater.Render,
		Reload: func() (*content.Library, error) {
			if err := s.ReloadStore(); err != nil {
				return nil, err
			}
			return s.Library()
		},
		Status: func(l *content.Library) string {
			return state.StatusLine(s.WorkspaceName, l)
		},
		Cache: previews,
	}

	if path != "" {
		opts.Insert = func(c any) (string, error) {
			return s.InsertCard(c, path, heading)
		}
	}

	watcher, err := s.NewWatcher()
	if err != nil {
		s.Logger.Warn("card watcher unavailable", zap.Error(err))
	} else {
		defer watcher.Close()
		opts.Watch = watcher.Start
	}

	if _, err := tea.NewProgram(browser.New(opts), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}

	if n := s.Counter.Value(); n > 0 {
		fmt.Printf("Inserted %d card(s) into %s\n", n, path)
	}
	return nil
}
