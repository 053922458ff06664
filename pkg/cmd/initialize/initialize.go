/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/daggerforge/internal/config"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/pkg/cmd/workspace"
)

// Options are the settings written by init.
type Options struct {
	Workspace string
	Vault     string
	Editor    string
	Heading   string
}

func NewCmdInit(_ *state.State) *cobra.Command {
	opts := Options{}

	cmd := &cobra.Command{
		Use:         "init <vault>",
		Aliases:     []string{"i", "initialize"},
		Short:       "Point DaggerForge at your Obsidian vault.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{state.SkipAnnotation: "true"},
		Long: heredoc.Doc(`
			Writes the workspace configuration to ~/.daggerforge/cfg.yaml and
			creates the custom card and content pack directories in the vault.
			Running init again for the same workspace replaces its settings.
		`),
		Example: heredoc.Doc(`
			daggerforge init ~/vaults/campaign
			daggerforge init ~/vaults/oneshots --workspace-name oneshots --editor nvim
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := state.GetHomeDir()
			if err != nil {
				return err
			}

			opts.Vault = args[0]
			cfg, err := Run(home, opts)
			if err != nil {
				return err
			}

			ws, err := cfg.ActiveWorkspace()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace %q now uses %s\n", cfg.CurrentWorkspace, ws.VaultDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Custom cards: %s\nContent packs: %s\n", ws.DataPath(), ws.PacksPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Workspace, "workspace-name", "default", "Name of the workspace to create or replace")
	cmd.Flags().StringVar(&opts.Editor, "editor", "obsidian", "Editor used by insert --open")
	cmd.Flags().StringVar(&opts.Heading, "heading", "", "Default heading cards are inserted under")

	return cmd
}

// Run writes the workspace described by opts into the config under home and
// makes it current.
func Run(home string, opts Options) (*config.Config, error) {
	if err := config.EnsureConfigExists(home); err != nil {
		var initErr *config.ConfigInitError
		if !errors.As(err, &initErr) {
			return nil, err
		}
	}

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	dir, err := workspace.VaultDir(opts.Vault)
	if err != nil {
		return nil, err
	}

	ws := config.NewWorkspace(dir)
	ws.Editor = opts.Editor
	ws.InsertHeading = opts.Heading

	if err := cfg.PutWorkspace(opts.Workspace, ws, true); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(ws.PacksPath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create packs directory: %w", err)
	}

	return cfg, nil
}
