package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/daggerforge/internal/config"
	"github.com/Paintersrp/daggerforge/internal/state"
)

func NewCmdWorkspace(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
	}

	cmd.AddCommand(
		newCmdWorkspaceList(s),
		newCmdWorkspaceSwitch(s),
		newCmdWorkspaceAdd(s),
		newCmdWorkspaceRemove(s),
		newCmdWorkspaceEditor(s),
	)

	return cmd
}

func newCmdWorkspaceList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured workspaces",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := s.Config.WorkspaceNames()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workspaces configured")
				return nil
			}

			for _, name := range names {
				marker := " "
				if name == s.Config.CurrentWorkspace {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, name, s.Config.Workspaces[name].VaultDir)
			}

			return nil
		},
	}
}

func newCmdWorkspaceSwitch(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "switch [name]",
		Short: "Switch the active workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(args[0])
			if target == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			if err := s.Config.SwitchWorkspace(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Switched to workspace %q\n", target)
			return nil
		},
	}
}

func newCmdWorkspaceAdd(s *state.State) *cobra.Command {
	var (
		name        string
		vault       string
		makeCurrent bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("workspace name is required")
			}

			dir, err := VaultDir(vault)
			if err != nil {
				return err
			}

			ws := CloneSettings(s.Workspace)
			ws.VaultDir = dir

			if err := s.Config.PutWorkspace(name, ws, makeCurrent); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added workspace %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new workspace")
	cmd.Flags().StringVar(&vault, "vault", "", "Path to the workspace vault")
	cmd.Flags().BoolVar(&makeCurrent, "current", false, "Switch to the new workspace after creation")

	return cmd
}

func newCmdWorkspaceRemove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove an existing workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			if err := s.Config.RemoveWorkspace(name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed workspace %q\n", name)
			return nil
		},
	}
}

func newCmdWorkspaceEditor(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:       "editor [name]",
		Short:     "Change the editor used by insert --open",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"nvim", "obsidian", "vscode", "code", "vim", "nano"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.ChangeEditor(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Editor set to %s\n", args[0])
			return nil
		},
	}
}

// VaultDir validates a vault path and returns it as an absolute path.
func VaultDir(vault string) (string, error) {
	vault = strings.TrimSpace(vault)
	if vault == "" {
		return "", fmt.Errorf("vault path is required")
	}

	if strings.HasPrefix(vault, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		vault = filepath.Join(home, strings.TrimPrefix(vault, "~"))
	}

	abs, err := filepath.Abs(vault)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("vault directory %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("vault path %q is not a directory", abs)
	}

	return abs, nil
}

// CloneSettings copies the settings of src for a new workspace, leaving the
// vault empty.
func CloneSettings(src *config.Workspace) *config.Workspace {
	if src == nil {
		return config.NewWorkspace("")
	}

	return &config.Workspace{
		Editor:        src.Editor,
		DataFile:      src.DataFile,
		PacksDir:      src.PacksDir,
		InsertHeading: src.InsertHeading,
		LogLevel:      src.LogLevel,
		Search: config.SearchConfig{
			DefaultSources: append([]string(nil), src.Search.DefaultSources...),
			DefaultTiers:   append([]string(nil), src.Search.DefaultTiers...),
		},
	}
}
