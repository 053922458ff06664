package flags

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/daggerforge/internal/fzf"
	"github.com/Paintersrp/daggerforge/internal/pathutil"
)

func AddTarget(cmd *cobra.Command) {
	cmd.Flags().
		StringP("target", "t", "", "Note or canvas to insert into, relative to the vault. Prompts with a picker when omitted.")
}

// HandleTarget resolves the --target flag inside the vault, falling back to
// the fuzzy picker when it is not set.
func HandleTarget(cmd *cobra.Command, vaultDir string) (string, error) {
	target, err := cmd.Flags().GetString("target")
	if err != nil {
		return "", err
	}

	return ResolveTarget(vaultDir, target)
}

// ResolveTarget returns target inside the vault, or the picker's choice
// when target is empty.
func ResolveTarget(vaultDir, target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		finder := fzf.NewFuzzyFinder(vaultDir, "Select a note or canvas to insert into.")
		return finder.Run("")
	}

	return pathutil.ResolveTarget(vaultDir, target)
}

func AddHeading(cmd *cobra.Command) {
	cmd.Flags().
		String("heading", "", "Insert at the end of the section under this heading. Defaults to the workspace insert_heading.")
}

// HandleHeading returns the --heading flag, or fallback when it was not
// given on the command line.
func HandleHeading(cmd *cobra.Command, fallback string) string {
	if !cmd.Flags().Changed("heading") {
		return fallback
	}
	heading, _ := cmd.Flags().GetString("heading")
	return heading
}
