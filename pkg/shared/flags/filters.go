package flags

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/daggerforge/internal/config"
	"github.com/Paintersrp/daggerforge/internal/search"
)

func AddFilters(cmd *cobra.Command) {
	cmd.Flags().StringSlice("tier", nil, "Only include these tiers (repeatable, comma separated)")
	cmd.Flags().StringSlice("source", nil, "Only include these sources")
	cmd.Flags().StringSlice("type", nil, "Only include these types, e.g. Solo or Horde")
}

// HandleFilters turns the filter flags into engine updates. Tiers and
// sources fall back to the workspace search defaults when the flag is not
// given.
func HandleFilters(cmd *cobra.Command, ws *config.Workspace) ([]search.FilterUpdate, error) {
	var updates []search.FilterUpdate

	tiers, err := sliceOrDefault(cmd, "tier", defaultTiers(ws))
	if err != nil {
		return nil, err
	}
	updates = append(updates, search.WithTiers(tiers...))

	sources, err := sliceOrDefault(cmd, "source", defaultSources(ws))
	if err != nil {
		return nil, err
	}
	updates = append(updates, search.WithSources(sources...))

	types, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return nil, err
	}
	updates = append(updates, search.WithTypes(types...))

	return updates, nil
}

// WorkspaceDefaults returns the filter updates configured for ws.
func WorkspaceDefaults(ws *config.Workspace) []search.FilterUpdate {
	return []search.FilterUpdate{
		search.WithTiers(defaultTiers(ws)...),
		search.WithSources(defaultSources(ws)...),
	}
}

func sliceOrDefault(cmd *cobra.Command, name string, fallback []string) ([]string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return cmd.Flags().GetStringSlice(name)
}

func defaultTiers(ws *config.Workspace) []string {
	if ws == nil {
		return nil
	}
	return ws.Search.DefaultTiers
}

func defaultSources(ws *config.Workspace) []string {
	if ws == nil {
		return nil
	}
	return ws.Search.DefaultSources
}
