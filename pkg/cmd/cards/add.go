package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/internal/store"
	"github.com/Paintersrp/daggerforge/pkg/shared/arg"
)

func newCmdAdd(s *state.State) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:       "add <adversary|environment> --file card.yaml",
		Short:     "Save a custom card from a YAML or JSON file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: arg.KindArgs,
		Example: heredoc.Doc(`
			daggerforge card add adversary --file frost-wolf.yaml
			daggerforge card add environment --file flooded-crypt.json
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := arg.HandleKind(args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("a card file is required, use --file")
			}

			c, err := DecodeFile(file, kind)
			if err != nil {
				return err
			}

			saved, err := Save(s.Store, c)
			if err != nil {
				return err
			}

			logger.FromContext(cmd.Context()).Info("custom card added", zap.String("file", file), zap.String("card", describe(saved)))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", describe(saved))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file describing the card")

	return cmd
}

// DecodeFile reads a single card of kind from a .yaml, .yml or .json file.
func DecodeFile(path string, kind card.Kind) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("unsupported card file %q: use .yaml, .yml or .json", path)
	}

	var c any
	if kind == card.KindEnvironment {
		c = &card.Environment{}
	} else {
		c = &card.Adversary{}
	}
	if err := unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Save adds c to st and returns the stored copy.
func Save(st *store.Store, c any) (any, error) {
	switch v := c.(type) {
	case *card.Adversary:
		if canonical, ok := card.CanonicalType(card.KindAdversary, v.Type); ok {
			v.Type = canonical
		}
		saved, err := st.AddAdversary(v)
		if err != nil {
			return nil, err
		}
		return saved, nil
	case *card.Environment:
		if canonical, ok := card.CanonicalType(card.KindEnvironment, v.Type); ok {
			v.Type = canonical
		}
		saved, err := st.AddEnvironment(v)
		if err != nil {
			return nil, err
		}
		return saved, nil
	default:
		return nil, fmt.Errorf("unsupported card %T", c)
	}
}
