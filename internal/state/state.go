package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/config"
	"github.com/Paintersrp/daggerforge/internal/constants"
	"github.com/Paintersrp/daggerforge/internal/content"
	"github.com/Paintersrp/daggerforge/internal/handler"
	"github.com/Paintersrp/daggerforge/internal/insert"
	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/store"
	"github.com/Paintersrp/daggerforge/internal/templater"
)

// SkipAnnotation marks commands that run without a loaded State, such as
// init.
const SkipAnnotation = "daggerforge/skip-state"

type State struct {
	Config        *config.Config
	Workspace     *config.Workspace
	WorkspaceName string
	Templater     *templater.Templater
	Handler       *handler.FileHandler
	Store         *store.Store
	Logger        *zap.Logger
	Counter       *insert.Counter
	Home          string
	Vault         string
}

func NewState(workspaceOverride string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	if workspaceOverride != "" {
		if err := cfg.ActivateWorkspace(workspaceOverride); err != nil {
			return nil, err
		}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(ws.LogLevel, filepath.Join(home, constants.ConfigDir, constants.LogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	t, err := templater.NewTemplater()
	if err != nil {
		return nil, fmt.Errorf("failed to create templater: %w", err)
	}

	st, err := store.Open(ws.DataPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open card data: %w", err)
	}

	log.Debug("state ready",
		zap.String("workspace", cfg.CurrentWorkspace),
		zap.String("vault", ws.VaultDir),
		zap.String("data", ws.DataPath()),
	)

	return &State{
		Config:        cfg,
		Workspace:     ws,
		WorkspaceName: cfg.CurrentWorkspace,
		Templater:     t,
		Handler:       handler.NewFileHandler(ws.VaultDir),
		Store:         st,
		Logger:        log,
		Counter:       &insert.Counter{},
		Home:          home,
		Vault:         ws.VaultDir,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	_ = viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Library merges the built-in cards, the vault packs and the custom cards.
// A pack that fails to load is logged and reported through the error while
// the library is still returned; a nil library means nothing could be
// loaded.
func (s *State) Library() (*content.Library, error) {
	packs, packErr := content.LoadPacks(s.Workspace.PacksPath())
	if packErr != nil {
		s.Logger.Warn("some content packs failed to load", zap.Error(packErr))
	}

	lib, err := content.NewLibrary(packs, s.Store)
	if err != nil {
		return nil, err
	}

	s.Logger.Debug("library loaded",
		zap.Int("adversaries", len(lib.Adversaries)),
		zap.Int("environments", len(lib.Environments)),
		zap.Int("packs", len(packs)),
	)
	return lib, packErr
}

// ReloadStore re-reads the custom card sidecar after an external change.
func (s *State) ReloadStore() error {
	st, err := store.Open(s.Workspace.DataPath())
	if err != nil {
		return err
	}
	s.Store = st
	return nil
}

// NewWatcher watches the sidecar and the pack directory of the workspace.
func (s *State) NewWatcher() (*CardWatcher, error) {
	return NewCardWatcher(s.Workspace.DataPath(), s.Workspace.PacksPath(), s.Logger)
}

// Close flushes the logger.
func (s *State) Close() error {
	if s == nil || s.Logger == nil {
		return nil
	}
	if err := s.Logger.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}
