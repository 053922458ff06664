package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/daggerforge/internal/constants"
)

type SearchConfig struct {
	DefaultSources []string `yaml:"default_sources" json:"default_sources"`
	DefaultTiers   []string `yaml:"default_tiers"   json:"default_tiers"`
}

type Workspace struct {
	VaultDir      string       `yaml:"vaultdir"       json:"vault_dir"`
	Editor        string       `yaml:"editor"         json:"editor"`
	DataFile      string       `yaml:"data_file"      json:"data_file"`
	PacksDir      string       `yaml:"packs_dir"      json:"packs_dir"`
	InsertHeading string       `yaml:"insert_heading" json:"insert_heading"`
	LogLevel      string       `yaml:"log_level"      json:"log_level"`
	Search        SearchConfig `yaml:"search"         json:"search"`
}

type Config struct {
	Workspaces       map[string]*Workspace `yaml:"workspaces"        json:"workspaces"`
	CurrentWorkspace string                `yaml:"current_workspace" json:"current_workspace"`

	home   string     `yaml:"-"`
	active *Workspace `yaml:"-"`
}

const defaultWorkspaceName = "default"

var validEditorNames = []string{"nvim", "obsidian", "vscode", "code", "vim", "nano"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		validEditorList(),
	)
}

func validEditorList() string {
	quoted := make([]string, len(validEditorNames))
	for i, name := range validEditorNames {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// NewWorkspace returns a workspace for vaultDir with every default applied.
func NewWorkspace(vaultDir string) *Workspace {
	ws := &Workspace{VaultDir: vaultDir}
	ws.ensureDefaults()
	return ws
}

func (ws *Workspace) ensureDefaults() {
	if strings.TrimSpace(ws.DataFile) == "" {
		ws.DataFile = constants.DefaultDataFile
	}
	if strings.TrimSpace(ws.PacksDir) == "" {
		ws.PacksDir = constants.DefaultPacksDir
	}
	if strings.TrimSpace(ws.LogLevel) == "" {
		ws.LogLevel = constants.DefaultLogLevel
	}
	if ws.Search.DefaultSources == nil {
		ws.Search.DefaultSources = []string{}
	}
	if ws.Search.DefaultTiers == nil {
		ws.Search.DefaultTiers = []string{}
	}
}

// DataPath resolves the custom card sidecar inside the vault.
func (ws *Workspace) DataPath() string {
	return ws.resolve(ws.DataFile)
}

// PacksPath resolves the content pack directory inside the vault.
func (ws *Workspace) PacksPath() string {
	return ws.resolve(ws.PacksDir)
}

func (ws *Workspace) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(ws.VaultDir, filepath.FromSlash(p))
}

func (ws *Workspace) validate() error {
	if ws.Editor != "" {
		if err := ValidateEditor(ws.Editor); err != nil {
			return err
		}
	}
	if !ValidLogLevels[ws.LogLevel] {
		return fmt.Errorf("invalid log level: %q", ws.LogLevel)
	}
	return nil
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{home: home}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	if err := ws.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if cfg.CurrentWorkspace == "" {
		if len(cfg.Workspaces) == 0 {
			cfg.Workspaces[defaultWorkspaceName] = NewWorkspace("")
			cfg.CurrentWorkspace = defaultWorkspaceName
		} else {
			cfg.CurrentWorkspace = cfg.WorkspaceNames()[0]
		}
	}

	return cfg.setActiveWorkspace(cfg.CurrentWorkspace)
}

func (cfg *Config) setActiveWorkspace(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	ws, ok := cfg.Workspaces[name]
	if !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	if ws == nil {
		ws = NewWorkspace("")
		cfg.Workspaces[name] = ws
	}

	ws.ensureDefaults()
	cfg.CurrentWorkspace = name
	cfg.active = ws

	syncWorkspaceWithViper(ws)

	return nil
}

func syncWorkspaceWithViper(ws *Workspace) {
	viper.Set("vaultdir", ws.VaultDir)
	viper.Set("editor", ws.Editor)
	viper.Set("data_file", ws.DataFile)
	viper.Set("packs_dir", ws.PacksDir)
	viper.Set("insert_heading", ws.InsertHeading)
	viper.Set("log_level", ws.LogLevel)
	viper.Set("search.default_sources", append([]string(nil), ws.Search.DefaultSources...))
	viper.Set("search.default_tiers", append([]string(nil), ws.Search.DefaultTiers...))
}

func (cfg *Config) ActiveWorkspace() (*Workspace, error) {
	if cfg.active != nil {
		return cfg.active, nil
	}

	if cfg.CurrentWorkspace == "" {
		return nil, fmt.Errorf("no workspace is currently selected")
	}

	if err := cfg.setActiveWorkspace(cfg.CurrentWorkspace); err != nil {
		return nil, err
	}

	return cfg.active, nil
}

func (cfg *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(cfg.Workspaces))
	for name := range cfg.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActivateWorkspace selects a workspace for this run without saving.
func (cfg *Config) ActivateWorkspace(name string) error {
	return cfg.setActiveWorkspace(name)
}

func (cfg *Config) SwitchWorkspace(name string) error {
	if err := cfg.setActiveWorkspace(name); err != nil {
		return err
	}
	return cfg.Save()
}

// PutWorkspace adds or replaces a workspace and saves the config.
func (cfg *Config) PutWorkspace(name string, ws *Workspace, makeCurrent bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}

	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if ws == nil {
		ws = NewWorkspace("")
	}
	ws.ensureDefaults()
	if err := ws.validate(); err != nil {
		return err
	}
	cfg.Workspaces[trimmed] = ws

	if cfg.CurrentWorkspace == "" || cfg.CurrentWorkspace == trimmed || makeCurrent {
		if err := cfg.setActiveWorkspace(trimmed); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) RemoveWorkspace(name string) error {
	if len(cfg.Workspaces) <= 1 {
		return fmt.Errorf("cannot remove the last workspace")
	}

	if _, exists := cfg.Workspaces[name]; !exists {
		return fmt.Errorf("workspace %q does not exist", name)
	}

	delete(cfg.Workspaces, name)

	if cfg.CurrentWorkspace == name {
		cfg.active = nil
		cfg.CurrentWorkspace = ""
		if err := cfg.ensureInitialized(); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) ChangeEditor(editor string) error {
	if err := ValidateEditor(editor); err != nil {
		return err
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	ws.Editor = editor
	return cfg.Save()
}

// GetConfigPath returns the file this config is saved to.
func (cfg *Config) GetConfigPath() string {
	if cfg.home != "" {
		return GetConfigPath(cfg.home)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) Save() error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if err := ws.validate(); err != nil {
		return err
	}

	syncWorkspaceWithViper(ws)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
