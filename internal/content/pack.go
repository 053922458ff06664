package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Paintersrp/daggerforge/internal/card"
	"gopkg.in/yaml.v3"
)

// Pack is a user-supplied bundle of cards.
type Pack struct {
	Name         string              `json:"name"         yaml:"name"`
	Adversaries  []*card.Adversary   `json:"adversaries"  yaml:"adversaries"`
	Environments []*card.Environment `json:"environments" yaml:"environments"`

	// Path is the file the pack was read from.
	Path string `json:"-" yaml:"-"`
}

// PackError reports a pack file that could not be loaded.
type PackError struct {
	Path string
	Err  error
}

func (e *PackError) Error() string {
	return fmt.Sprintf("pack %s: %v", e.Path, e.Err)
}

func (e *PackError) Unwrap() error {
	return e.Err
}

// LoadPack reads a single pack file. The format is chosen by extension.
// Cards without a source are stamped with the pack name, which defaults to
// the file name without its extension.
func LoadPack(path string) (*Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &PackError{Path: path, Err: err}
	}

	var p Pack
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &p)
	default:
		err = fmt.Errorf("unsupported pack format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, &PackError{Path: path, Err: err}
	}

	p.Path = path
	if strings.TrimSpace(p.Name) == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	for i, a := range p.Adversaries {
		if a == nil {
			return nil, &PackError{Path: path, Err: fmt.Errorf("adversary %d is empty", i)}
		}
		if a.Source == "" {
			a.Source = p.Name
		}
		if err := card.Validate(a); err != nil {
			return nil, &PackError{Path: path, Err: fmt.Errorf("adversary %q: %w", a.Name, err)}
		}
	}
	for i, e := range p.Environments {
		if e == nil {
			return nil, &PackError{Path: path, Err: fmt.Errorf("environment %d is empty", i)}
		}
		if e.Source == "" {
			e.Source = p.Name
		}
		if err := card.Validate(e); err != nil {
			return nil, &PackError{Path: path, Err: fmt.Errorf("environment %q: %w", e.Name, err)}
		}
	}

	return &p, nil
}

// LoadPacks reads every pack in dir, sorted by file name. A missing
// directory yields no packs. Packs that fail to load are reported through
// the joined error while the others are still returned.
func LoadPacks(dir string) ([]*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading packs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsPackFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var (
		packs []*Pack
		errs  []error
	)
	for _, name := range names {
		p, err := LoadPack(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		packs = append(packs, p)
	}

	return packs, errors.Join(errs...)
}

// IsPackFile reports whether name has a pack file extension.
func IsPackFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return !strings.HasPrefix(filepath.Base(name), ".")
	default:
		return false
	}
}
