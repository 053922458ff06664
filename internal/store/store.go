// Package store persists the cards a user authors in a JSON file kept inside
// the vault.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Paintersrp/daggerforge/internal/card"
)

// Version is the sidecar format version written by this package.
const Version = 1

var (
	ErrNotFound    = errors.New("card not found")
	ErrInvalidData = errors.New("invalid card data")
)

type document struct {
	Version      int                 `json:"version"`
	Adversaries  []*card.Adversary   `json:"adversaries"`
	Environments []*card.Environment `json:"environments"`
}

// Store is the custom card sidecar. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// Open loads the sidecar at path. A missing file opens an empty store; the
// file is only created by the first write.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		doc: document{
			Version:      Version,
			Adversaries:  []*card.Adversary{},
			Environments: []*card.Environment{},
		},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return s, nil
	}

	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidData, err)
	}
	if doc.Adversaries == nil {
		doc.Adversaries = []*card.Adversary{}
	}
	if doc.Environments == nil {
		doc.Environments = []*card.Environment{}
	}
	s.doc = doc

	return s, nil
}

// Path returns the sidecar location.
func (s *Store) Path() string {
	return s.path
}

// Adversaries returns copies of the stored adversaries.
func (s *Store) Adversaries() []*card.Adversary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*card.Adversary, len(s.doc.Adversaries))
	for i, a := range s.doc.Adversaries {
		out[i] = cloneAdversary(a)
	}
	return out
}

// Environments returns copies of the stored environments.
func (s *Store) Environments() []*card.Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*card.Environment, len(s.doc.Environments))
	for i, e := range s.doc.Environments {
		out[i] = cloneEnvironment(e)
	}
	return out
}

// AddAdversary validates a, assigns it a new ID and persists it. The stored
// copy is returned.
func (s *Store) AddAdversary(a *card.Adversary) (*card.Adversary, error) {
	c := cloneAdversary(a)
	c.ID = uuid.NewString()
	if c.Source == "" {
		c.Source = card.SourceCustom
	}
	if err := card.Validate(c); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc
	next.Adversaries = append(slices.Clone(s.doc.Adversaries), c)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return cloneAdversary(c), nil
}

// UpdateAdversary replaces the stored adversary with the same ID.
func (s *Store) UpdateAdversary(a *card.Adversary) error {
	c := cloneAdversary(a)
	if c.Source == "" {
		c.Source = card.SourceCustom
	}
	if err := card.Validate(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.doc.Adversaries, func(x *card.Adversary) bool { return x.ID == c.ID })
	if c.ID == "" || i < 0 {
		return fmt.Errorf("adversary %q: %w", c.ID, ErrNotFound)
	}

	next := s.doc
	next.Adversaries = slices.Clone(s.doc.Adversaries)
	next.Adversaries[i] = c
	return s.commit(next)
}

// DeleteAdversary removes the adversary with the given ID.
func (s *Store) DeleteAdversary(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.doc.Adversaries, func(x *card.Adversary) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("adversary %q: %w", id, ErrNotFound)
	}

	next := s.doc
	next.Adversaries = slices.Delete(slices.Clone(s.doc.Adversaries), i, i+1)
	return s.commit(next)
}

// AddEnvironment validates e, assigns it a new ID and persists it.
func (s *Store) AddEnvironment(e *card.Environment) (*card.Environment, error) {
	c := cloneEnvironment(e)
	c.ID = uuid.NewString()
	if c.Source == "" {
		c.Source = card.SourceCustom
	}
	if err := card.Validate(c); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc
	next.Environments = append(slices.Clone(s.doc.Environments), c)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return cloneEnvironment(c), nil
}

// UpdateEnvironment replaces the stored environment with the same ID.
func (s *Store) UpdateEnvironment(e *card.Environment) error {
	c := cloneEnvironment(e)
	if c.Source == "" {
		c.Source = card.SourceCustom
	}
	if err := card.Validate(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.doc.Environments, func(x *card.Environment) bool { return x.ID == c.ID })
	if c.ID == "" || i < 0 {
		return fmt.Errorf("environment %q: %w", c.ID, ErrNotFound)
	}

	next := s.doc
	next.Environments = slices.Clone(s.doc.Environments)
	next.Environments[i] = c
	return s.commit(next)
}

// DeleteEnvironment removes the environment with the given ID.
func (s *Store) DeleteEnvironment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.doc.Environments, func(x *card.Environment) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("environment %q: %w", id, ErrNotFound)
	}

	next := s.doc
	next.Environments = slices.Delete(slices.Clone(s.doc.Environments), i, i+1)
	return s.commit(next)
}

// Find looks a card up by ID across both kinds. The result is an
// *card.Adversary or an *card.Environment.
func (s *Store) Find(id string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.doc.Adversaries {
		if a.ID == id {
			return cloneAdversary(a), nil
		}
	}
	for _, e := range s.doc.Environments {
		if e.ID == id {
			return cloneEnvironment(e), nil
		}
	}
	return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
}

// Delete removes a card of either kind by ID.
func (s *Store) Delete(id string) error {
	c, err := s.Find(id)
	if err != nil {
		return err
	}
	if _, ok := c.(*card.Adversary); ok {
		return s.DeleteAdversary(id)
	}
	return s.DeleteEnvironment(id)
}

// commit writes next to disk and, on success, makes it the current
// document. The caller must hold the write lock.
func (s *Store) commit(next document) error {
	next.Version = Version

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cards: %w", err)
	}
	if err := writeAtomic(s.path, append(raw, '\n')); err != nil {
		return err
	}

	s.doc = next
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func cloneAdversary(a *card.Adversary) *card.Adversary {
	c := *a
	c.Features = slices.Clone(a.Features)
	return &c
}

func cloneEnvironment(e *card.Environment) *card.Environment {
	c := *e
	c.Features = slices.Clone(e.Features)
	return &c
}
