package handler

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestWalkTargetsFindsNotesAndCanvases(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()

	rootNote := filepath.Join(vaultDir, "prep.md")
	canvas := filepath.Join(vaultDir, "boards", "act-1.canvas")
	nestedNote := filepath.Join(vaultDir, "sessions", "Session 1.MD")
	archivedNote := filepath.Join(vaultDir, "archive", "old.md")
	obsidianConfig := filepath.Join(vaultDir, ".obsidian", "workspace.md")
	sidecar := filepath.Join(vaultDir, ".daggerforge", "data.json")
	image := filepath.Join(vaultDir, "maps", "keep.png")
	hiddenNote := filepath.Join(vaultDir, ".draft.md")

	for _, p := range []string{rootNote, canvas, nestedNote, archivedNote, obsidianConfig, sidecar, image, hiddenNote} {
		mustWriteFile(t, p)
	}

	h := NewFileHandler(vaultDir)

	files, err := h.WalkTargets([]string{"archive"})
	if err != nil {
		t.Fatalf("WalkTargets returned error: %v", err)
	}

	expected := []string{rootNote, canvas, nestedNote}
	slices.Sort(expected)

	if !slices.Equal(files, expected) {
		t.Fatalf("WalkTargets returned %v, want %v", files, expected)
	}
}

func TestWalkTargetsMissingVault(t *testing.T) {
	t.Parallel()

	h := NewFileHandler(filepath.Join(t.TempDir(), "missing"))
	if _, err := h.WalkTargets(nil); err == nil {
		t.Fatalf("expected error for missing vault")
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
