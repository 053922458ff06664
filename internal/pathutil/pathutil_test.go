package pathutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestVaultRelativeReturnsForwardSlashes(t *testing.T) {
	vaultParts := []string{"home", "user", "vault"}
	fileParts := append(append([]string{}, vaultParts...), "sessions", "session-1.md")

	posixVault := filepath.Join(vaultParts...)
	posixFile := filepath.Join(fileParts...)

	rel, err := VaultRelative(posixVault, posixFile)
	if err != nil {
		t.Fatalf("VaultRelative returned error for POSIX paths: %v", err)
	}
	if rel != "sessions/session-1.md" {
		t.Fatalf("expected relative path 'sessions/session-1.md', got %q", rel)
	}

	windowsVault := strings.ReplaceAll(posixVault, string(filepath.Separator), "\\")
	windowsFile := strings.ReplaceAll(posixFile, string(filepath.Separator), "\\")

	rel, err = VaultRelative(windowsVault, windowsFile)
	if err != nil {
		t.Fatalf("VaultRelative returned error for Windows paths: %v", err)
	}
	if rel != "sessions/session-1.md" {
		t.Fatalf("expected relative path 'sessions/session-1.md', got %q", rel)
	}
}

func TestResolveTarget(t *testing.T) {
	vault := filepath.Join(string(filepath.Separator), "home", "gm", "vault")

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "relative note", target: "sessions/session-1.md", want: filepath.Join(vault, "sessions", "session-1.md")},
		{name: "missing extension", target: "prep", want: filepath.Join(vault, "prep.md")},
		{name: "canvas", target: "boards\\act-1.canvas", want: filepath.Join(vault, "boards", "act-1.canvas")},
		{name: "absolute inside vault", target: filepath.Join(vault, "notes", "x.md"), want: filepath.Join(vault, "notes", "x.md")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveTarget(vault, tc.target)
			if err != nil {
				t.Fatalf("ResolveTarget returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveTargetRejectsEscapes(t *testing.T) {
	vault := filepath.Join(string(filepath.Separator), "home", "gm", "vault")

	for _, target := range []string{"", "../outside.md", filepath.Join(string(filepath.Separator), "etc", "notes.md")} {
		if _, err := ResolveTarget(vault, target); err == nil {
			t.Fatalf("expected %q to be rejected", target)
		}
	}
}
