package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// VaultRelative returns the path to target relative to the provided vault directory.
// The returned path always uses forward slashes.
func VaultRelative(vaultDir, target string) (string, error) {
	base := NormalizePath(vaultDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// ResolveTarget turns a user supplied insertion target into an absolute path
// inside the vault. Relative targets are taken from the vault root and a
// target without an extension is treated as a note.
func ResolveTarget(vaultDir, target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", fmt.Errorf("target cannot be empty")
	}

	p := NormalizePath(target)
	if !filepath.IsAbs(p) {
		p = filepath.Join(NormalizePath(vaultDir), p)
	}
	if filepath.Ext(p) == "" {
		p += ".md"
	}

	rel, err := VaultRelative(vaultDir, p)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("target %q is outside the vault", target)
	}

	return p, nil
}
