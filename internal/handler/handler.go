package handler

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TargetExtensions are the file types cards can be inserted into.
var TargetExtensions = map[string]bool{
	".md":     true,
	".canvas": true,
}

type FileHandler struct {
	vaultDir string
}

func NewFileHandler(vaultDir string) *FileHandler {
	return &FileHandler{vaultDir: vaultDir}
}

func (h *FileHandler) VaultDir() string {
	return h.vaultDir
}

// WalkTargets lists the notes and canvases in the vault, sorted. Hidden
// files and directories, such as .obsidian and .daggerforge, are skipped,
// as are the excluded directories given relative to the vault.
func (h *FileHandler) WalkTargets(excludeDirs []string) ([]string, error) {
	var files []string

	excludePaths := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		excludePaths[filepath.Clean(filepath.Join(h.vaultDir, d))] = true
	}

	root := filepath.Clean(h.vaultDir)
	err := filepath.WalkDir(
		root,
		func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			cleanedPath := filepath.Clean(path)
			name := d.Name()

			if d.IsDir() {
				if cleanedPath == root {
					return nil
				}
				if excludePaths[cleanedPath] || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasPrefix(name, ".") {
				return nil
			}

			if TargetExtensions[strings.ToLower(filepath.Ext(name))] {
				files = append(files, path)
			}

			return nil
		},
	)

	sort.Strings(files)
	return files, err
}
