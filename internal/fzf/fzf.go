package fzf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/daggerforge/internal/handler"
	"github.com/Paintersrp/daggerforge/internal/pathutil"
)

// ErrNoSelection is returned when the picker is dismissed.
var ErrNoSelection = errors.New("nothing selected")

// FuzzyFinder picks an insertion target from the notes and canvases in a
// vault.
type FuzzyFinder struct {
	handler  *handler.FileHandler
	vaultDir string
	Header   string
	files    []string
}

func NewFuzzyFinder(vaultDir, header string) *FuzzyFinder {
	h := handler.NewFileHandler(vaultDir)
	return &FuzzyFinder{vaultDir: vaultDir, Header: header, handler: h}
}

// Run lets the user choose a target, starting from query, and returns its
// absolute path.
func (f *FuzzyFinder) Run(query string) (string, error) {
	files, err := f.handler.WalkTargets(nil)
	if err != nil {
		return "", fmt.Errorf("error listing files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no notes or canvases found in %s", f.vaultDir)
	}
	f.files = files

	labels := make([]string, len(files))
	for i, file := range files {
		labels[i] = f.label(file)
	}

	idx, err := Pick(labels, query, f.Header, f.renderPreview)
	if err != nil {
		return "", err
	}

	return f.files[idx], nil
}

func (f *FuzzyFinder) label(file string) string {
	rel, err := pathutil.VaultRelative(f.vaultDir, file)
	if err != nil {
		return filepath.Base(file)
	}
	if strings.EqualFold(filepath.Ext(rel), ".canvas") {
		return rel + " [canvas]"
	}
	return rel
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	content, err := os.ReadFile(f.files[i])
	if err != nil {
		return "Error reading file"
	}

	if strings.EqualFold(filepath.Ext(f.files[i]), ".canvas") {
		return canvasSummary(content)
	}

	return RenderMarkdown(string(content), w)
}

// Pick shows items in a fuzzy finder and returns the chosen index. preview
// may be nil.
func Pick(items []string, query, header string, preview func(i, w, h int) string) (int, error) {
	var options []fuzzyfinder.Option
	if preview != nil {
		options = append(options, fuzzyfinder.WithPreviewWindow(preview))
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if header != "" {
		options = append(options, fuzzyfinder.WithHeader(header))
	}

	idx, err := fuzzyfinder.Find(items, func(i int) string {
		return items[i]
	}, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return -1, ErrNoSelection
	}
	if err != nil {
		return -1, err
	}
	return idx, nil
}

// RenderMarkdown renders markdown for a terminal preview of the given width.
func RenderMarkdown(markdown string, width int) string {
	if width <= 0 || width > 100 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return markdown
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "Error rendering markdown"
	}

	return out
}

func canvasSummary(content []byte) string {
	var doc struct {
		Nodes []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return "Unreadable canvas"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Canvas with %d nodes\n\n", len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.Type != "text" {
			continue
		}
		first, _, _ := strings.Cut(strings.TrimSpace(n.Text), "\n")
		fmt.Fprintf(&b, "- %s\n", first)
	}
	return b.String()
}
