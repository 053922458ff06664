// Package templater renders cards into the markdown stat blocks inserted
// into notes and canvases.
package templater

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/constants"
)

//go:embed templates
var embeddedTemplates embed.FS

var ErrTemplateNotFound = errors.New("template not found")

type SingleTemplate struct {
	FilePath string
	Content  string
}

type TemplateMap map[string]SingleTemplate

// Templater manages a collection of stat block templates.
type Templater struct {
	templates TemplateMap
}

var funcs = template.FuncMap{
	"quote":  quote,
	"source": card.SourceOrDefault,
}

// NewTemplater loads the user templates from the config directory, then the
// embedded defaults. User templates take precedence over embedded ones with
// the same name.
func NewTemplater() (*Templater, error) {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewTemplaterFromDir(
		filepath.Join(userHomeDir, constants.ConfigDir, constants.TemplatesDir),
	)
}

// NewTemplaterFromDir is NewTemplater with an explicit user template
// directory. A missing directory is ignored.
func NewTemplaterFromDir(userTemplateDir string) (*Templater, error) {
	tmplMap := make(TemplateMap)

	if userTemplateDir != "" {
		if _, err := os.Stat(userTemplateDir); err == nil {
			if err := tmplMap.loadTemplates(userTemplateDir); err != nil {
				return nil, err
			}
		}
	}

	if err := tmplMap.loadEmbeddedTemplates(embeddedTemplates); err != nil {
		return nil, err
	}

	return &Templater{templates: tmplMap}, nil
}

// Names returns the registered template names, sorted.
func (t *Templater) Names() []string {
	names := make([]string, 0, len(t.templates))
	for name := range t.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute renders the named template with data.
func (t *Templater) Execute(templateName string, data any) (string, error) {
	tmplData, ok := t.templates[templateName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(tmplData.Content)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", tmplData.FilePath, err)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", templateName, err)
	}

	return strings.TrimRight(rendered.String(), "\n") + "\n", nil
}

func (t *Templater) RenderAdversary(a *card.Adversary) (string, error) {
	return t.Execute(string(card.KindAdversary), a)
}

func (t *Templater) RenderEnvironment(e *card.Environment) (string, error) {
	return t.Execute(string(card.KindEnvironment), e)
}

// Render renders an *card.Adversary or *card.Environment.
func (t *Templater) Render(c any) (string, error) {
	switch v := c.(type) {
	case *card.Adversary:
		return t.RenderAdversary(v)
	case *card.Environment:
		return t.RenderEnvironment(v)
	default:
		return "", fmt.Errorf("cannot render %T", c)
	}
}

// quote continues a multi-line value inside a callout block.
func quote(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n> ")
}

func (m TemplateMap) loadEmbeddedTemplates(embeddedFS embed.FS) error {
	return fs.WalkDir(
		embeddedFS,
		"templates",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() {
				name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
				if _, exists := m[name]; !exists {
					data, err := fs.ReadFile(embeddedFS, path)
					if err != nil {
						return err
					}

					m[name] = SingleTemplate{
						FilePath: path,
						Content:  string(data),
					}
				}
			}

			return nil
		},
	)
}

func (m TemplateMap) loadTemplates(dirPath string) error {
	return filepath.WalkDir(
		dirPath,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() || filepath.Ext(path) != ".tmpl" {
				return nil
			}

			name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if _, exists := m[name]; exists {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			m[name] = SingleTemplate{
				FilePath: path,
				Content:  string(data),
			}
			return nil
		},
	)
}
