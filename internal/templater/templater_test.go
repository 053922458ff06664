package templater

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/daggerforge/internal/card"
)

func burrower() *card.Adversary {
	return &card.Adversary{
		Name:            "Acid Burrower",
		Tier:            1,
		Type:            "Solo",
		Desc:            "A horse-sized insect.",
		Motives:         "Burrow, feed",
		Difficulty:      14,
		MajorThreshold:  8,
		SevereThreshold: 15,
		HP:              8,
		Stress:          3,
		Attack:          "+3",
		Weapon:          "Claws",
		Range:           "Very Close",
		Damage:          "1d12+2 phy",
		Features: []card.Feature{
			{Name: "Relentless (3)", Kind: card.FeaturePassive, Desc: "Acts often.\nSpend Fear as usual."},
		},
	}
}

func TestNewTemplaterRegistersUserTemplate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	templatesDir := filepath.Join(os.Getenv("HOME"), ".daggerforge", "templates")
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		t.Fatalf("failed to create user template directory: %v", err)
	}

	customTemplatePath := filepath.Join(templatesDir, "adversary.tmpl")
	if err := os.WriteFile(customTemplatePath, []byte("## {{.Name}}"), 0o644); err != nil {
		t.Fatalf("failed to write user template: %v", err)
	}

	tmpl, err := NewTemplater()
	if err != nil {
		t.Fatalf("NewTemplater returned error: %v", err)
	}

	tpl, ok := tmpl.templates["adversary"]
	if !ok {
		t.Fatalf("expected adversary template to be registered: %#v", tmpl.templates)
	}
	if tpl.FilePath != customTemplatePath {
		t.Fatalf("expected template path %q, got %q", customTemplatePath, tpl.FilePath)
	}

	got, err := tmpl.RenderAdversary(burrower())
	if err != nil {
		t.Fatalf("RenderAdversary returned error: %v", err)
	}
	if got != "## Acid Burrower\n" {
		t.Fatalf("expected user template output, got %q", got)
	}

	if _, ok := tmpl.templates["environment"]; !ok {
		t.Fatalf("expected embedded environment template to remain available")
	}
}

func TestTemplateMapLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "user.tmpl"), []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	m := make(TemplateMap)
	if err := m.loadTemplates(dir); err != nil {
		t.Fatalf("loadTemplates returned error: %v", err)
	}

	tpl, ok := m["user"]
	if !ok {
		t.Fatalf("expected user template to be loaded")
	}
	if tpl.Content != "content" {
		t.Fatalf("expected template content to be read, got %q", tpl.Content)
	}
	if _, ok := m["notes"]; ok {
		t.Fatalf("expected non-template files to be skipped")
	}
}

func TestRenderAdversary(t *testing.T) {
	tmpl, err := NewTemplaterFromDir("")
	if err != nil {
		t.Fatalf("NewTemplaterFromDir returned error: %v", err)
	}

	got, err := tmpl.Render(burrower())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	want := []string{
		"> [!daggerforge-adversary] Acid Burrower\n",
		"> **Tier 1 Solo** · core\n",
		"> *A horse-sized insect.*\n",
		"> **Motives & Tactics:** Burrow, feed\n",
		"> **Difficulty:** 14 | **Thresholds:** 8/15 | **HP:** 8 | **Stress:** 3\n",
		"> **ATK:** +3 | **Claws:** Very Close | 1d12+2 phy\n",
		"> ***Relentless (3) - Passive:*** Acts often.\n> Spend Fear as usual.\n",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Fatalf("expected output to contain %q, got:\n%s", w, got)
		}
	}

	for i, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if !strings.HasPrefix(line, ">") {
			t.Fatalf("line %d is outside the callout: %q", i, line)
		}
	}
}

func TestRenderHordeAndMinion(t *testing.T) {
	tmpl, err := NewTemplaterFromDir("")
	if err != nil {
		t.Fatalf("NewTemplaterFromDir returned error: %v", err)
	}

	horde := &card.Adversary{Name: "Rats", Tier: 1, Type: "Horde", HordeSize: 5, Source: "custom", HP: 6}
	got, err := tmpl.RenderAdversary(horde)
	if err != nil {
		t.Fatalf("RenderAdversary returned error: %v", err)
	}
	if !strings.Contains(got, "**Tier 1 Horde (5/HP)** · custom") {
		t.Fatalf("expected horde display type, got:\n%s", got)
	}
	if !strings.Contains(got, "**Thresholds:** None") {
		t.Fatalf("expected missing thresholds to render as None, got:\n%s", got)
	}
	if strings.Contains(got, "**ATK:**") || strings.Contains(got, "**Features**") {
		t.Fatalf("expected empty sections to be omitted, got:\n%s", got)
	}
}

func TestRenderEnvironment(t *testing.T) {
	tmpl, err := NewTemplaterFromDir("")
	if err != nil {
		t.Fatalf("NewTemplaterFromDir returned error: %v", err)
	}

	env := &card.Environment{
		Name:                 "Ambushed",
		Tier:                 1,
		Type:                 "Event",
		Impulses:             "Overwhelm",
		PotentialAdversaries: "Any",
	}
	got, err := tmpl.Render(env)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	for _, w := range []string{
		"> [!daggerforge-environment] Ambushed\n",
		"> **Impulses:** Overwhelm\n",
		"> **Difficulty:** Special\n",
		"> **Potential Adversaries:** Any\n",
	} {
		if !strings.Contains(got, w) {
			t.Fatalf("expected output to contain %q, got:\n%s", w, got)
		}
	}
}

func TestExecuteUnknownTemplate(t *testing.T) {
	tmpl, err := NewTemplaterFromDir("")
	if err != nil {
		t.Fatalf("NewTemplaterFromDir returned error: %v", err)
	}

	_, err = tmpl.Execute("missing", nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}

	if _, err := tmpl.Render("not a card"); err == nil {
		t.Fatalf("expected error rendering unsupported value")
	}
}

func TestNames(t *testing.T) {
	tmpl, err := NewTemplaterFromDir("")
	if err != nil {
		t.Fatalf("NewTemplaterFromDir returned error: %v", err)
	}

	got := strings.Join(tmpl.Names(), ",")
	if got != "adversary,environment" {
		t.Fatalf("unexpected template names %q", got)
	}
}
