package cards

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/state"
	"github.com/Paintersrp/daggerforge/internal/store"
)

type scripted struct {
	answers []string
	asked   []string
}

func (s *scripted) next(prompt string) (string, error) {
	s.asked = append(s.asked, prompt)
	if len(s.answers) == 0 {
		return "", errors.New("no more answers")
	}
	v := s.answers[0]
	s.answers = s.answers[1:]
	return v, nil
}

func (s *scripted) Select(prompt string, _ []string) (string, error) { return s.next(prompt) }

func (s *scripted) Input(prompt, _ string, _ bool) (string, error) { return s.next(prompt) }

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("store.Open returned error: %v", err)
	}
	return st
}

func TestPromptAdversaryHorde(t *testing.T) {
	p := &scripted{answers: []string{
		"Rat King's Brood", "1", "Horde", "A heaving carpet of rats.",
		"4", "Swarm the weak", "10", "5", "9", "6", "2", "+0", "Teeth", "Melee", "1d6 phy",
	}}

	c, err := Prompt(p, card.KindAdversary)
	if err != nil {
		t.Fatalf("Prompt returned error: %v", err)
	}

	a, ok := c.(*card.Adversary)
	if !ok {
		t.Fatalf("expected an adversary, got %T", c)
	}
	if a.HordeSize != 4 || a.DisplayType() != "Horde (4/HP)" {
		t.Fatalf("expected horde size to be asked, got %+v", a)
	}
	if a.Difficulty != 10 || a.SevereThreshold != 9 || a.Range != "Melee" {
		t.Fatalf("unexpected stats %+v", a)
	}
	if err := card.Validate(a); err != nil {
		t.Fatalf("expected a valid card, got %v", err)
	}
}

func TestPromptEnvironment(t *testing.T) {
	p := &scripted{answers: []string{"Flooded Crypt", "2", "Traversal", "Knee deep water.", "Rise", "", "Zombies"}}

	c, err := Prompt(p, card.KindEnvironment)
	if err != nil {
		t.Fatalf("Prompt returned error: %v", err)
	}

	e := c.(*card.Environment)
	if e.Name != "Flooded Crypt" || e.Tier != 2 || e.Difficulty != 0 || e.PotentialAdversaries != "Zombies" {
		t.Fatalf("unexpected environment %+v", e)
	}
}

func TestPromptStopsOnFirstError(t *testing.T) {
	p := &scripted{answers: []string{"Bear", "one"}}

	if _, err := Prompt(p, card.KindAdversary); err == nil {
		t.Fatalf("expected a number error")
	}
	if len(p.asked) != 2 {
		t.Fatalf("expected the wizard to stop after the bad tier, asked %v", p.asked)
	}
}

func TestDecodeFileAndSave(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "wolf.yaml")
	if err := os.WriteFile(yamlPath, []byte("name: Frost Wolf\ntier: 2\ntype: skulk\ndifficulty: 13\nhp: 4\nstress: 2\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	jsonPath := filepath.Join(dir, "crypt.json")
	if err := os.WriteFile(jsonPath, []byte(`{"name":"Crypt","tier":1,"type":"Exploration","difficulty":11}`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	st := openStore(t)

	wolf, err := DecodeFile(yamlPath, card.KindAdversary)
	if err != nil {
		t.Fatalf("DecodeFile returned error: %v", err)
	}
	saved, err := Save(st, wolf)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	a := saved.(*card.Adversary)
	if a.ID == "" || a.Type != "Skulk" || a.Source != card.SourceCustom {
		t.Fatalf("unexpected saved adversary %+v", a)
	}

	crypt, err := DecodeFile(jsonPath, card.KindEnvironment)
	if err != nil {
		t.Fatalf("DecodeFile returned error: %v", err)
	}
	if _, err := Save(st, crypt); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if _, err := DecodeFile(filepath.Join(dir, "card.txt"), card.KindAdversary); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	txt := filepath.Join(dir, "card.toml")
	if err := os.WriteFile(txt, []byte("name = 'x'"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := DecodeFile(txt, card.KindAdversary); err == nil {
		t.Fatalf("expected an error for an unsupported extension")
	}
}

func TestSaveRejectsInvalidCard(t *testing.T) {
	st := openStore(t)
	if _, err := Save(st, &card.Adversary{Name: "Nobody", Tier: 9, Type: "Solo"}); err == nil {
		t.Fatalf("expected a validation error")
	}
	if len(st.Adversaries()) != 0 {
		t.Fatalf("expected nothing to be saved")
	}
}

func TestList(t *testing.T) {
	st := openStore(t)

	var buf bytes.Buffer
	if err := List(&buf, st, card.KindAdversary); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if buf.String() != "No custom adversaries saved\n" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}

	if _, err := st.AddAdversary(&card.Adversary{Name: "Rat Pack", Tier: 1, Type: "Horde", HordeSize: 3, Difficulty: 10}); err != nil {
		t.Fatalf("AddAdversary returned error: %v", err)
	}

	buf.Reset()
	if err := List(&buf, st, card.KindAdversary); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "Horde (3/HP)") || !strings.Contains(lines[1], "custom") {
		t.Fatalf("unexpected list output %q", buf.String())
	}
}

func TestUpdateKeepsIDAndKind(t *testing.T) {
	st := openStore(t)
	saved, err := st.AddEnvironment(&card.Environment{Name: "Crypt", Tier: 1, Type: "Exploration", Difficulty: 11})
	if err != nil {
		t.Fatalf("AddEnvironment returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "crypt.yaml")
	if err := os.WriteFile(path, []byte("name: Flooded Crypt\ntier: 2\ntype: traversal\ndifficulty: 13\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	updated, err := Update(st, saved.ID, path)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	e, ok := updated.(*card.Environment)
	if !ok {
		t.Fatalf("expected an environment, got %T", updated)
	}
	if e.ID != saved.ID || e.Name != "Flooded Crypt" || e.Type != "Traversal" || e.Source != card.SourceCustom {
		t.Fatalf("unexpected updated environment %+v", e)
	}
	if envs := st.Environments(); len(envs) != 1 || envs[0].Tier != 2 {
		t.Fatalf("expected the stored card to be replaced, got %+v", envs)
	}

	if _, err := Update(st, "missing", path); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditCommand(t *testing.T) {
	st := openStore(t)
	saved, err := st.AddAdversary(&card.Adversary{Name: "Frost Wolf", Tier: 1, Type: "Skulk", Difficulty: 12})
	if err != nil {
		t.Fatalf("AddAdversary returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "wolf.json")
	if err := os.WriteFile(path, []byte(`{"name":"Dire Frost Wolf","tier":2,"type":"bruiser","difficulty":14}`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	core, logs := observer.New(zap.InfoLevel)
	var out bytes.Buffer

	cmd := newCmdEdit(&state.State{Store: st})
	cmd.SetArgs([]string{saved.ID, "--file", path})
	cmd.SetOut(&out)
	cmd.SetContext(logger.ContextWithLogger(context.Background(), zap.New(core)))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("edit returned error: %v", err)
	}

	if !strings.HasPrefix(out.String(), "Updated ") || !strings.Contains(out.String(), "Dire Frost Wolf") {
		t.Fatalf("unexpected output %q", out.String())
	}
	advs := st.Adversaries()
	if len(advs) != 1 || advs[0].ID != saved.ID || advs[0].Type != "Bruiser" {
		t.Fatalf("unexpected stored adversaries %+v", advs)
	}
	if logs.FilterMessage("custom card updated").Len() != 1 {
		t.Fatalf("expected the update to be logged, got %v", logs.All())
	}

	cmd = newCmdEdit(&state.State{Store: st})
	cmd.SetArgs([]string{saved.ID})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error without --file")
	}
}
