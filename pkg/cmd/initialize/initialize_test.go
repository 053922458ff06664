package initialize

import (
	"os"
	"testing"

	"github.com/Paintersrp/daggerforge/internal/config"
)

func TestRunWritesWorkspace(t *testing.T) {
	home := t.TempDir()
	vault := t.TempDir()

	cfg, err := Run(home, Options{Workspace: "campaign", Vault: vault, Editor: "nvim", Heading: "Encounter"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if cfg.CurrentWorkspace != "campaign" {
		t.Fatalf("expected campaign to be current, got %q", cfg.CurrentWorkspace)
	}

	if _, err := os.Stat(cfg.Workspaces["campaign"].PacksPath()); err != nil {
		t.Fatalf("expected packs directory to be created: %v", err)
	}

	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("expected a usable config after init, got %v", err)
	}

	loaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ws, err := loaded.ActiveWorkspace()
	if err != nil {
		t.Fatalf("ActiveWorkspace returned error: %v", err)
	}
	if ws.VaultDir != vault || ws.Editor != "nvim" || ws.InsertHeading != "Encounter" {
		t.Fatalf("unexpected workspace %+v", ws)
	}
}

func TestRunRejectsMissingVault(t *testing.T) {
	home := t.TempDir()
	if _, err := Run(home, Options{Workspace: "default", Vault: home + "/nope", Editor: "obsidian"}); err == nil {
		t.Fatalf("expected an error for a missing vault")
	}
}

func TestRunRejectsUnknownEditor(t *testing.T) {
	if _, err := Run(t.TempDir(), Options{Workspace: "default", Vault: t.TempDir(), Editor: "notepad"}); err == nil {
		t.Fatalf("expected an error for an unknown editor")
	}
}
