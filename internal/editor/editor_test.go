package editor

import (
	"path/filepath"
	"testing"
)

func TestBuildCommandTerminalEditors(t *testing.T) {
	for _, name := range []string{"nvim", "vim", "nano"} {
		c, err := buildCommand(name, "/vault", "/vault/a.md", "linux")
		if err != nil {
			t.Fatalf("buildCommand(%q) returned error: %v", name, err)
		}
		if c.name != name || !c.wait || c.silence {
			t.Fatalf("unexpected command for %s: %+v", name, c)
		}
		if len(c.args) != 1 || c.args[0] != "/vault/a.md" {
			t.Fatalf("expected path argument, got %v", c.args)
		}
	}
}

func TestBuildCommandObsidianURI(t *testing.T) {
	vault := filepath.Join(string(filepath.Separator), "home", "gm", "My Vault")
	path := filepath.Join(vault, "Sessions", "Session 1.md")

	c, err := buildCommand("obsidian", vault, path, "linux")
	if err != nil {
		t.Fatalf("buildCommand returned error: %v", err)
	}
	if c.name != "xdg-open" || c.wait {
		t.Fatalf("unexpected command: %+v", c)
	}

	want := "obsidian://open?vault=My%20Vault&file=Sessions%2FSession%201.md"
	if c.args[0] != want {
		t.Fatalf("expected %q, got %q", want, c.args[0])
	}
}

func TestBuildCommandDefaultsToObsidian(t *testing.T) {
	c, err := buildCommand("", "/vault", "/vault/a.md", "darwin")
	if err != nil {
		t.Fatalf("buildCommand returned error: %v", err)
	}
	if c.name != "open" {
		t.Fatalf("expected open on darwin, got %q", c.name)
	}
}

func TestBuildCommandVSCode(t *testing.T) {
	c, err := buildCommand("code", "/vault", "/vault/a.md", "windows")
	if err != nil {
		t.Fatalf("buildCommand returned error: %v", err)
	}
	if c.name != "cmd" || c.args[1] != "code" {
		t.Fatalf("unexpected command: %+v", c)
	}
}

func TestBuildCommandErrors(t *testing.T) {
	if _, err := buildCommand("emacs", "/vault", "/vault/a.md", "linux"); err == nil {
		t.Fatalf("expected unsupported editor error")
	}
	if _, err := buildCommand("code", "/vault", "/vault/a.md", "plan9"); err == nil {
		t.Fatalf("expected unsupported os error")
	}
}
