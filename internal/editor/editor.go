// Package editor opens vault files in the editor configured for the
// workspace.
package editor

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/Paintersrp/daggerforge/internal/pathutil"
)

// Launch is a prepared editor process. Terminal editors take over the
// terminal and must be waited on; GUI editors are started and released.
type Launch struct {
	Cmd  *exec.Cmd
	Wait bool
}

type command struct {
	name    string
	args    []string
	wait    bool
	silence bool
}

// Prepare builds the editor command for path without starting it.
func Prepare(editor, vault, path string) (*Launch, error) {
	c, err := buildCommand(editor, vault, path, runtime.GOOS)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(c.name, c.args...)
	if c.silence {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	return &Launch{Cmd: cmd, Wait: c.wait}, nil
}

// Open opens path in editor, waiting for terminal editors to exit.
func Open(editor, vault, path string) error {
	l, err := Prepare(editor, vault, path)
	if err != nil {
		return err
	}
	if l.Wait {
		return l.Cmd.Run()
	}
	if err := l.Cmd.Start(); err != nil {
		return err
	}
	return l.Cmd.Process.Release()
}

func buildCommand(editor, vault, path, goos string) (*command, error) {
	switch editor {
	case "nvim", "vim", "nano":
		return &command{name: editor, args: []string{path}, wait: true}, nil
	case "vscode", "code":
		return systemCommand(goos, "code", path, []string{"-n", "-b", "com.microsoft.VSCode", "--args", path})
	case "obsidian", "":
		rel, err := pathutil.VaultRelative(vault, path)
		if err != nil {
			return nil, fmt.Errorf("unable to determine relative path for obsidian: %w", err)
		}
		uri := fmt.Sprintf(
			"obsidian://open?vault=%s&file=%s",
			url.PathEscape(filepath.Base(pathutil.NormalizePath(vault))),
			url.PathEscape(filepath.ToSlash(rel)),
		)
		return openerCommand(goos, uri)
	default:
		return nil, fmt.Errorf("unsupported editor: %s", editor)
	}
}

func systemCommand(goos, bin, path string, darwinArgs []string) (*command, error) {
	switch goos {
	case "darwin":
		return &command{name: "open", args: darwinArgs, silence: true}, nil
	case "linux":
		return &command{name: bin, args: []string{path}, silence: true}, nil
	case "windows":
		return &command{name: "cmd", args: []string{"/c", bin, path}, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

func openerCommand(goos, target string) (*command, error) {
	switch goos {
	case "darwin":
		return &command{name: "open", args: []string{target}, silence: true}, nil
	case "linux":
		return &command{name: "xdg-open", args: []string{target}, silence: true}, nil
	case "windows":
		return &command{name: "cmd", args: []string{"/c", "start", target}, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
