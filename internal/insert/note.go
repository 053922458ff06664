package insert

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// newHeadingLevel is used when the requested heading does not exist yet.
const newHeadingLevel = 2

// IntoNote adds markdown to the note at path, creating the note if needed.
func IntoNote(path, markdown string, opts Options) error {
	source, err := os.ReadFile(path)
	mode := fs.FileMode(0o644)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating note directory: %w", err)
		}
	default:
		return fmt.Errorf("reading note: %w", err)
	}

	updated := insertMarkdown(source, markdown, strings.TrimSpace(opts.Heading))
	if err := os.WriteFile(path, updated, mode); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}
	return nil
}

func insertMarkdown(source []byte, markdown, heading string) []byte {
	block := strings.Trim(markdown, "\n")

	if heading == "" {
		return joinBlocks(source, []byte(block), nil)
	}

	end, found := sectionEnd(source, heading)
	if !found {
		created := strings.Repeat("#", newHeadingLevel) + " " + heading + "\n\n" + block
		return joinBlocks(source, []byte(created), nil)
	}

	return joinBlocks(source[:end], []byte(block), source[end:])
}

// joinBlocks places block between before and after, separated by blank
// lines, and keeps a single trailing newline at the end of the note.
func joinBlocks(before, block, after []byte) []byte {
	var buf bytes.Buffer

	head := bytes.TrimRight(before, "\n")
	if len(head) > 0 {
		buf.Write(head)
		buf.WriteString("\n\n")
	}
	buf.Write(block)
	buf.WriteString("\n")

	if len(after) > 0 {
		buf.WriteString("\n")
		buf.Write(after)
	}
	return buf.Bytes()
}

// sectionEnd locates the heading matching name and returns the offset where
// its section ends: the start of the next heading of the same or a higher
// level, or the end of the source.
func sectionEnd(source []byte, name string) (end int, found bool) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	level := 0
	prevStop := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if found && h.Level <= level {
				return headingStart(source, h, prevStop), true
			}
			if !found && strings.EqualFold(headingText(h, source), name) {
				found = true
				level = h.Level
			}
		}
		if stop := blockStop(n); stop > prevStop {
			prevStop = stop
		}
	}

	return len(source), found
}

func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSpace(b.String())
}

// blockStop returns the end offset of the last source line held by n or its
// block descendants, or -1 when there is none.
func blockStop(n ast.Node) int {
	stop := -1
	if lines := n.Lines(); lines.Len() > 0 {
		stop = lines.At(lines.Len() - 1).Stop
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		if s := blockStop(c); s > stop {
			stop = s
		}
	}
	return stop
}

// headingStart returns the offset of the line holding h. Empty ATX headings
// carry no segments, so their marker is searched for from the line after
// the previous block.
func headingStart(source []byte, h *ast.Heading, from int) int {
	if lines := h.Lines(); lines.Len() > 0 {
		offset := lines.At(0).Start
		return bytes.LastIndexByte(source[:offset], '\n') + 1
	}

	i := min(from, len(source))
	if i > 0 && source[i-1] != '\n' {
		nl := bytes.IndexByte(source[i:], '\n')
		if nl < 0 {
			return len(source)
		}
		i += nl + 1
	}

	for i < len(source) {
		line := source[i:]
		nl := bytes.IndexByte(line, '\n')
		if nl >= 0 {
			line = line[:nl]
		}
		if bytes.HasPrefix(bytes.TrimLeft(line, " "), []byte("#")) {
			return i
		}
		if nl < 0 {
			break
		}
		i += nl + 1
	}
	return len(source)
}
