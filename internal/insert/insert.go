// Package insert writes rendered cards into vault notes and canvases.
package insert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnsupportedTarget = errors.New("unsupported insertion target")

// Counter tracks how many cards a session has inserted. Canvas insertion
// uses it to lay nodes out side by side. A Counter belongs to its caller
// and is not safe for concurrent use.
type Counter struct {
	n int
}

// Next returns the current count and advances it.
func (c *Counter) Next() int {
	if c == nil {
		return 0
	}
	n := c.n
	c.n++
	return n
}

// Value returns the number of insertions recorded so far.
func (c *Counter) Value() int {
	if c == nil {
		return 0
	}
	return c.n
}

func (c *Counter) Reset() {
	if c != nil {
		c.n = 0
	}
}

// Options control note insertion.
type Options struct {
	// Heading places the content at the end of the section under this
	// heading. Empty appends to the end of the note.
	Heading string
}

// Into inserts markdown into the note or canvas at path, chosen by the
// file extension.
func Into(path, markdown string, opts Options, counter *Counter) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		if err := IntoNote(path, markdown, opts); err != nil {
			return err
		}
		counter.Next()
		return nil
	case ".canvas":
		_, err := IntoCanvas(path, markdown, counter)
		return err
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedTarget, path)
	}
}
