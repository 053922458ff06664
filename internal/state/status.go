package state

import (
	"fmt"
	"strings"

	"github.com/Paintersrp/daggerforge/internal/content"
)

// StatusLine summarises a library for the browser footer.
func StatusLine(workspace string, lib *content.Library) string {
	if lib == nil {
		return ""
	}

	parts := []string{
		fmt.Sprintf("%d adversaries", len(lib.Adversaries)),
		fmt.Sprintf("%d environments", len(lib.Environments)),
	}
	if sources := lib.Sources(); len(sources) > 1 {
		parts = append(parts, fmt.Sprintf("%d sources", len(sources)))
	}
	if workspace != "" {
		parts = append([]string{workspace}, parts...)
	}

	return strings.Join(parts, " · ")
}
