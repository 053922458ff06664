package insert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Canvas node geometry.
const (
	NodeWidth  = 400
	NodeHeight = 600
	NodeGap    = 40
)

// CanvasNode is an Obsidian canvas text node.
type CanvasNode struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// IntoCanvas appends markdown as a text node to the canvas at path and
// returns the new node ID. Nodes are placed left to right by counter, which
// is advanced. Keys and nodes already in the file are preserved.
func IntoCanvas(path, markdown string, counter *Counter) (string, error) {
	doc := map[string]json.RawMessage{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &doc); err != nil {
				return "", fmt.Errorf("parsing canvas %s: %w", path, err)
			}
		}
		if doc == nil {
			doc = map[string]json.RawMessage{}
		}
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("creating canvas directory: %w", err)
		}
	default:
		return "", fmt.Errorf("reading canvas: %w", err)
	}

	var nodes []json.RawMessage
	if existing, ok := doc["nodes"]; ok && string(existing) != "null" {
		if err := json.Unmarshal(existing, &nodes); err != nil {
			return "", fmt.Errorf("parsing canvas nodes: %w", err)
		}
	}

	node := CanvasNode{
		ID:     uuid.NewString(),
		Type:   "text",
		Text:   markdown,
		X:      counter.Next() * (NodeWidth + NodeGap),
		Y:      0,
		Width:  NodeWidth,
		Height: NodeHeight,
	}
	encoded, err := json.Marshal(node)
	if err != nil {
		return "", err
	}
	nodes = append(nodes, encoded)

	if doc["nodes"], err = json.Marshal(nodes); err != nil {
		return "", err
	}
	if _, ok := doc["edges"]; !ok {
		doc["edges"] = json.RawMessage("[]")
	}

	out, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return "", fmt.Errorf("encoding canvas: %w", err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing canvas: %w", err)
	}

	return node.ID, nil
}
