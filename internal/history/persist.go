package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type jsonNode struct {
	Label            string     `json:"label"`
	LastVisitedChild *string    `json:"last_visited_child"`
	Children         []jsonNode `json:"children"`
}

// MarshalJSON encodes the live part of the tree. Last-visited links are
// stored by label.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toJSON(t.root))
}

func (t *Tree) toJSON(id NodeID) jsonNode {
	n := t.nodes[id]
	out := jsonNode{Label: n.label, Children: make([]jsonNode, 0, len(n.children))}
	if t.valid(n.lastVisited) && t.nodes[n.lastVisited].parent == id {
		label := t.nodes[n.lastVisited].label
		out.LastVisitedChild = &label
	}
	for _, child := range n.children {
		if t.valid(child) {
			out.Children = append(out.Children, t.toJSON(child))
		}
	}
	return out
}

// UnmarshalJSON replaces the tree with the decoded one and positions it at
// the root. A last-visited label that names none of the node's children is
// dropped.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return err
	}

	t.nodes = t.nodes[:0]
	t.root = t.fromJSON(root, noNode)
	t.current = t.root
	return nil
}

func (t *Tree) fromJSON(in jsonNode, parent NodeID) NodeID {
	id := t.newNode(in.Label, parent)
	children := make([]NodeID, 0, len(in.Children))
	for _, child := range in.Children {
		children = append(children, t.fromJSON(child, id))
	}
	t.nodes[id].children = children

	if in.LastVisitedChild != nil {
		for _, child := range children {
			if t.nodes[child].label == *in.LastVisitedChild {
				t.nodes[id].lastVisited = child
				break
			}
		}
	}
	return id
}

// Load reads the tree stored at path. An empty path or a missing file yields
// a fresh tree; unreadable or malformed files are errors.
func Load(path string) (*Tree, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	t := New()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse history file %s: %w", path, err)
	}
	return t, nil
}

// Save writes the tree to path, creating parent directories. The file is
// replaced atomically. An empty path disables persistence.
func Save(path string, t *Tree) error {
	if path == "" {
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("create history file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write history file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
