// Package history remembers which subdirectory was last visited inside every
// directory the user has browsed, so re-entering a directory can restore the
// cursor to where it was.
package history

import (
	"path/filepath"

	fsutil "github.com/kk-code-lab/rcd/internal/fs"
)

// NodeID addresses a node in the tree's arena. Ids stay valid for the life of
// the tree; a removed node keeps its slot but is marked dead.
type NodeID int

const noNode NodeID = -1

type node struct {
	label       string
	parent      NodeID
	children    []NodeID
	lastVisited NodeID
	alive       bool
}

// Tree is a tree of path components. Children are owned by their parent;
// parent and last-visited links are plain ids that are checked before use.
type Tree struct {
	nodes   []node
	root    NodeID
	current NodeID
}

// RootLabel is the label of the root node.
var RootLabel = string(filepath.Separator)

// New returns a tree holding only the root, positioned at the root.
func New() *Tree {
	t := &Tree{}
	t.root = t.newNode(RootLabel, noNode)
	t.current = t.root
	return t
}

func (t *Tree) newNode(label string, parent NodeID) NodeID {
	t.nodes = append(t.nodes, node{
		label:       label,
		parent:      parent,
		lastVisited: noNode,
		alive:       true,
	})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].alive
}

func (t *Tree) childByLabel(parent NodeID, label string) NodeID {
	for _, child := range t.nodes[parent].children {
		if t.valid(child) && t.nodes[child].label == label {
			return child
		}
	}
	return noNode
}

// Visit descends into the child called label, creating it when needed, and
// records it as the last visited child of the current node.
func (t *Tree) Visit(label string) {
	child := t.childByLabel(t.current, label)
	if child == noNode {
		child = t.newNode(label, t.current)
		t.nodes[t.current].children = append(t.nodes[t.current].children, child)
	}
	t.nodes[t.current].lastVisited = child
	t.current = child
}

// GoUp moves to the parent node. At the root it does nothing.
func (t *Tree) GoUp() {
	if parent := t.nodes[t.current].parent; t.valid(parent) {
		t.current = parent
	}
}

// GoToRoot moves to the root node.
func (t *Tree) GoToRoot() {
	t.current = t.root
}

// ChangeDir re-walks the tree from the root along the components of the
// absolute path p.
func (t *Tree) ChangeDir(p string) {
	t.GoToRoot()
	for _, component := range fsutil.SplitComponents(p) {
		t.Visit(component)
	}
}

// LastVisitedChildLabel returns the label of the child most recently visited
// from the current node.
func (t *Tree) LastVisitedChildLabel() (string, bool) {
	id := t.nodes[t.current].lastVisited
	if !t.valid(id) || t.nodes[id].parent != t.current {
		return "", false
	}
	return t.nodes[id].label, true
}

// Remove drops the node for the absolute path p together with its subtree.
// The current position is kept when it is outside the removed subtree and
// moves to the parent of p otherwise. It reports whether a node was removed.
func (t *Tree) Remove(p string) bool {
	id := t.root
	for _, component := range fsutil.SplitComponents(p) {
		id = t.childByLabel(id, component)
		if id == noNode {
			return false
		}
	}
	if id == t.root {
		return false
	}

	parent := t.nodes[id].parent
	siblings := t.nodes[parent].children
	for i, child := range siblings {
		if child == id {
			t.nodes[parent].children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}

	currentRemoved := false
	var kill func(NodeID)
	kill = func(n NodeID) {
		if n == t.current {
			currentRemoved = true
		}
		t.nodes[n].alive = false
		for _, child := range t.nodes[n].children {
			kill(child)
		}
		t.nodes[n].children = nil
	}
	kill(id)

	if currentRemoved {
		t.current = parent
	}
	return true
}

// Len returns the number of live nodes, root included.
func (t *Tree) Len() int {
	n := 0
	for _, nd := range t.nodes {
		if nd.alive {
			n++
		}
	}
	return n
}
