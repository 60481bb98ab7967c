//go:build !windows

package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func currentLabel(t *Tree) string {
	return t.nodes[t.current].label
}

func TestVisitRecordsLastVisitedChild(t *testing.T) {
	tree := New()
	tree.Visit("home")
	tree.Visit("alice")
	tree.GoUp()

	label, ok := tree.LastVisitedChildLabel()
	require.True(t, ok)
	assert.Equal(t, "alice", label)
	assert.Equal(t, "home", currentLabel(tree))

	tree.Visit("bob")
	tree.GoUp()
	label, _ = tree.LastVisitedChildLabel()
	assert.Equal(t, "bob", label)

	tree.Visit("alice")
	assert.Equal(t, 4, tree.Len(), "revisiting must reuse the existing node")
}

func TestGoUpAtRootIsNoop(t *testing.T) {
	tree := New()
	tree.GoUp()
	assert.Equal(t, RootLabel, currentLabel(tree))

	_, ok := tree.LastVisitedChildLabel()
	assert.False(t, ok)
}

func TestChangeDirRewalksFromRoot(t *testing.T) {
	tree := New()
	tree.ChangeDir("/foo/bar")
	tree.ChangeDir("/foo/baz")
	assert.Equal(t, "baz", currentLabel(tree))

	tree.GoUp()
	label, ok := tree.LastVisitedChildLabel()
	require.True(t, ok)
	assert.Equal(t, "baz", label)

	tree.GoToRoot()
	label, ok = tree.LastVisitedChildLabel()
	require.True(t, ok)
	assert.Equal(t, "foo", label)

	tree.ChangeDir("/")
	assert.Equal(t, RootLabel, currentLabel(tree))
}

func TestRemoveDropsSubtreeAndWeakLinks(t *testing.T) {
	tree := New()
	tree.ChangeDir("/foo/bar/deep")
	tree.ChangeDir("/foo/baz")
	tree.ChangeDir("/foo/bar/deep")

	require.True(t, tree.Remove("/foo/bar"))
	assert.Equal(t, "foo", currentLabel(tree), "current node moves to the removed node's parent")

	_, ok := tree.LastVisitedChildLabel()
	assert.False(t, ok, "link to a removed child resolves to absent")
	assert.Equal(t, 3, tree.Len())

	assert.False(t, tree.Remove("/foo/missing"))
	assert.False(t, tree.Remove("/"))
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	tree := New()
	tree.ChangeDir("/foo/bar")
	tree.ChangeDir("/foo/baz")

	first, err := json.Marshal(tree)
	require.NoError(t, err)

	loaded := New()
	require.NoError(t, json.Unmarshal(first, loaded))
	second, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	loaded.ChangeDir("/foo")
	label, ok := loaded.LastVisitedChildLabel()
	require.True(t, ok)
	assert.Equal(t, "baz", label)
}

func TestMarshalShape(t *testing.T) {
	tree := New()
	tree.ChangeDir("/a")

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"/","last_visited_child":"a","children":[{"label":"a","last_visited_child":null,"children":[]}]}`, string(data))
}

func TestUnknownLastVisitedLabelResolvesToAbsent(t *testing.T) {
	data := `{"label":"/","last_visited_child":"ghost","children":[{"label":"real","last_visited_child":null,"children":[]}]}`

	tree := New()
	require.NoError(t, json.Unmarshal([]byte(data), tree))
	_, ok := tree.LastVisitedChildLabel()
	assert.False(t, ok)

	tree.Visit("real")
	tree.GoUp()
	label, ok := tree.LastVisitedChildLabel()
	require.True(t, ok)
	assert.Equal(t, "real", label)
}
