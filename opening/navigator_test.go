package opening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceDescendsThenExhausts(t *testing.T) {
	tree, err := NewTree(nil)
	require.NoError(t, err)

	child, err := tree.AddMove(tree.Root(), "e4")
	require.NoError(t, err)

	nav := NewNavigator(tree)
	step, node := nav.Advance()
	assert.Equal(t, Descended, step)
	assert.Same(t, child, node)
	assert.Same(t, child, nav.Current())

	tree.MarkTerminal(nav.Current())

	step, node = nav.Advance()
	assert.Equal(t, Exhausted, step)
	assert.Nil(t, node)
}

func TestAdvanceSkipsTerminalChild(t *testing.T) {
	tree, err := NewTree(nil)
	require.NoError(t, err)
	root := tree.Root()

	e4, err := tree.AddMove(root, "e4")
	require.NoError(t, err)
	d4, err := tree.AddMove(root, "d4")
	require.NoError(t, err)
	tree.MarkTerminal(e4)

	nav := NewNavigator(tree)
	step, node := nav.Advance()
	assert.Equal(t, Descended, step)
	assert.Same(t, d4, node)
}

func TestAdvanceBacktracksToSibling(t *testing.T) {
	tree, err := NewTree(nil)
	require.NoError(t, err)
	root := tree.Root()

	e4, err := tree.AddMove(root, "e4")
	require.NoError(t, err)
	d4, err := tree.AddMove(root, "d4")
	require.NoError(t, err)

	nav := NewNavigator(tree)
	step, node := nav.Advance()
	require.Equal(t, Descended, step)
	require.Same(t, e4, node)

	e5, err := tree.AddMove(e4, "e5")
	require.NoError(t, err)
	step, node = nav.Advance()
	require.Equal(t, Descended, step)
	require.Same(t, e5, node)

	tree.MarkTerminal(e5)
	tree.MarkTerminal(e4)
	step, node = nav.Advance()
	assert.Equal(t, Backtracked, step)
	assert.Same(t, d4, node)
}

/*
	Backtracking scans a popped ancestor's children, so an abandoned but
	still-open ancestor is re-entered as a sibling candidate, and the
	popped stack entries are gone for good: siblings above the re-entry
	point can no longer be reached by Advance alone.
*/
func TestAdvanceRevisitsOpenAncestor(t *testing.T) {
	tree, err := NewTree(nil)
	require.NoError(t, err)
	root := tree.Root()

	e4, err := tree.AddMove(root, "e4")
	require.NoError(t, err)
	_, err = tree.AddMove(root, "d4")
	require.NoError(t, err)

	nav := NewNavigator(tree)
	_, _ = nav.Advance() // into e4

	e5, err := tree.AddMove(e4, "e5")
	require.NoError(t, err)
	_, _ = nav.Advance() // into e5
	tree.MarkTerminal(e5)

	step, node := nav.Advance()
	assert.Equal(t, Backtracked, step)
	assert.Same(t, e4, node)

	// the stack was drained finding e4, so d4 is now unreachable
	tree.MarkTerminal(e4)
	step, _ = nav.Advance()
	assert.Equal(t, Exhausted, step)
}

func TestAdvanceExhaustedRepeats(t *testing.T) {
	tree, err := NewTree(nil)
	require.NoError(t, err)

	child, err := tree.AddMove(tree.Root(), "e4")
	require.NoError(t, err)
	tree.MarkTerminal(child)

	nav := NewNavigator(tree)
	for i := 0; i < 3; i++ {
		step, _ := nav.Advance()
		assert.Equal(t, Exhausted, step)
	}
}

func TestAdvanceDeterministic(t *testing.T) {
	build := func() *Tree {
		tree, err := NewTree(nil)
		require.NoError(t, err)
		root := tree.Root()

		e4, err := tree.AddMove(root, "e4")
		require.NoError(t, err)
		_, err = tree.AddMove(root, "d4")
		require.NoError(t, err)
		_, err = tree.AddMove(e4, "e5")
		require.NoError(t, err)
		_, err = tree.AddMove(e4, "c5")
		require.NoError(t, err)
		return tree
	}

	visit := func(tree *Tree) []string {
		nav := NewNavigator(tree)
		trail := []string{}
		for {
			step, node := nav.Advance()
			if step == Exhausted {
				return trail
			}
			tree.MarkTerminal(node)
			trail = append(trail, node.Position().String())
		}
	}

	first := visit(build())
	second := visit(build())
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
