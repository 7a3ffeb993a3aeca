package opening

import (
	"github.com/garlicgarrison/go-chess"
)

/*
	Node is one position in the opening tree. Children are keyed by the
	FEN of the position the move leads to, so two moves that transpose
	into the same position share one child. Insertion order is kept
	because it drives traversal and export order.
*/
type Node struct {
	pos      *chess.Position
	move     *chess.Move
	order    []string
	children map[string]*Node
	terminal bool
}

func newNode(pos *chess.Position, move *chess.Move) *Node {
	return &Node{
		pos:      pos,
		move:     move,
		order:    []string{},
		children: map[string]*Node{},
	}
}

func (n *Node) Position() *chess.Position {
	return n.pos
}

// Move is the move that produced this node; nil at the root.
func (n *Node) Move() *chess.Move {
	return n.move
}

func (n *Node) Terminal() bool {
	return n.terminal
}

func (n *Node) childCount() int {
	return len(n.order)
}
