package opening

import (
	"errors"
	"fmt"
	"strings"

	"github.com/garlicgarrison/go-chess"
)

var ErrInvalidMove = errors.New("invalid move")

/*
	Tree owns the root node. The root position is the standard starting
	position after the preset starting moves, if any, have been applied.
*/
type Tree struct {
	root *Node
}

func NewTree(startingMoves []string) (*Tree, error) {
	pos := chess.NewGame().Position()
	for _, raw := range startingMoves {
		raw = strings.TrimSpace(raw)
		move, err := DecodeMove(pos, raw)
		if err != nil {
			return nil, fmt.Errorf("bad move in this position: %q", raw)
		}
		pos = pos.Update(move)
	}

	return &Tree{root: newNode(pos, nil)}, nil
}

func (t *Tree) Root() *Node {
	return t.root
}

/*
	DecodeMove parses SAN first, then UCI, against the given position.
	UCI parses square-to-square without a legality check, so the decoded
	move is matched against the position's valid moves and the matching
	valid move (with its tags) is returned.
*/
func DecodeMove(pos *chess.Position, notation string) (*chess.Move, error) {
	move, err := chess.AlgebraicNotation{}.Decode(pos, notation)
	if err == nil {
		return move, nil
	}

	move, err = chess.UCINotation{}.Decode(pos, notation)
	if err != nil {
		return nil, ErrInvalidMove
	}

	for _, valid := range pos.ValidMoves() {
		if valid.String() == move.String() {
			return valid, nil
		}
	}
	return nil, ErrInvalidMove
}

/*
	AddMove parses moveNotation against the node's position and inserts
	the resulting position as a child. If a child with the same position
	key already exists, that child is returned and nothing is inserted.
	The tree is unchanged on a parse or legality failure.
*/
func (t *Tree) AddMove(n *Node, moveNotation string) (*Node, error) {
	move, err := DecodeMove(n.pos, moveNotation)
	if err != nil {
		return nil, err
	}

	next := n.pos.Update(move)
	key := next.String()
	if child, ok := n.children[key]; ok {
		return child, nil
	}

	child := newNode(next, move)
	n.children[key] = child
	n.order = append(n.order, key)
	return child, nil
}

// MarkTerminal flags the node as finished. Idempotent.
func (t *Tree) MarkTerminal(n *Node) {
	n.terminal = true
}

/*
	CountLines returns the number of maximal root-to-leaf paths, where a
	leaf is a terminal node or a node without children. Children under a
	terminal node are retained but do not count.
*/
func (t *Tree) CountLines() int {
	return countLines(t.root)
}

func countLines(n *Node) int {
	if n.terminal || n.childCount() == 0 {
		return 1
	}

	lines := 0
	for _, key := range n.order {
		lines += countLines(n.children[key])
	}
	return lines
}
