package opening

import (
	"io"

	"github.com/garlicgarrison/go-chess"
)

// Line is one root-to-leaf move sequence, the unit of export.
type Line []*chess.Move

/*
	Lines flattens the tree depth-first, in insertion order, into one
	Line per leaf. A leaf is a terminal node or a node without children;
	a subtree below a terminal node is retained in the tree but not
	enumerated. The enumeration reads tree structure only, never the
	Navigator's cursor.
*/
func (t *Tree) Lines() []Line {
	lines := []Line{}
	collectLines(t.root, Line{}, &lines)
	return lines
}

func collectLines(n *Node, moves Line, out *[]Line) {
	if n.terminal || n.childCount() == 0 {
		*out = append(*out, moves)
		return
	}

	for _, key := range n.order {
		child := n.children[key]
		next := make(Line, len(moves)+1)
		copy(next, moves)
		next[len(moves)] = child.move
		collectLines(child, next, out)
	}
}

/*
	Export serializes every Line as a PGN game starting from the root
	position and writes the records to w, separated by a blank line, in
	enumeration order. Returns the number of records written. When the
	root is not the standard starting position (preset starting moves),
	SetUp/FEN tags make each record self-contained.
*/
func (t *Tree) Export(w io.Writer) (int, error) {
	startFEN := chess.NewGame().Position().String()
	rootFEN := t.root.pos.String()

	count := 0
	for _, line := range t.Lines() {
		game := chess.NewGame()
		if rootFEN != startFEN {
			fen, err := chess.FEN(rootFEN)
			if err != nil {
				return count, err
			}
			game = chess.NewGame(fen)
			game.AddTagPair("SetUp", "1")
			game.AddTagPair("FEN", rootFEN)
		}

		for _, move := range line {
			if err := game.Move(move); err != nil {
				return count, err
			}
		}

		if _, err := io.WriteString(w, game.String()+"\n\n"); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
