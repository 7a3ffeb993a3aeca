package opening

import (
	"fmt"
	"io"
	"strings"

	"github.com/garlicgarrison/go-chess"
)

/*
	Print writes a preview of the tree to w: one indented SAN move per
	edge, depth-first in insertion order, and one line per leaf with the
	full move sequence tagged "(terminal)". Returns the leaf count,
	which equals CountLines.
*/
func (t *Tree) Print(w io.Writer) int {
	fmt.Fprintf(w, "Current move tree:\n\n")
	total := printNode(w, t.root, 0, []string{})
	fmt.Fprintf(w, "\nTotal lines: %d\n", total)
	return total
}

func printNode(w io.Writer, n *Node, depth int, prefix []string) int {
	indent := strings.Repeat("  ", depth)

	if n.terminal || n.childCount() == 0 {
		fmt.Fprintf(w, "%s%s (terminal)\n", indent, strings.Join(prefix, " "))
		return 1
	}

	lines := 0
	for _, key := range n.order {
		child := n.children[key]
		san := chess.AlgebraicNotation{}.Encode(n.pos, child.move)
		fmt.Fprintf(w, "%s%s\n", indent, san)

		next := make([]string, len(prefix)+1)
		copy(next, prefix)
		next[len(prefix)] = san
		lines += printNode(w, child, depth+1, next)
	}

	return lines
}
