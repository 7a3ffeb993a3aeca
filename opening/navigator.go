package opening

// Step reports what a Navigator.Advance call did.
type Step int

const (
	// Descended means the cursor moved into a child of the current node.
	Descended Step = iota
	// Backtracked means the cursor popped ancestors and entered a sibling.
	Backtracked
	// Exhausted means no non-terminal node is reachable from here.
	Exhausted
)

/*
	Navigator is a depth-first cursor over a Tree. The path stack records
	the route taken from the root and is popped while backtracking. The
	traversal never re-scans from the root: once the stack is empty,
	Advance keeps reporting Exhausted even if nodes outside the abandoned
	path were added later.
*/
type Navigator struct {
	tree    *Tree
	current *Node
	path    []*Node
}

func NewNavigator(t *Tree) *Navigator {
	return &Navigator{
		tree:    t,
		current: t.root,
		path:    []*Node{},
	}
}

func (nav *Navigator) Current() *Node {
	return nav.current
}

/*
	Advance moves the cursor to the next unfinished node.

	1. The first non-terminal child of the current node, in insertion
	   order, wins; the current node is pushed and the cursor descends.
	2. Otherwise ancestors are popped one at a time; the first
	   non-terminal child of a popped ancestor that is not the node just
	   abandoned becomes the cursor (the ancestor itself is never a
	   candidate, and is not pushed back).
	3. With the stack empty and no candidate found, the traversal is
	   complete.
*/
func (nav *Navigator) Advance() (Step, *Node) {
	for _, key := range nav.current.order {
		child := nav.current.children[key]
		if !child.terminal {
			nav.path = append(nav.path, nav.current)
			nav.current = child
			return Descended, child
		}
	}

	for len(nav.path) > 0 {
		parent := nav.path[len(nav.path)-1]
		nav.path = nav.path[:len(nav.path)-1]

		for _, key := range parent.order {
			child := parent.children[key]
			if !child.terminal && child != nav.current {
				nav.current = child
				return Backtracked, child
			}
		}
	}

	return Exhausted, nil
}
