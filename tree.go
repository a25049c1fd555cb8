package stride

import (
	"fmt"
	"strings"
)

// TreeNode is one node of the decision tree built from every registered
// route. A node carries a radix-compressed literal prefix, static children
// keyed by their first byte, parametric children tried in registration
// order, and at most one terminal.
type TreeNode struct {
	prefix    []byte
	children  []*TreeNode // indexed by first byte, length 256
	pchildren []*paramNode
	term      *terminal
}

// paramNode is the parametric branch of a node: a single Until or Regex
// step plus the subtree describing the continuation after the capture.
type paramNode struct {
	step   Step
	pindex int // slot in the per-call capture scratch
	next   *TreeNode
}

// terminal marks a point where a route ends. It is reachable only when the
// cursor has consumed the whole input.
type terminal struct {
	route *Route
	dest  *Destination
}

func newTreeNode(prefix []byte) *TreeNode {
	return &TreeNode{
		prefix:   prefix,
		children: make([]*TreeNode, 256),
	}
}

// treeBuilder merges (route, destination) pairs into a tree, collecting
// shadowed-terminal conflicts and the widest parameter count on the way.
type treeBuilder struct {
	root      *TreeNode
	conflicts []*ConflictError
	maxParams int
}

func buildTree(dests []*Destination) *treeBuilder {
	b := &treeBuilder{root: newTreeNode(nil)}
	for _, d := range dests {
		for _, rt := range d.Routes {
			b.insert(rt, d)
		}
	}
	return b
}

func (b *treeBuilder) insert(rt *Route, d *Destination) {
	n := b.root
	pindex := 0
	for _, st := range rt.steps {
		if st.kind == stepExact {
			n = insertLiteral(n, st.literal)
		} else {
			p := insertParam(n, st, pindex)
			pindex++
			n = p.next
		}
	}
	if pindex > b.maxParams {
		b.maxParams = pindex
	}
	if n.term != nil {
		b.conflicts = append(b.conflicts, &ConflictError{
			Kept:     n.term.route.Pattern,
			Shadowed: rt.Pattern,
		})
		return
	}
	n.term = &terminal{route: rt, dest: d}
}

// insertLiteral descends from n along lit, creating and splitting static
// children as needed, and returns the node at which lit is fully consumed.
func insertLiteral(n *TreeNode, lit []byte) *TreeNode {
	for len(lit) > 0 {
		child := n.children[lit[0]]
		if child == nil {
			child = newTreeNode(lit)
			n.children[lit[0]] = child
			return child
		}

		matched := 0
		for matched < len(lit) && matched < len(child.prefix) && lit[matched] == child.prefix[matched] {
			matched++
		}

		if matched < len(child.prefix) {
			// Split child at the divergence point; the tail keeps the
			// children, terminal and parametric branches.
			tail := &TreeNode{
				prefix:    child.prefix[matched:],
				children:  child.children,
				pchildren: child.pchildren,
				term:      child.term,
			}
			child.prefix = child.prefix[:matched]
			child.children = make([]*TreeNode, 256)
			child.children[tail.prefix[0]] = tail
			child.pchildren = nil
			child.term = nil
		}

		n = child
		lit = lit[matched:]
	}
	return n
}

// insertParam attaches (or re-enters) a parametric child of n. Steps with
// the same shape share one child; different shapes coexist in registration
// order and act as fallbacks at match time.
func insertParam(n *TreeNode, st Step, pindex int) *paramNode {
	for _, p := range n.pchildren {
		if p.step.sameShape(st) {
			return p
		}
	}
	p := &paramNode{step: st, pindex: pindex, next: newTreeNode(nil)}
	n.pchildren = append(n.pchildren, p)
	return p
}

// ToText renders the tree for inspection. The format is advisory and
// unstable.
func (n *TreeNode) ToText(indent string) string {
	var sb strings.Builder
	n.writeText(&sb, 0, indent)
	return sb.String()
}

func (n *TreeNode) writeText(sb *strings.Builder, depth int, indent string) {
	pad := strings.Repeat(indent, depth)
	if len(n.prefix) > 0 || depth == 0 {
		fmt.Fprintf(sb, "%s%q\n", pad, n.prefix)
	}
	if n.term != nil {
		fmt.Fprintf(sb, "%s%s= #%d %q\n", pad, indent, n.term.dest.Index, n.term.route.Pattern)
	}
	for _, c := range n.children {
		if c != nil {
			c.writeText(sb, depth+1, indent)
		}
	}
	for _, p := range n.pchildren {
		switch p.step.kind {
		case stepUntil:
			fmt.Fprintf(sb, "%s%s{%s until=%s}\n", pad, indent, p.step.name, delimText(p.step.until))
		case stepRegex:
			fmt.Fprintf(sb, "%s%s{%s re=%q until=%s}\n", pad, indent, p.step.name, p.step.source, delimText(p.step.until))
		}
		p.next.writeText(sb, depth+2, indent)
	}
}

func delimText(b byte) string {
	if b == UntilEnd {
		return "<end>"
	}
	return fmt.Sprintf("%q", b)
}
