package stride

import (
	"strings"
	"testing"
)

func mustRoute(t *testing.T, pattern string) *Route {
	t.Helper()
	rt, err := ParseRoute(pattern, DefaultUntil)
	if err != nil {
		t.Fatalf("ParseRoute(%q): %v", pattern, err)
	}
	return rt
}

func destOf(t *testing.T, index int, patterns ...string) *Destination {
	t.Helper()
	d := &Destination{Index: index, Payload: index}
	for _, p := range patterns {
		d.Routes = append(d.Routes, mustRoute(t, p))
	}
	return d
}

func TestTree_RadixSplit(t *testing.T) {
	b := buildTree([]*Destination{
		destOf(t, 0, "GET /ping"),
		destOf(t, 1, "GET /pong"),
	})

	g := b.root.children['G']
	if g == nil {
		t.Fatal("missing child for 'G'")
	}
	if string(g.prefix) != "GET /p" {
		t.Fatalf("split prefix = %q, want %q", g.prefix, "GET /p")
	}
	i, o := g.children['i'], g.children['o']
	if i == nil || o == nil {
		t.Fatal("split tails missing")
	}
	if string(i.prefix) != "ing" || string(o.prefix) != "ong" {
		t.Fatalf("tails = %q, %q", i.prefix, o.prefix)
	}
	if i.term == nil || i.term.dest.Index != 0 {
		t.Fatal("terminal for /ping missing or wrong")
	}
	if o.term == nil || o.term.dest.Index != 1 {
		t.Fatal("terminal for /pong missing or wrong")
	}
}

func TestTree_PrefixConcatenationIsLossless(t *testing.T) {
	b := buildTree([]*Destination{
		destOf(t, 0, "GET /a/bb/ccc"),
		destOf(t, 1, "GET /a/bb/cd"),
		destOf(t, 2, "GET /a/bx"),
	})

	var walk func(n *TreeNode, acc string)
	seen := map[string]bool{}
	walk = func(n *TreeNode, acc string) {
		acc += string(n.prefix)
		if n.term != nil {
			seen[acc] = true
		}
		for _, c := range n.children {
			if c != nil {
				walk(c, acc)
			}
		}
	}
	walk(b.root, "")

	for _, want := range []string{"GET /a/bb/ccc", "GET /a/bb/cd", "GET /a/bx"} {
		if !seen[want] {
			t.Errorf("literal path %q not reconstructible from prefixes", want)
		}
	}
}

func TestTree_ParametricChildren(t *testing.T) {
	b := buildTree([]*Destination{
		destOf(t, 0, "GET /users/{id:[0-9]+}"),
		destOf(t, 1, "GET /users/{id}"),
		destOf(t, 2, "GET /users/{uid}"), // same shape as {id}: shares the node
	})

	n := b.root.children['G']
	if n == nil || string(n.prefix) != "GET /users/" {
		t.Fatalf("unexpected layout: %v", b.root.ToText("  "))
	}
	if len(n.pchildren) != 2 {
		t.Fatalf("pchildren = %d, want 2 (regex + shared until)", len(n.pchildren))
	}
	if n.pchildren[0].step.kind != stepRegex {
		t.Fatal("registration order lost: regex param should come first")
	}
	// {uid} merged into {id}'s node, so {id}'s earlier terminal shadows it.
	if len(b.conflicts) != 1 || b.conflicts[0].Shadowed != "GET /users/{uid}" {
		t.Fatalf("conflicts = %v", b.conflicts)
	}
}

func TestTree_TerminalKeepFirst(t *testing.T) {
	b := buildTree([]*Destination{
		destOf(t, 0, "GET /dup"),
		destOf(t, 1, "GET /dup"),
	})
	n := b.root.children['G']
	if n.term == nil || n.term.dest.Index != 0 {
		t.Fatal("earlier registration must keep the terminal")
	}
	if len(b.conflicts) != 1 || b.conflicts[0].Kept != "GET /dup" {
		t.Fatalf("conflicts = %v", b.conflicts)
	}
}

func TestTree_MaxParams(t *testing.T) {
	b := buildTree([]*Destination{
		destOf(t, 0, "GET /a/{x}/{y}/{z}"),
		destOf(t, 1, "GET /b/{x}"),
	})
	if b.maxParams != 3 {
		t.Fatalf("maxParams = %d, want 3", b.maxParams)
	}
}

func TestTree_ToText(t *testing.T) {
	b := buildTree([]*Destination{
		destOf(t, 0, "GET /users/{id:[0-9]+}"),
		destOf(t, 1, `GET /static/{path::\n}`),
	})
	dump := b.root.ToText("  ")
	for _, want := range []string{"GET /", `{id re="[0-9]+"`, "{path until=<end>}", `#0`, `#1`} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}
