package stride

import (
	"bytes"
	"sync"
)

// Match is the result of a successful matcher call. Params hold the
// captured spans in pattern order; they are subslices of the matched input
// and stay valid only as long as the input does.
type Match struct {
	Destination *Destination
	Params      [][]byte
	names       []string
}

// Payload returns the matched destination's payload.
func (m Match) Payload() any { return m.Destination.Payload }

// Names returns the parameter names of the winning route, in pattern order.
func (m Match) Names() []string { return m.names }

// Param returns the captured span for the named parameter, or nil.
func (m Match) Param(name string) []byte {
	for i, n := range m.names {
		if n == name {
			return m.Params[i]
		}
	}
	return nil
}

// matchFunc is one compiled tree node. It reports whether the input from
// pos onward matches the node's subtree, recording captures and the winning
// terminal in st on success.
type matchFunc func(st *matchState, in []byte, pos int) bool

// matchState is per-call scratch, pooled so that a miss allocates nothing.
type matchState struct {
	params [][]byte
	term   *terminal
}

// Matcher is the compiled, immutable artifact produced by Router.Compile.
// It is safe for simultaneous use from any number of goroutines.
type Matcher struct {
	root      matchFunc
	tree      *TreeNode
	conflicts []*ConflictError
	maxParams int
	pool      sync.Pool
}

func newMatcher(b *treeBuilder) *Matcher {
	m := &Matcher{
		root:      compileNode(b.root),
		tree:      b.root,
		conflicts: b.conflicts,
		maxParams: b.maxParams,
	}
	m.pool.New = func() any {
		return &matchState{params: make([][]byte, m.maxParams)}
	}
	return m
}

// Match runs the compiled matcher against input. The boolean is false when
// no registered route matches; that is a value, not an error.
func (m *Matcher) Match(input []byte) (Match, bool) {
	st := m.pool.Get().(*matchState)
	st.term = nil
	if !m.root(st, input, 0) {
		m.pool.Put(st)
		return Match{}, false
	}
	t := st.term
	names := t.route.pnames
	var params [][]byte
	if len(names) > 0 {
		params = make([][]byte, len(names))
		copy(params, st.params[:len(names)])
	}
	m.pool.Put(st)
	return Match{Destination: t.dest, Params: params, names: names}, true
}

// MatchString is Match over a string without copying it.
func (m *Matcher) MatchString(s string) (Match, bool) {
	return m.Match(s2b(s))
}

// Tree returns the decision tree the matcher was compiled from.
func (m *Matcher) Tree() *TreeNode { return m.tree }

// Conflicts returns the routes shadowed by earlier registrations, if any.
func (m *Matcher) Conflicts() []*ConflictError { return m.conflicts }

// compileNode emits the matchFunc for one node. Static children become a
// 256-entry dispatch table consulted on the byte after the prefix;
// parametric children are tried in order only when no static child takes
// the input; the terminal applies last, and only at end of input.
func compileNode(n *TreeNode) matchFunc {
	prefix := n.prefix
	term := n.term

	var table []matchFunc
	for b, c := range n.children {
		if c == nil {
			continue
		}
		if table == nil {
			table = make([]matchFunc, 256)
		}
		table[b] = compileNode(c)
	}

	var params []matchFunc
	for _, p := range n.pchildren {
		params = append(params, compileParam(p))
	}

	return func(st *matchState, in []byte, pos int) bool {
		if len(prefix) > 0 {
			if !bytes.HasPrefix(in[pos:], prefix) {
				return false
			}
			pos += len(prefix)
		}
		if table != nil && pos < len(in) {
			if fn := table[in[pos]]; fn != nil && fn(st, in, pos) {
				return true
			}
		}
		for _, fn := range params {
			if fn(st, in, pos) {
				return true
			}
		}
		if term != nil && pos == len(in) {
			st.term = term
			return true
		}
		return false
	}
}

// compileParam emits the matchFunc for a parametric child: scan to the
// delimiter (or end of input when absent, or always for the end sentinel),
// test the anchored regex if any, record the span, continue on the tail.
// The delimiter byte is not consumed; the continuation dispatches on it.
func compileParam(p *paramNode) matchFunc {
	next := compileNode(p.next)
	idx := p.pindex
	until := p.step.until
	re := p.step.pattern

	if until == UntilEnd {
		return func(st *matchState, in []byte, pos int) bool {
			span := in[pos:]
			if re != nil && !re.Match(span) {
				return false
			}
			st.params[idx] = span
			return next(st, in, len(in))
		}
	}
	return func(st *matchState, in []byte, pos int) bool {
		end := len(in)
		if j := bytes.IndexByte(in[pos:], until); j >= 0 {
			end = pos + j
		}
		span := in[pos:end]
		if re != nil && !re.Match(span) {
			return false
		}
		st.params[idx] = span
		return next(st, in, end)
	}
}
