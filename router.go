// Package stride is a compiled HTTP route dispatcher. Patterns bind opaque
// payloads to routes; Compile turns the whole set into an immutable matcher
// that answers millions of lookups per second with no allocation on the
// miss path.
package stride

import "fmt"

// Option configures a Router at construction.
type Option func(*Router)

// WithDefaultUntil sets the delimiter assumed for parameters that neither
// declare one nor are followed by a literal. The default is '/'.
func WithDefaultUntil(b byte) Option {
	return func(r *Router) { r.defaultUntil = b }
}

// Router accumulates destinations during the build phase. It is not safe
// for concurrent mutation; the Matcher it compiles is.
type Router struct {
	defaultUntil byte
	dests        []*Destination
}

// New returns an empty router.
func New(opts ...Option) *Router {
	r := &Router{defaultUntil: DefaultUntil}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Add parses the given patterns and registers them as one new destination
// bound to payload, returning the destination's index. On a parse error
// nothing is registered. Identical patterns registered twice are not
// deduplicated; the earlier registration wins at match time.
func (r *Router) Add(payload any, patterns ...string) (int, error) {
	if len(patterns) == 0 {
		return 0, parseErr(ErrEmptyPattern, "", 0, "destination needs at least one pattern")
	}
	routes := make([]*Route, 0, len(patterns))
	for _, p := range patterns {
		rt, err := ParseRoute(p, r.defaultUntil)
		if err != nil {
			return 0, err
		}
		routes = append(routes, rt)
	}
	d := &Destination{Index: len(r.dests), Routes: routes, Payload: payload}
	r.dests = append(r.dests, d)
	return d.Index, nil
}

// AddDestination registers a prebuilt destination, skipping the parser, and
// returns its assigned index.
func (r *Router) AddDestination(d *Destination) int {
	d.Index = len(r.dests)
	r.dests = append(r.dests, d)
	return d.Index
}

// Destinations returns the registered destinations in insertion order.
func (r *Router) Destinations() []*Destination {
	out := make([]*Destination, len(r.dests))
	copy(out, r.dests)
	return out
}

// Tree materializes the decision tree for the current destination set.
func (r *Router) Tree() *TreeNode {
	return buildTree(r.dests).root
}

// Compile builds the decision tree and emits the matcher. The matcher owns
// the tree; the router can keep accumulating destinations for a later
// Compile without affecting matchers already produced.
func (r *Router) Compile() (*Matcher, error) {
	for _, d := range r.dests {
		if len(d.Routes) == 0 {
			return nil, &CompileError{Reason: fmt.Sprintf("destination #%d has no routes", d.Index)}
		}
		for _, rt := range d.Routes {
			if len(rt.steps) == 0 {
				return nil, &CompileError{Reason: fmt.Sprintf("destination #%d: route %q has no steps", d.Index, rt.Pattern)}
			}
		}
	}
	return newMatcher(buildTree(r.dests)), nil
}
