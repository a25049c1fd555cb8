package stride

import "strings"

// Group is a collection of routes sharing a path prefix and middleware
// handlers. Groups nest; an App embeds the root group.
type Group struct {
	prefix   string
	app      *App
	handlers []Handler
}

// NewGroup creates a subgroup under the given prefix with optional shared
// middleware.
func (g *Group) NewGroup(prefix string, handlers ...Handler) *Group {
	return &Group{
		prefix:   g.prefix + prefix,
		app:      g.app,
		handlers: combineHandlers(g.handlers, handlers),
	}
}

// Use appends middleware shared by every route registered through this
// group afterwards.
func (g *Group) Use(handlers ...Handler) {
	g.handlers = append(g.handlers, handlers...)
}

// Get registers handlers for the GET HTTP method.
func (g *Group) Get(path string, handlers ...Handler) *Endpoint {
	return newEndpoint(path, g).Get(handlers...)
}

// Post registers handlers for the POST HTTP method.
func (g *Group) Post(path string, handlers ...Handler) *Endpoint {
	return newEndpoint(path, g).Post(handlers...)
}

// Put registers handlers for the PUT HTTP method.
func (g *Group) Put(path string, handlers ...Handler) *Endpoint {
	return newEndpoint(path, g).Put(handlers...)
}

// Patch registers handlers for the PATCH HTTP method.
func (g *Group) Patch(path string, handlers ...Handler) *Endpoint {
	return newEndpoint(path, g).Patch(handlers...)
}

// Delete registers handlers for the DELETE HTTP method.
func (g *Group) Delete(path string, handlers ...Handler) *Endpoint {
	return newEndpoint(path, g).Delete(handlers...)
}

// Head registers handlers for the HEAD HTTP method.
func (g *Group) Head(path string, handlers ...Handler) *Endpoint {
	return newEndpoint(path, g).Head(handlers...)
}

// Options registers handlers for the OPTIONS HTTP method.
func (g *Group) Options(path string, handlers ...Handler) *Endpoint {
	return newEndpoint(path, g).Options(handlers...)
}

// To registers the same handlers for multiple comma-separated HTTP methods.
//
//	g.To("GET,POST", "/users", usersHandler)
func (g *Group) To(methods, path string, handlers ...Handler) *Endpoint {
	e := newEndpoint(path, g)
	for _, method := range strings.Split(methods, ",") {
		e.add(strings.TrimSpace(method), handlers)
	}
	return e
}
