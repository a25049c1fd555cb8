package stride

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is a registered path, optionally named, usable for reverse URL
// generation.
type Endpoint struct {
	group    *Group
	name     string
	path     string
	template string
}

// newEndpoint creates an Endpoint under the given group. A trailing "*" is
// shorthand for a rest parameter capturing the remainder of the path.
func newEndpoint(path string, g *Group) *Endpoint {
	path = g.prefix + path
	name := path

	if strings.HasSuffix(path, "*") {
		path = path[:len(path)-1] + `{rest::\n}`
	}

	e := &Endpoint{
		group:    g,
		name:     name,
		path:     path,
		template: buildURLTemplate(path),
	}
	g.app.endpoints[path] = e
	return e
}

// Name sets a custom name for the endpoint and registers it under that
// name.
//
//	app.Get("/user/{id}", show).Name("user.show")
func (e *Endpoint) Name(name string) *Endpoint {
	e.name = name
	e.group.app.endpoints[name] = e
	return e
}

// Get registers handlers for the GET HTTP method.
func (e *Endpoint) Get(handlers ...Handler) *Endpoint {
	return e.add(MethodGet, handlers)
}

// Post registers handlers for the POST HTTP method.
func (e *Endpoint) Post(handlers ...Handler) *Endpoint {
	return e.add(MethodPost, handlers)
}

// Put registers handlers for the PUT HTTP method.
func (e *Endpoint) Put(handlers ...Handler) *Endpoint {
	return e.add(MethodPut, handlers)
}

// Patch registers handlers for the PATCH HTTP method.
func (e *Endpoint) Patch(handlers ...Handler) *Endpoint {
	return e.add(MethodPatch, handlers)
}

// Delete registers handlers for the DELETE HTTP method.
func (e *Endpoint) Delete(handlers ...Handler) *Endpoint {
	return e.add(MethodDelete, handlers)
}

// Head registers handlers for the HEAD HTTP method.
func (e *Endpoint) Head(handlers ...Handler) *Endpoint {
	return e.add(MethodHead, handlers)
}

// Options registers handlers for the OPTIONS HTTP method.
func (e *Endpoint) Options(handlers ...Handler) *Endpoint {
	return e.add(MethodOptions, handlers)
}

// To registers the same handlers for multiple comma-separated HTTP methods.
func (e *Endpoint) To(methods string, handlers ...Handler) *Endpoint {
	for _, method := range strings.Split(methods, ",") {
		e.add(strings.TrimSpace(method), handlers)
	}
	return e
}

func (e *Endpoint) add(method string, handlers []Handler) *Endpoint {
	hh := combineHandlers(e.group.handlers, handlers)
	e.group.app.add(method, e.path, hh)
	return e
}

// URL generates a URL path from the endpoint template and parameter pairs.
//
//	e := app.Get("/users/{id}", show).Name("user.show")
//	u := e.URL("id", 42) // => "/users/42"
func (e *Endpoint) URL(pairs ...any) (s string) {
	s = e.template
	for i := 0; i < len(pairs); i += 2 {
		name := fmt.Sprintf("{%v}", pairs[i])
		value := ""
		if i < len(pairs)-1 {
			value = url.QueryEscape(fmt.Sprint(pairs[i+1]))
		}
		s = strings.ReplaceAll(s, name, value)
	}
	return
}

// buildURLTemplate strips regex and delimiter suffixes from the parameters
// of a path, leaving a reusable "{name}" template.
//
//	"/users/{id:[0-9]+}/posts/{slug}" => "/users/{id}/posts/{slug}"
func buildURLTemplate(path string) string {
	var sb strings.Builder
	i := 0
	for i < len(path) {
		if path[i] != '{' {
			sb.WriteByte(path[i])
			i++
			continue
		}
		j := i + 1
		nameStart := j
		for j < len(path) && isNameByte(path[j], j == nameStart) {
			j++
		}
		name := path[nameStart:j]
		depth := 1
		for j < len(path) && depth > 0 {
			switch path[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		sb.WriteString("{")
		sb.WriteString(name)
		sb.WriteString("}")
		i = j
	}
	return sb.String()
}

// combineHandlers merges group-level handlers with route-level handlers.
// Group handlers run first.
func combineHandlers(h1 []Handler, h2 []Handler) []Handler {
	hh := make([]Handler, len(h1)+len(h2))
	copy(hh, h1)
	copy(hh[len(h1):], h2)
	return hh
}
