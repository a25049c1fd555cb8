package stride

import (
	"encoding/xml"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/reuseport"
	"gopkg.in/yaml.v3"
)

// Handler processes one request. Returning an error hands control to the
// application's ErrorHandler.
type Handler func(*Context) error

// App serves HTTP over fasthttp on top of one compiled matcher. Routes are
// registered as "METHOD path" patterns; the matcher is compiled once, on
// the first request or an explicit Build, and is immutable afterwards.
type App struct {
	Group // root group for registering routes directly

	router    *Router
	matcher   *Matcher
	buildOnce sync.Once
	buildErr  error

	// Request context pooling for performance
	pool sync.Pool

	// Handlers executed when no route matches
	notFound         []Handler
	notFoundHandlers []Handler

	// Named endpoint registry
	endpoints map[string]*Endpoint

	// Custom error handler
	ErrorHandler func(*Context, error) error

	// Use SO_REUSEPORT for multiple listeners on same port
	useReusePort bool

	// SecureJSONPrefix, when set, is prepended to every JSON response to
	// defeat JSON hijacking. Common value: "while(1);"
	SecureJSONPrefix string

	// Codec hooks. Defaults use sonic for JSON and the usual suspects for
	// the other formats; swap them to change how Bind*/Send* behave.
	JsonDecoder DecoderFunc
	JsonEncoder EncoderFunc
	JsonIndent  IndentFunc
	XmlDecoder  DecoderFunc
	XmlEncoder  EncoderFunc
	XmlIndent   IndentFunc
	YamlDecoder DecoderFunc
	YamlEncoder EncoderFunc
	TomlDecoder DecoderFunc
	TomlEncoder EncoderFunc
	CborDecoder DecoderFunc
	CborEncoder EncoderFunc
}

// NewApp creates an application with default codecs, fallback handlers and
// context pooling.
func NewApp() *App {
	a := &App{
		router:      New(),
		endpoints:   make(map[string]*Endpoint),
		JsonDecoder: sonic.Unmarshal,
		JsonEncoder: sonic.Marshal,
		JsonIndent:  sonic.MarshalIndent,
		XmlDecoder:  xml.Unmarshal,
		XmlEncoder:  xml.Marshal,
		XmlIndent:   xml.MarshalIndent,
		YamlDecoder: yaml.Unmarshal,
		YamlEncoder: yaml.Marshal,
		TomlDecoder: toml.Unmarshal,
		TomlEncoder: toml.Marshal,
		CborDecoder: cbor.Unmarshal,
		CborEncoder: cbor.Marshal,
	}
	a.Group = Group{app: a}
	a.pool.New = func() any {
		return &Context{app: a, index: -1}
	}
	a.NotFound(MethodNotAllowedHandler, NotFoundHandler)
	a.ErrorHandler = func(c *Context, err error) error {
		if httpErr, ok := err.(HTTPError); ok {
			return c.Status(httpErr.StatusCode()).SendString(httpErr.Error())
		}
		return c.Status(StatusInternalServerError).SendString(StatusMessage(StatusInternalServerError))
	}
	return a
}

// Router exposes the underlying destination registry.
func (a *App) Router() *Router { return a.router }

// Use appends the specified handlers to the application. They are shared
// with every route registered afterwards and with the not-found chain;
// routes registered earlier keep the handler chain they were built with.
func (a *App) Use(handlers ...Handler) {
	a.Group.Use(handlers...)
	a.notFoundHandlers = combineHandlers(a.handlers, a.notFound)
}

// NotFound sets the handler chain used when no route matches. The final
// chain includes global middleware.
func (a *App) NotFound(handlers ...Handler) {
	a.notFound = handlers
	a.notFoundHandlers = combineHandlers(a.handlers, a.notFound)
}

// GetEndpoint returns a named endpoint, or nil.
func (a *App) GetEndpoint(name string) *Endpoint {
	return a.endpoints[name]
}

// ReusePort toggles SO_REUSEPORT listening in Run.
func (a *App) ReusePort(enable bool) { a.useReusePort = enable }

// add registers a handler chain for one method+path in the core router.
// Registration happens during the build phase, so a malformed path is a
// programming error and panics.
func (a *App) add(method, path string, handlers []Handler) {
	if _, err := a.router.Add(handlers, method+" "+path); err != nil {
		panic(err)
	}
}

// Build compiles the matcher. It runs once; later route registrations have
// no effect. Called implicitly by the first request.
func (a *App) Build() error {
	a.buildOnce.Do(func() {
		m, err := a.router.Compile()
		if err != nil {
			a.buildErr = err
			return
		}
		a.matcher = m
	})
	return a.buildErr
}

// HandleRequest is the request entry point for fasthttp. It acquires a
// context from the pool, matches "METHOD path" against the compiled
// matcher, runs the handler chain and routes any error to ErrorHandler.
func (a *App) HandleRequest(ctx *fasthttp.RequestCtx) {
	if err := a.Build(); err != nil {
		ctx.Error(StatusMessage(StatusInternalServerError), StatusInternalServerError)
		return
	}

	c := a.pool.Get().(*Context)
	defer a.pool.Put(c)
	c.init(ctx)

	c.key = append(append(append(c.key[:0], ctx.Method()...), ' '), ctx.Path()...)
	if m, ok := a.matcher.Match(c.key); ok {
		c.handlers, _ = m.Destination.Payload.([]Handler)
		c.pnames = m.Names()
		c.pvalues = m.Params
	} else {
		c.handlers = a.notFoundHandlers
	}

	if err := c.Next(); err != nil {
		if a.ErrorHandler != nil {
			if handleErr := a.ErrorHandler(c, err); handleErr != nil {
				c.SendStatusCode(StatusInternalServerError)
			}
		} else {
			c.SendStatusCode(StatusInternalServerError)
		}
	}
}

// findAllowedMethods probes every method for the given path against the
// compiled matcher, for Allow header synthesis on 405 responses.
func (a *App) findAllowedMethods(path []byte) []string {
	var ms []string
	buf := make([]byte, 0, len(path)+8)
	for _, m := range allMethods {
		buf = append(append(append(buf[:0], m...), ' '), path...)
		if _, ok := a.matcher.Match(buf); ok {
			ms = append(ms, m)
		}
	}
	return ms
}

// NotFoundHandler is the default fallback handler that returns 404.
func NotFoundHandler(*Context) error {
	return DefaultNotFound
}

// MethodNotAllowedHandler builds and sets the "Allow" header when a route
// exists for the path but not for the method. If the request method is not
// OPTIONS, it responds 405 Method Not Allowed.
func MethodNotAllowedHandler(c *Context) error {
	methods := c.App().findAllowedMethods(c.RequestCtx.Path())
	if len(methods) == 0 {
		return nil
	}
	methods = append(methods, MethodOptions)
	sort.Strings(methods)
	c.RequestCtx.Response.Header.Set(HeaderAllow, strings.Join(dedupStrings(methods), ", "))
	if b2s(c.RequestCtx.Method()) != MethodOptions {
		c.RequestCtx.Response.SetStatusCode(StatusMethodNotAllowed)
	}
	c.Abort()
	return nil
}

func dedupStrings(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// Run starts the HTTP server on the given address using fasthttp. With
// ReusePort enabled it uses SO_REUSEPORT for load balancing across
// processes.
func (a *App) Run(addr string) error {
	if err := a.Build(); err != nil {
		return err
	}
	if a.useReusePort {
		ln, err := reuseport.Listen("tcp4", addr)
		if err != nil {
			return err
		}
		return fasthttp.Serve(ln, a.HandleRequest)
	}
	return fasthttp.ListenAndServe(addr, a.HandleRequest)
}
