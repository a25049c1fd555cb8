package stride

import "github.com/valyala/fasthttp"

// Context carries one request through its handler chain. Contexts are
// pooled; never retain one past the request.
type Context struct {
	RequestCtx *fasthttp.RequestCtx

	app      *App
	key      []byte // scratch for the "METHOD path" match input
	pnames   []string
	pvalues  [][]byte
	index    int
	handlers []Handler
}

func (c *Context) init(ctx *fasthttp.RequestCtx) {
	c.RequestCtx = ctx
	c.index = -1
	c.handlers = nil
	c.pnames = nil
	c.pvalues = nil
}

// App returns the owning application.
func (c *Context) App() *App { return c.app }

// Next runs the remaining handlers in the chain, stopping at the first
// error.
func (c *Context) Next() error {
	c.index++
	for n := len(c.handlers); c.index < n; c.index++ {
		if err := c.handlers[c.index](c); err != nil {
			return err
		}
	}
	return nil
}

// Abort skips the rest of the handler chain.
func (c *Context) Abort() {
	c.index = len(c.handlers)
}

// Param returns the captured value of a route parameter, or the first
// default (or "") when the parameter is absent.
func (c *Context) Param(name string, defaults ...string) string {
	for i, n := range c.pnames {
		if n == name {
			return string(c.pvalues[i])
		}
	}
	if len(defaults) > 0 {
		return defaults[0]
	}
	return ""
}

// ParamAs converts a route parameter to a primitive type, returning the
// zero value when the value does not parse; see toType for out-of-range
// numbers.
func ParamAs[T any](c *Context, name string) T {
	return toType[T](c.Param(name))
}

// Query returns a query string value, or the first default (or "").
func (c *Context) Query(name string, defaults ...string) string {
	if v := c.RequestCtx.QueryArgs().Peek(name); v != nil {
		return string(v)
	}
	if len(defaults) > 0 {
		return defaults[0]
	}
	return ""
}

// QueryArray returns every value of a repeated query key.
func (c *Context) QueryArray(name string) []string {
	vs := c.RequestCtx.QueryArgs().PeekMulti(name)
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// Status sets the response status code.
func (c *Context) Status(code int) *Context {
	c.RequestCtx.Response.SetStatusCode(code)
	return c
}

// SendString writes a plain-text body.
func (c *Context) SendString(s string) error {
	c.RequestCtx.Response.Header.SetContentType(contentTypeText)
	c.RequestCtx.Response.SetBodyString(s)
	return nil
}

// SendStatusCode responds with the code and its canonical reason phrase.
func (c *Context) SendStatusCode(code int) error {
	c.RequestCtx.Response.SetStatusCode(code)
	return c.SendString(StatusMessage(code))
}

// URL builds the URL of a named endpoint with the given parameter pairs.
func (c *Context) URL(endpoint string, pairs ...any) string {
	if e := c.app.endpoints[endpoint]; e != nil {
		return e.URL(pairs...)
	}
	return ""
}

func (c *Context) send(contentType string, enc EncoderFunc, v any) error {
	data, err := enc(v)
	if err != nil {
		return err
	}
	c.RequestCtx.Response.Header.SetContentType(contentType)
	c.RequestCtx.Response.SetBody(data)
	return nil
}

// SendJSON encodes v with the application's JSON encoder. When
// SecureJSONPrefix is set it is prepended to the body.
func (c *Context) SendJSON(v any) error {
	data, err := c.app.JsonEncoder(v)
	if err != nil {
		return err
	}
	c.RequestCtx.Response.Header.SetContentType(contentTypeJSON)
	if p := c.app.SecureJSONPrefix; p != "" {
		c.RequestCtx.Response.SetBodyString(p)
		c.RequestCtx.Response.AppendBody(data)
		return nil
	}
	c.RequestCtx.Response.SetBody(data)
	return nil
}

// SendJSONIndent encodes v as pretty-printed JSON. When SecureJSONPrefix is
// set it is prepended to the body.
func (c *Context) SendJSONIndent(v any, prefix, indent string) error {
	data, err := c.app.JsonIndent(v, prefix, indent)
	if err != nil {
		return err
	}
	c.RequestCtx.Response.Header.SetContentType(contentTypeJSON)
	if p := c.app.SecureJSONPrefix; p != "" {
		c.RequestCtx.Response.SetBodyString(p)
		c.RequestCtx.Response.AppendBody(data)
		return nil
	}
	c.RequestCtx.Response.SetBody(data)
	return nil
}

// BindJSON decodes the request body as JSON into v.
func (c *Context) BindJSON(v any) error {
	return c.app.JsonDecoder(c.RequestCtx.PostBody(), v)
}

// SendXML encodes v as XML.
func (c *Context) SendXML(v any) error {
	return c.send(contentTypeXML, c.app.XmlEncoder, v)
}

// BindXML decodes the request body as XML into v.
func (c *Context) BindXML(v any) error {
	return c.app.XmlDecoder(c.RequestCtx.PostBody(), v)
}

// SendYAML encodes v as YAML.
func (c *Context) SendYAML(v any) error {
	return c.send(contentTypeYAML, c.app.YamlEncoder, v)
}

// BindYAML decodes the request body as YAML into v.
func (c *Context) BindYAML(v any) error {
	return c.app.YamlDecoder(c.RequestCtx.PostBody(), v)
}

// SendTOML encodes v as TOML.
func (c *Context) SendTOML(v any) error {
	return c.send(contentTypeTOML, c.app.TomlEncoder, v)
}

// BindTOML decodes the request body as TOML into v.
func (c *Context) BindTOML(v any) error {
	return c.app.TomlDecoder(c.RequestCtx.PostBody(), v)
}

// SendCBOR encodes v as CBOR.
func (c *Context) SendCBOR(v any) error {
	return c.send(contentTypeCBOR, c.app.CborEncoder, v)
}

// BindCBOR decodes the request body as CBOR into v.
func (c *Context) BindCBOR(v any) error {
	return c.app.CborDecoder(c.RequestCtx.PostBody(), v)
}
