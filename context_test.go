package stride

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/valyala/fasthttp"
)

// newTestContext creates a minimal *Context with a synthetic
// fasthttp.RequestCtx so individual helpers can be unit-tested without
// starting a server.
func newTestContext(method, uri string, headers map[string]string, body []byte) (*Context, *fasthttp.RequestCtx) {
	req := fasthttp.AcquireRequest()

	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.SetBody(body)
	}

	native := &fasthttp.RequestCtx{}
	native.Init(req, nil, nil)

	c := &Context{
		RequestCtx: native,
		app:        NewApp(),
		index:      -1,
	}
	return c, native
}

func TestContext_Param(t *testing.T) {
	c, _ := newTestContext("GET", "/users/123", nil, nil)

	// Simulate router population
	c.pnames = []string{"id"}
	c.pvalues = [][]byte{[]byte("123")}

	if got := c.Param("id"); got != "123" {
		t.Fatalf("Param(id) = %q; want %q", got, "123")
	}
	if got := c.Param("missing", "default"); got != "default" {
		t.Fatalf("Param missing default = %q; want %q", got, "default")
	}
	if got := ParamAs[int](c, "id"); got != 123 {
		t.Fatalf("ParamAs[int](id) = %d; want 123", got)
	}
}

func TestContext_Query(t *testing.T) {
	c, _ := newTestContext("GET", "/search?q=stride&lang=en&lang=fr", nil, nil)

	if got := c.Query("q"); got != "stride" {
		t.Fatalf("Query(q) = %q; want %q", got, "stride")
	}
	if got := c.Query("none", "dft"); got != "dft" {
		t.Fatalf("Query default = %q; want %q", got, "dft")
	}

	langs := c.QueryArray("lang")
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "fr" {
		t.Fatalf("QueryArray(lang) = %#v; want [en fr]", langs)
	}
}

func TestContext_SendString(t *testing.T) {
	c, native := newTestContext("GET", "/", nil, nil)

	if err := c.SendString("hello"); err != nil {
		t.Fatalf("SendString error = %v", err)
	}
	if got := string(native.Response.Body()); got != "hello" {
		t.Fatalf("response body = %q; want %q", got, "hello")
	}
}

type user struct {
	Name string `json:"name" xml:"name" yaml:"name" toml:"name" cbor:"name"`
	Age  int    `json:"age" xml:"age" yaml:"age" toml:"age" cbor:"age"`
}

func TestContext_JSON(t *testing.T) {
	input := []byte(`{"name":"Alice","age":30}`)
	c, native := newTestContext("POST", "/", map[string]string{
		"Content-Type": "application/json",
	}, input)

	var u user
	if err := c.BindJSON(&u); err != nil {
		t.Fatalf("BindJSON failed: %v", err)
	}
	if u.Name != "Alice" || u.Age != 30 {
		t.Fatalf("Parsed JSON incorrect: %+v", u)
	}

	if err := c.SendJSON(u); err != nil {
		t.Fatalf("SendJSON failed: %v", err)
	}
	if !bytes.Contains(native.Response.Body(), []byte(`"name":"Alice"`)) {
		t.Fatalf("response JSON = %s", native.Response.Body())
	}
}

func TestContext_SecureJSONPrefix(t *testing.T) {
	c, native := newTestContext("GET", "/", nil, nil)
	c.app.SecureJSONPrefix = "while(1);"

	if err := c.SendJSON(map[string]int{"n": 1}); err != nil {
		t.Fatalf("SendJSON failed: %v", err)
	}
	if !bytes.HasPrefix(native.Response.Body(), []byte("while(1);")) {
		t.Fatalf("missing prefix: %s", native.Response.Body())
	}
}

func TestContext_XML(t *testing.T) {
	input := []byte(`<user><name>Alice</name><age>30</age></user>`)
	c, native := newTestContext("POST", "/", map[string]string{
		"Content-Type": "application/xml",
	}, input)

	var u user
	if err := c.BindXML(&u); err != nil {
		t.Fatalf("BindXML failed: %v", err)
	}

	if err := c.SendXML(u); err != nil {
		t.Fatalf("SendXML failed: %v", err)
	}
	if !bytes.Contains(native.Response.Body(), []byte(`<name>Alice</name>`)) {
		t.Fatalf("response XML = %s", native.Response.Body())
	}
}

func TestContext_YAML(t *testing.T) {
	input := []byte("name: Alice\nage: 30")
	c, native := newTestContext("POST", "/", map[string]string{
		"Content-Type": "application/x-yaml",
	}, input)

	var u user
	if err := c.BindYAML(&u); err != nil {
		t.Fatalf("BindYAML failed: %v", err)
	}

	if err := c.SendYAML(u); err != nil {
		t.Fatalf("SendYAML failed: %v", err)
	}
	if !bytes.Contains(native.Response.Body(), []byte("name: Alice")) {
		t.Fatalf("response YAML = %s", native.Response.Body())
	}
}

func TestContext_TOML(t *testing.T) {
	input := []byte("name = \"Alice\"\nage = 30")
	c, native := newTestContext("POST", "/", map[string]string{
		"Content-Type": "application/toml",
	}, input)

	var u user
	if err := c.BindTOML(&u); err != nil {
		t.Fatalf("BindTOML failed: %v", err)
	}
	if u.Name != "Alice" || u.Age != 30 {
		t.Fatalf("TOML bind incorrect: %+v", u)
	}

	if err := c.SendTOML(u); err != nil {
		t.Fatalf("SendTOML failed: %v", err)
	}

	body := native.Response.Body()
	if !bytes.Contains(body, []byte(`name = "Alice"`)) &&
		!bytes.Contains(body, []byte(`name = 'Alice'`)) {
		t.Fatalf("response TOML missing name; got: %s", body)
	}
}

func TestContext_CBOR(t *testing.T) {
	encoded, _ := cbor.Marshal(user{Name: "Alice", Age: 30})
	c, native := newTestContext("POST", "/", map[string]string{
		"Content-Type": "application/cbor",
	}, encoded)

	var u user
	if err := c.BindCBOR(&u); err != nil {
		t.Fatalf("BindCBOR failed: %v", err)
	}
	if u.Name != "Alice" || u.Age != 30 {
		t.Fatalf("CBOR bind incorrect: %+v", u)
	}

	if err := c.SendCBOR(u); err != nil {
		t.Fatalf("SendCBOR failed: %v", err)
	}
	if len(native.Response.Body()) == 0 {
		t.Fatalf("response CBOR is empty")
	}
}
