package tools

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/matryer/is"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestWebSearchRawPassthrough(t *testing.T) {
	is := is.New(t)
	raw := `{"code":200,"data":[{"title":"Result one"},{"title":"Result two"}]}`
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Query().Get("q"), "quantum computing")
		is.Equal(r.Header.Get("X-Respond-With"), "no-content")
		is.Equal(r.Header.Get("X-Site"), "https://github.com")
		w.Write([]byte(raw))
	})

	_, handler := WebSearch(client, false)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, SearchArgs{
		Query: "quantum computing",
		Site:  "github.com",
	})
	is.NoErr(err)
	is.Equal(res.IsError, false)
	// The current variant returns the payload untouched, no slicing.
	is.Equal(resultText(t, res), raw)
}

func TestWebSearchSchemaOmitsFormatUnlessLegacy(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	current, _ := WebSearch(client, false)
	currentSchema, ok := current.InputSchema.(*jsonschema.Schema)
	is.True(ok)
	_, ok = currentSchema.Properties["format"]
	is.Equal(ok, false)

	legacy, _ := WebSearch(client, true)
	legacySchema, ok := legacy.InputSchema.(*jsonschema.Schema)
	is.True(ok)
	_, ok = legacySchema.Properties["format"]
	is.True(ok)
}

func TestWebSearchLegacyFormatsAndSlices(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"title":"First","url":"https://one.example.com","description":"one"},
			{"title":"Second","url":"https://two.example.com","description":"two"},
			{"title":"Third","url":"https://three.example.com","description":"three"}
		]}`))
	})

	_, handler := WebSearch(client, true)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, SearchArgs{
		Query: "golang",
		Count: 2,
	})
	is.NoErr(err)
	out := resultText(t, res)
	is.True(strings.Contains(out, "### [First](https://one.example.com)"))
	is.True(!strings.Contains(out, "Third"))
}

func TestWebSearchEmptyQuery(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued")
	})

	_, handler := WebSearch(client, false)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, SearchArgs{})
	is.NoErr(err)
	is.Equal(res.IsError, true)
}

func TestWebSearchRemoteError(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad key"))
	})

	_, handler := WebSearch(client, false)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, SearchArgs{Query: "golang"})
	is.NoErr(err)
	is.Equal(res.IsError, true)
	is.True(strings.Contains(resultText(t, res), "401"))
}
