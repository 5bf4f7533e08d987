package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/logs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/webreader/jina-mcp/reader"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content segment, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func testClient(t *testing.T, handler http.HandlerFunc) *reader.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return reader.New(logs.Default(), "",
		reader.WithEndpoints(server.URL, server.URL, server.URL),
		reader.WithHTTPClient(server.Client()),
	)
}

func TestReadPage(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Header.Get("X-Engine"), "browser")
		is.Equal(r.Header.Get("X-Return-Format"), "markdown")
		w.Write([]byte(`{"data":{"content":"# Page body"}}`))
	})

	_, handler := ReadPage(client)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ReadArgs{
		URL:            "https://example.com/article",
		ExtractionMode: "comprehensive",
		OutputFormat:   "markdown",
	})
	is.NoErr(err)
	is.Equal(res.IsError, false)
	is.Equal(resultText(t, res), "# Page body")
}

func TestReadPageDefaultsToStandard(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Header.Get("X-Engine"), "direct")
		is.Equal(r.Header.Get("X-Timeout"), "10")
		w.Write([]byte(`{"data":{"content":"ok"}}`))
	})

	_, handler := ReadPage(client)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ReadArgs{
		URL: "https://example.com",
	})
	is.NoErr(err)
	is.Equal(res.IsError, false)
}

func TestReadPageTimeoutOverride(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Header.Get("X-Timeout"), "30")
		w.Write([]byte(`{"data":{"content":"ok"}}`))
	})

	_, handler := ReadPage(client)
	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ReadArgs{
		URL:     "https://example.com",
		Timeout: 30,
	})
	is.NoErr(err)
}

func TestReadPageRemoteError(t *testing.T) {
	is := is.New(t)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	_, handler := ReadPage(client)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ReadArgs{
		URL: "https://example.com",
	})
	is.NoErr(err) // contained: rendered as an error result, not a protocol error
	is.Equal(res.IsError, true)
	is.True(strings.Contains(resultText(t, res), "502"))
}

// bypassTransport redirects raw.githubusercontent.com to the test server and
// records requested URLs.
type bypassTransport struct {
	server *httptest.Server
	got    []string
}

func (bt *bypassTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	bt.got = append(bt.got, req.URL.String())
	target, err := url.Parse(bt.server.URL)
	if err != nil {
		return nil, err
	}
	req.URL.Scheme = target.Scheme
	req.URL.Host = target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestReadPageGitHubBypass(t *testing.T) {
	is := is.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Method, http.MethodGet)
		w.Write([]byte("raw readme body"))
	}))
	defer server.Close()

	transport := &bypassTransport{server: server}
	client := reader.New(logs.Default(), "secret",
		reader.WithHTTPClient(&http.Client{Transport: transport}),
	)

	_, handler := ReadPage(client)
	res, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ReadArgs{
		URL:            "https://github.com/acme/repo/blob/main/README.md",
		ExtractionMode: "comprehensive",
		OutputFormat:   "structured",
	})
	is.NoErr(err)
	is.Equal(res.IsError, false)
	is.Equal(resultText(t, res), "raw readme body")
	is.Equal(len(transport.got), 1)
	is.Equal(transport.got[0], "https://raw.githubusercontent.com/acme/repo/refs/heads/main/README.md")
}
