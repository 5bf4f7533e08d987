// Package reader is a client for the Jina reader API family: page reading
// through r.jina.ai, web search through s.jina.ai, and statement grounding
// through g.jina.ai. Each call maps structured inputs onto one HTTP request
// and normalizes the response into text.
package reader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/webreader/jina-mcp/githuburl"
)

// Default endpoints for the hosted API.
const (
	DefaultReaderURL    = "https://r.jina.ai"
	DefaultSearchURL    = "https://s.jina.ai"
	DefaultGroundingURL = "https://g.jina.ai"
)

const maxDirectFetchSize = 1024 * 1024 // 1MB cap on direct raw fetches

// Mode selects the extraction engine and content strategy the reader uses.
type Mode string

const (
	ModeStandard      Mode = "standard"
	ModeComprehensive Mode = "comprehensive"
	ModeCleanContent  Mode = "clean_content"
)

// Format selects the textual structure of the returned content.
type Format string

const (
	FormatDefault    Format = "default"
	FormatMarkdown   Format = "markdown"
	FormatText       Format = "text"
	FormatStructured Format = "structured"
)

// New creates a reader client. An empty key means unauthenticated access at
// the reduced service tier.
func New(log *slog.Logger, key string, options ...Option) *Client {
	c := &Client{
		log:          log,
		key:          key,
		hc:           &http.Client{},
		readerURL:    DefaultReaderURL,
		searchURL:    DefaultSearchURL,
		groundingURL: DefaultGroundingURL,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithEndpoints overrides the reader, search, and grounding endpoints.
func WithEndpoints(readerURL, searchURL, groundingURL string) Option {
	return func(c *Client) {
		c.readerURL = readerURL
		c.searchURL = searchURL
		c.groundingURL = groundingURL
	}
}

// Client calls the remote content API. Clients are stateless between calls
// and safe for concurrent use.
type Client struct {
	log          *slog.Logger
	key          string
	hc           *http.Client
	readerURL    string
	searchURL    string
	groundingURL string
}

// StatusError is a non-2xx response from the remote API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote API error (status %d): %s", e.Status, strings.TrimSpace(e.Body))
}

// ReadRequest describes one page read.
type ReadRequest struct {
	URL            string
	Mode           Mode
	Format         Format
	TimeoutSeconds int // 0 means use the mode's default
}

// readerResponse is the reader endpoint's envelope. Fields beyond content
// exist in the payload but only content feeds the tool result.
type readerResponse struct {
	Data struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"data"`
}

// Read fetches a page through the reader endpoint and returns its extracted
// content as text. GitHub blob URLs bypass the reader entirely: the raw file
// is fetched directly and returned verbatim, ignoring mode and format.
func (c *Client) Read(ctx context.Context, in ReadRequest) (string, error) {
	target := in.URL
	if rewritten, ok := githuburl.Rewrite(target); ok {
		c.log.Debug("reader: fetching raw github content", "url", rewritten)
		return c.fetchDirect(ctx, rewritten)
	}

	body, err := json.Marshal(map[string]string{"url": target})
	if err != nil {
		return "", fmt.Errorf("reader: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.readerURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("reader: creating request: %w", err)
	}
	req.Header = buildReadHeaders(in)
	c.authorize(req)

	payload, err := c.do(req)
	if err != nil {
		return "", err
	}

	var res readerResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return "", fmt.Errorf("reader: decoding response: %w", err)
	}
	if res.Data.Content != "" {
		return res.Data.Content, nil
	}
	if len(bytes.TrimSpace(payload)) > 0 {
		return string(payload), nil
	}
	return "No content could be extracted from this page.", nil
}

// SearchRequest describes one web search.
type SearchRequest struct {
	Query string
	Count int    // accepted for interface compatibility; the remote decides how many results to return
	Site  string // optional domain restriction
}

// Search queries the search endpoint and returns the response body as-is.
// Result slicing and reformatting belong to the legacy variant only; see
// SearchFormatted.
func (c *Client) Search(ctx context.Context, in SearchRequest) (string, error) {
	payload, err := c.search(ctx, in)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (c *Client) search(ctx context.Context, in SearchRequest) ([]byte, error) {
	target := c.searchURL + "/?q=" + url.QueryEscape(in.Query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("reader: creating search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Skip full page content in results to keep the payload small.
	req.Header.Set("X-Respond-With", "no-content")
	if in.Site != "" {
		req.Header.Set("X-Site", "https://"+in.Site)
	}
	c.authorize(req)
	return c.do(req)
}

// FactCheck grounds a statement against the web and returns the full
// grounding payload pretty-printed. Legacy tool set only.
func (c *Client) FactCheck(ctx context.Context, statement string, deepDive bool) (string, error) {
	body, err := json.Marshal(map[string]any{
		"statement": statement,
		"deepdive":  deepDive,
	})
	if err != nil {
		return "", fmt.Errorf("reader: encoding statement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.groundingURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("reader: creating grounding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	payload, err := c.do(req)
	if err != nil {
		return "", err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		return "", fmt.Errorf("reader: decoding grounding response: %w", err)
	}
	return pretty.String(), nil
}

// fetchDirect issues a plain unauthenticated GET and returns the body
// verbatim, capped at maxDirectFetchSize.
func (c *Client) fetchDirect(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("reader: creating request: %w", err)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("reader: request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxDirectFetchSize+1))
	if err != nil {
		return "", fmt.Errorf("reader: reading response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &StatusError{Status: res.StatusCode, Body: string(body)}
	}
	if len(body) > maxDirectFetchSize {
		return string(body[:maxDirectFetchSize]) + "\n... [content truncated]", nil
	}
	return string(body), nil
}

// do executes the request and returns the body, converting non-2xx responses
// into a *StatusError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reader: request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reader: reading response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Status: res.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}
}

// buildReadHeaders maps mode and format onto the reader's header directives.
// Format directives apply after mode directives; a caller timeout wins over
// the mode default.
func buildReadHeaders(in ReadRequest) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")

	switch in.Mode {
	case ModeComprehensive:
		h.Set("X-Engine", "browser")
		h.Set("X-With-Links-Summary", "true")
		h.Set("X-With-Images-Summary", "true")
		h.Set("X-Timeout", "15")
	case ModeCleanContent:
		h.Set("X-Engine", "browser")
		h.Set("X-Target-Selector", "main,article,.content")
		h.Set("X-Remove-Selector", "nav,header,footer,.sidebar,.ads")
		h.Set("X-Timeout", "15")
	default: // ModeStandard
		h.Set("X-Engine", "direct")
		h.Set("X-With-Links-Summary", "true")
		h.Set("X-Timeout", "10")
	}

	switch in.Format {
	case FormatMarkdown:
		h.Set("X-Return-Format", "markdown")
	case FormatText:
		h.Set("X-Return-Format", "text")
	case FormatStructured:
		h.Set("X-Return-Format", "markdown")
		h.Set("X-With-Links-Summary", "true")
		h.Set("X-With-Images-Summary", "true")
	}

	if in.TimeoutSeconds > 0 {
		h.Set("X-Timeout", strconv.Itoa(in.TimeoutSeconds))
	}

	return h
}
