package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// SearchFormat selects the client-side rendering of search results in the
// legacy tool set. The current tool set returns the raw payload instead.
type SearchFormat string

const (
	SearchFormatMarkdown SearchFormat = "markdown"
	SearchFormatText     SearchFormat = "text"
	SearchFormatHTML     SearchFormat = "html"
)

// SearchResult is one entry of the search endpoint's data array.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

type searchResponse struct {
	Data []SearchResult `json:"data"`
}

// SearchFormatted performs a search and renders the results client-side,
// sliced to in.Count. This is the legacy behavior the current tool set
// dropped in favor of returning the raw payload.
func (c *Client) SearchFormatted(ctx context.Context, in SearchRequest, format SearchFormat) (string, error) {
	payload, err := c.search(ctx, in)
	if err != nil {
		return "", err
	}

	var res searchResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return "", fmt.Errorf("reader: decoding search response: %w", err)
	}

	results := res.Data
	if in.Count > 0 && len(results) > in.Count {
		results = results[:in.Count]
	}
	return FormatResults(results, format), nil
}

// FormatResults renders search results as markdown, plain text, or HTML.
func FormatResults(results []SearchResult, format SearchFormat) string {
	if len(results) == 0 {
		return "No results found."
	}

	var b strings.Builder
	switch format {
	case SearchFormatText:
		for i, r := range results {
			fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.URL, snippetText(r))
		}
	case SearchFormatHTML:
		b.WriteString("<ol>\n")
		for _, r := range results {
			fmt.Fprintf(&b, "<li><a href=%q>%s</a><p>%s</p></li>\n", r.URL, r.Title, snippetText(r))
		}
		b.WriteString("</ol>\n")
	default: // SearchFormatMarkdown
		for _, r := range results {
			fmt.Fprintf(&b, "### [%s](%s)\n\n%s\n\n", r.Title, r.URL, snippetText(r))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// snippetText picks the richest snippet available and strips HTML markup.
// Result snippets come back as HTML fragments from some engines.
func snippetText(r SearchResult) string {
	snippet := r.Description
	if snippet == "" {
		snippet = r.Content
	}
	if !strings.Contains(snippet, "<") {
		return strings.TrimSpace(snippet)
	}
	markdown, err := htmltomarkdown.ConvertString(snippet)
	if err != nil {
		return strings.TrimSpace(snippet)
	}
	return strings.TrimSpace(markdown)
}
