package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/webreader/jina-mcp/reader"
)

const defaultSearchCount = 5

// SearchArgs are the inputs to the web_search tool. Format is only accepted
// by the legacy variant.
type SearchArgs struct {
	Query  string `json:"query"`
	Count  int    `json:"count,omitempty"`
	Site   string `json:"site,omitempty"`
	Format string `json:"format,omitempty"`
}

// WebSearch searches the web through the search endpoint. The current
// variant returns the remote payload as-is; the legacy variant parses the
// results, slices them to count, and renders them client-side.
func WebSearch(client *reader.Client, legacy bool) (*mcp.Tool, mcp.ToolHandlerFor[SearchArgs, any]) {
	properties := map[string]*jsonschema.Schema{
		"query": {
			Type:        "string",
			Description: "The search query",
		},
		"count": {
			Type:        "integer",
			Description: "Number of results to return; how many come back is up to the search service",
			Default:     json.RawMessage(`5`),
		},
		"site": {
			Type:        "string",
			Description: "Restrict results to this domain, e.g. github.com",
		},
	}
	if legacy {
		properties["format"] = &jsonschema.Schema{
			Type:        "string",
			Description: "Rendering of the result list",
			Enum:        []any{"markdown", "text", "html"},
			Default:     json.RawMessage(`"markdown"`),
		}
	}

	tool := &mcp.Tool{
		Name:        "web_search",
		Description: "Search the web and return a list of results with titles, URLs, and snippets.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Search the web",
			ReadOnlyHint: true,
		},
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: properties,
			Required:   []string{"query"},
		},
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
		if args.Query == "" {
			return errorResult("query must not be empty"), nil, nil
		}
		count := args.Count
		if count <= 0 {
			count = defaultSearchCount
		}
		in := reader.SearchRequest{
			Query: args.Query,
			Count: count,
			Site:  args.Site,
		}

		if legacy {
			format := reader.SearchFormat(args.Format)
			if format == "" {
				format = reader.SearchFormatMarkdown
			}
			out, err := client.SearchFormatted(ctx, in, format)
			if err != nil {
				return errorResult(err.Error()), nil, nil
			}
			return textResult(out), nil, nil
		}

		out, err := client.Search(ctx, in)
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}
		return textResult(out), nil, nil
	}

	return tool, handler
}
