package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/webreader/jina-mcp/reader"
)

// ReadArgs are the inputs to the read_page tool.
type ReadArgs struct {
	URL            string `json:"url"`
	ExtractionMode string `json:"extraction_mode,omitempty"`
	OutputFormat   string `json:"output_format,omitempty"`
	Timeout        int    `json:"timeout,omitempty"`
}

// ReadPage reads a web page through the reader endpoint and returns its
// extracted content as text.
func ReadPage(client *reader.Client) (*mcp.Tool, mcp.ToolHandlerFor[ReadArgs, any]) {
	tool := &mcp.Tool{
		Name: "read_page",
		Description: "Read a web page and return its extracted content as text. " +
			"GitHub file URLs are fetched directly from raw.githubusercontent.com and returned verbatim.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Read a web page",
			ReadOnlyHint: true,
		},
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"url": {
					Type:        "string",
					Description: "The URL of the page to read",
				},
				"extraction_mode": {
					Type:        "string",
					Description: "Extraction preset: standard (fast direct fetch), comprehensive (browser rendering with link and image summaries), clean_content (browser rendering scoped to the main content)",
					Enum:        []any{"standard", "comprehensive", "clean_content"},
					Default:     json.RawMessage(`"standard"`),
				},
				"output_format": {
					Type:        "string",
					Description: "Content format: default (native), markdown, text, or structured (markdown with link and image summaries)",
					Enum:        []any{"default", "markdown", "text", "structured"},
					Default:     json.RawMessage(`"default"`),
				},
				"timeout": {
					Type:        "integer",
					Description: "Override the remote fetch timeout, in seconds",
				},
			},
			Required: []string{"url"},
		},
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
		if args.Timeout < 0 {
			return errorResult("timeout must be a positive number of seconds"), nil, nil
		}
		mode := reader.Mode(args.ExtractionMode)
		if mode == "" {
			mode = reader.ModeStandard
		}
		format := reader.Format(args.OutputFormat)
		if format == "" {
			format = reader.FormatDefault
		}
		out, err := client.Read(ctx, reader.ReadRequest{
			URL:            args.URL,
			Mode:           mode,
			Format:         format,
			TimeoutSeconds: args.Timeout,
		})
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}
		return textResult(out), nil, nil
	}

	return tool, handler
}
