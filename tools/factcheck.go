package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/webreader/jina-mcp/reader"
)

// FactCheckArgs are the inputs to the fact_check tool.
type FactCheckArgs struct {
	Statement    string `json:"statement"`
	DeepAnalysis bool   `json:"deep_analysis,omitempty"`
}

// FactCheck grounds a statement against the web. Legacy tool set only.
func FactCheck(client *reader.Client) (*mcp.Tool, mcp.ToolHandlerFor[FactCheckArgs, any]) {
	tool := &mcp.Tool{
		Name:        "fact_check",
		Description: "Check a factual statement against the web and return the grounding verdict with sources.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Fact-check a statement",
			ReadOnlyHint: true,
		},
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"statement": {
					Type:        "string",
					Description: "The statement to verify",
				},
				"deep_analysis": {
					Type:        "boolean",
					Description: "Run a deeper, slower grounding pass",
					Default:     json.RawMessage(`false`),
				},
			},
			Required: []string{"statement"},
		},
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest, args FactCheckArgs) (*mcp.CallToolResult, any, error) {
		if args.Statement == "" {
			return errorResult("statement must not be empty"), nil, nil
		}
		out, err := client.FactCheck(ctx, args.Statement, args.DeepAnalysis)
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}
		return textResult(out), nil, nil
	}

	return tool, handler
}
