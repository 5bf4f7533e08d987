// Package tools exposes the reader client as MCP tools. Each tool is a
// plain descriptor/handler pair; Register hands them to the server at
// startup, so there is no package-level registry.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/webreader/jina-mcp/reader"
)

// Register adds the tool set to the server. The legacy flag additionally
// registers fact_check and switches web_search to client-side formatting.
func Register(server *mcp.Server, client *reader.Client, legacy bool) {
	readTool, readHandler := ReadPage(client)
	mcp.AddTool(server, readTool, readHandler)

	searchTool, searchHandler := WebSearch(client, legacy)
	mcp.AddTool(server, searchTool, searchHandler)

	if legacy {
		factTool, factHandler := FactCheck(client)
		mcp.AddTool(server, factTool, factHandler)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult wraps a failure as a tool result so per-invocation errors stay
// contained instead of surfacing as protocol errors.
func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
