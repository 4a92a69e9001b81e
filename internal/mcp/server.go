// Package mcp provides a Model Context Protocol server for ismism.
// It exposes dataset lookups as read-only MCP tools that any MCP-capable
// agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/ismism/internal/catalog"
)

// NewServer creates an MCP server with all ismism tools registered.
// Every call reads handle.Current(), so a reload is picked up by the next call.
func NewServer(version string, handle *catalog.Handle) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ismism",
		Version: version,
	}, nil)
	registerTools(server, handle)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all ismism tools to the server.
func registerTools(server *mcp.Server, handle *catalog.Handle) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "search",
		Description: "Find isms by code pattern. The query has four segments joined by '-', each 1-4 or '$'. " +
			"A '$' first segment finds only subjectless isms; '$' elsewhere matches any digit.",
		Annotations: readOnlyAnnotations(),
	}, handleSearch(handle))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show",
		Description: "Display a single ism by exact code, or by name or alias.",
		Annotations: readOnlyAnnotations(),
	}, handleShow(handle))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "related",
		Description: "List isms that share the first two code segments with the given code.",
		Annotations: readOnlyAnnotations(),
	}, handleRelated(handle))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Summarize the dataset: record count, payload completeness, counts per first segment, and lint issues.",
		Annotations: readOnlyAnnotations(),
	}, handleStats(handle))
}
