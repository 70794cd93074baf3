// Package mcp provides a Model Context Protocol server for meso.
// It exposes the fetch/aggregate/render pipeline as MCP tools so any
// MCP-capable agent can browse and export training data.
package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/meso/internal/api"
	"github.com/gorewood/meso/internal/refdata"
)

// Datasource bundles the run configuration the tools share.
type Datasource struct {
	Client       *api.Client
	Lookup       refdata.Lookup
	MuscleGroups *refdata.MuscleGroups
	Frontmatter  string
	OutputDir    string
	Now          func() time.Time
}

// NewServer creates an MCP server with all meso tools registered.
func NewServer(version string, ds *Datasource) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "meso",
		Version: version,
	}, nil)
	registerTools(server, ds)
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
		OpenWorldHint:  boolPtr(true),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all meso tools to the server.
func registerTools(server *mcp.Server, ds *Datasource) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_mesocycles",
		Description: "List the available mesocycles (training programs) with their index, name, and key.",
		Annotations: readOnlyAnnotations(),
	}, handleList(ds))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "exercise_summary",
		Description: "Aggregate one mesocycle by key: per-day per-exercise weekly set counts, totals, and max efforts.",
		Annotations: readOnlyAnnotations(),
	}, handleSummary(ds))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_markdown",
		Description: "Fetch a mesocycle by key, render it as a Markdown note, and write it to the output directory with a collision-safe name.",
		Annotations: writeAnnotations(),
	}, handleExport(ds))
}
