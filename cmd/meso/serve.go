// Package main provides the entry point for the meso CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	mesomcp "github.com/gorewood/meso/internal/mcp"
	"github.com/gorewood/meso/internal/output"
	"github.com/gorewood/meso/internal/refdata"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	headers      string
	exercises    string
	frontmatter  string
	muscleGroups string
	out          string
}

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run meso as a Model Context Protocol (MCP) server over stdio.

This exposes the fetch/aggregate/render pipeline as MCP tools that any
MCP-capable agent environment can use (Claude Code, Cursor, Windsurf,
Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "meso": {
        "command": "meso",
        "args": ["serve", "--headers", "/path/to/headers.txt"]
      }
    }
  }

Available tools: list_mesocycles, exercise_summary, export_markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.headers, "headers", "", "Path to the request headers file (required)")
	cmd.Flags().StringVar(&flags.exercises, "exercises", "", "Path to a cached exercise catalog file")
	cmd.Flags().StringVar(&flags.frontmatter, "frontmatter", "frontmatter_template.md", "Path to the frontmatter template")
	cmd.Flags().StringVar(&flags.muscleGroups, "muscle-groups", "", "Path to a muscle-group label override file")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory for export_markdown (default from settings)")

	return cmd
}

// runServe loads the run configuration and blocks serving MCP over stdio.
func runServe(cmd *cobra.Command, flags *serveFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())
	ctx := cmd.Context()

	settings, err := loadSettings(printer)
	if err != nil {
		return err
	}
	outDir := flags.out
	if outDir == "" {
		outDir = settings.OutputDir
	}

	client, err := newClient(printer, settings, flags.headers, nil)
	if err != nil {
		return err
	}

	frontmatter, err := loadFrontmatter(printer, flags.frontmatter)
	if err != nil {
		return err
	}
	muscleGroups, err := refdata.LoadMuscleGroups(flags.muscleGroups)
	if err != nil {
		printer.Error(err)
		return err
	}
	lookup, err := refdata.LoadExercises(ctx, client, flags.exercises, settings.CacheDir)
	if err != nil {
		printer.Error(err)
		return err
	}

	server := mesomcp.NewServer(buildVersion(), &mesomcp.Datasource{
		Client:       client,
		Lookup:       lookup,
		MuscleGroups: muscleGroups,
		Frontmatter:  frontmatter,
		OutputDir:    outDir,
	})
	return server.Run(ctx, &mcp.StdioTransport{})
}
