package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/meso/internal/api"
	"github.com/gorewood/meso/internal/meso"
	"github.com/gorewood/meso/internal/render"
)

// --- list_mesocycles tool ---

// ListInput is the input for the list_mesocycles tool (no parameters needed).
type ListInput struct{}

// MesocycleRef is one index entry in the listing.
type MesocycleRef struct {
	Index int    `json:"index" jsonschema:"position in the index, usable as a selection index"`
	Name  string `json:"name"  jsonschema:"mesocycle display name"`
	Key   string `json:"key"   jsonschema:"mesocycle API key"`
}

// ListOutput is the output for the list_mesocycles tool.
type ListOutput struct {
	Count      int            `json:"count"      jsonschema:"number of mesocycles"`
	Mesocycles []MesocycleRef `json:"mesocycles" jsonschema:"available mesocycles"`
}

func handleList(ds *Datasource) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListOutput, error) {
		_, refs, err := ds.Client.Mesocycles(ctx)
		if err != nil {
			return nil, ListOutput{}, fmt.Errorf("fetching mesocycle index: %w", err)
		}

		out := ListOutput{Count: len(refs)}
		for i, ref := range refs {
			out.Mesocycles = append(out.Mesocycles, MesocycleRef{Index: i, Name: ref.Name, Key: ref.Key})
		}
		return nil, out, nil
	}
}

// --- exercise_summary tool ---

// SummaryInput is the input for the exercise_summary tool.
type SummaryInput struct {
	Key string `json:"key" jsonschema:"mesocycle key from list_mesocycles"`
}

// SummaryRow is one (day, exercise) aggregate.
type SummaryRow struct {
	Day       string   `json:"day"                  jsonschema:"weekday label"`
	Exercise  string   `json:"exercise"             jsonschema:"exercise display name"`
	WeeklySet []int    `json:"weekly_sets"          jsonschema:"weighted set count per week, week 1 first"`
	TotalSets int      `json:"total_sets"           jsonschema:"sum of weekly set counts"`
	MaxWeight *float64 `json:"max_weight,omitempty" jsonschema:"heaviest logged weight, absent when never weighted"`
	MaxReps   *int     `json:"max_reps,omitempty"   jsonschema:"reps at the heaviest weight"`
}

// SummaryOutput is the output for the exercise_summary tool.
type SummaryOutput struct {
	Name  string       `json:"name"  jsonschema:"mesocycle name"`
	Weeks int          `json:"weeks" jsonschema:"number of weeks"`
	Rows  []SummaryRow `json:"rows"  jsonschema:"aggregates in Monday-to-Sunday, encounter order"`
}

func handleSummary(ds *Datasource) mcp.ToolHandlerFor[SummaryInput, SummaryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SummaryInput) (*mcp.CallToolResult, SummaryOutput, error) {
		if input.Key == "" {
			return nil, SummaryOutput{}, errors.New("key is required")
		}

		_, m, err := ds.Client.MesocycleDetail(ctx, input.Key)
		if err != nil {
			if errors.Is(err, api.ErrGone) {
				return nil, SummaryOutput{}, fmt.Errorf("mesocycle %s is deleted or expired", input.Key)
			}
			return nil, SummaryOutput{}, fmt.Errorf("fetching mesocycle %s: %w", input.Key, err)
		}

		summary := meso.Summarize(m)
		out := SummaryOutput{Name: m.Name, Weeks: summary.Weeks}

		for _, label := range meso.Weekdays {
			for _, exerciseID := range summary.DayOrder[label] {
				key := meso.DayExercise{Label: label, ExerciseID: exerciseID}
				row := SummaryRow{
					Day:       label,
					Exercise:  ds.Lookup.Name(exerciseID),
					WeeklySet: summary.WeeklySets[key],
					TotalSets: summary.TotalSets(key),
				}
				if effort := summary.MaxEffort[key]; effort != nil {
					weight := effort.Weight
					row.MaxWeight = &weight
					row.MaxReps = effort.Reps
				}
				out.Rows = append(out.Rows, row)
			}
		}
		return nil, out, nil
	}
}

// --- export_markdown tool ---

// ExportInput is the input for the export_markdown tool.
type ExportInput struct {
	Key string `json:"key" jsonschema:"mesocycle key from list_mesocycles"`
}

// ExportOutput is the output for the export_markdown tool.
type ExportOutput struct {
	Path  string `json:"path"  jsonschema:"path of the written Markdown file"`
	Bytes int    `json:"bytes" jsonschema:"size of the written document"`
}

func handleExport(ds *Datasource) mcp.ToolHandlerFor[ExportInput, ExportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		if input.Key == "" {
			return nil, ExportOutput{}, errors.New("key is required")
		}

		_, m, err := ds.Client.MesocycleDetail(ctx, input.Key)
		if err != nil {
			return nil, ExportOutput{}, fmt.Errorf("fetching mesocycle %s: %w", input.Key, err)
		}

		if err := os.MkdirAll(ds.OutputDir, 0755); err != nil {
			return nil, ExportOutput{}, fmt.Errorf("creating output directory: %w", err)
		}

		renderer := &render.Renderer{
			Lookup:       ds.Lookup,
			MuscleGroups: ds.MuscleGroups,
			Frontmatter:  ds.Frontmatter,
			Now:          ds.Now,
		}
		content := renderer.Render(m, input.Key+".json")

		path := render.UniqueFilename(filepath.Join(ds.OutputDir, render.SanitizeName(m.Name)+".md"))
		if err := render.WriteMarkdown(path, content); err != nil {
			return nil, ExportOutput{}, err
		}

		return nil, ExportOutput{Path: path, Bytes: len(content)}, nil
	}
}
