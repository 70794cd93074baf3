// Package main provides the entry point for the meso CLI.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/meso/internal/api"
	"github.com/gorewood/meso/internal/meso"
	"github.com/gorewood/meso/internal/output"
	"github.com/gorewood/meso/internal/refdata"
	"github.com/gorewood/meso/internal/render"
	"github.com/gorewood/meso/internal/selection"
)

// summaryCSVName is the cross-mesocycle summary written once per run.
const summaryCSVName = "exercise_summary_all.csv"

// exportFlags holds the command-line flags for the export command.
type exportFlags struct {
	headers      string
	index        string
	exercises    string
	frontmatter  string
	muscleGroups string
	out          string
	saveJSON     bool
	all          bool
	selectExpr   string
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	return newExportCmdInternal(nil)
}

// newExportCmdInternal creates the export command with optional HTTP
// transport injection. If doer is nil, a real HTTP client is used.
func newExportCmdInternal(doer api.HTTPDoer) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch mesocycles and write Markdown notes",
		Long: `Fetch mesocycles from the training API and write one Markdown note each.

Each note carries frontmatter, a per-exercise weekly set-count summary,
muscle-group volume charts, and a section per training day. A combined CSV
summary across every exported mesocycle is written alongside the notes.

With neither --all nor --select, the available mesocycles are listed and a
selection like "0,2-4" is read from standard input.

Examples:
  meso export --headers headers.txt --all
  meso export --headers headers.txt --select 0,2-4 --save-json
  meso export --headers headers.txt --index conf/mesocycles.json --out notes/`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags, doer)
		},
	}

	cmd.Flags().StringVar(&flags.headers, "headers", "", "Path to the request headers file (required)")
	cmd.Flags().StringVar(&flags.index, "index", "", "Path to a cached mesocycle index file (skips the index fetch)")
	cmd.Flags().StringVar(&flags.exercises, "exercises", "", "Path to a cached exercise catalog file")
	cmd.Flags().StringVar(&flags.frontmatter, "frontmatter", "frontmatter_template.md", "Path to the frontmatter template")
	cmd.Flags().StringVar(&flags.muscleGroups, "muscle-groups", "", "Path to a muscle-group label override file")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory (default from settings, normally 'output')")
	cmd.Flags().BoolVar(&flags.saveJSON, "save-json", false, "Also write each mesocycle's raw API payload")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Export every mesocycle without prompting")
	cmd.Flags().StringVar(&flags.selectExpr, "select", "", "Export the given indices/ranges, e.g. \"0,2-4\"")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, flags *exportFlags, doer api.HTTPDoer) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())
	ctx := cmd.Context()

	if flags.all && flags.selectExpr != "" {
		err := output.NewUserError("--all and --select are mutually exclusive")
		printer.Error(err)
		return err
	}

	settings, err := loadSettings(printer)
	if err != nil {
		return err
	}
	outDir := flags.out
	if outDir == "" {
		outDir = settings.OutputDir
	}

	client, err := newClient(printer, settings, flags.headers, doer)
	if err != nil {
		return err
	}

	// Local inputs load before any network call so a missing file fails fast.
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

	refs, err := loadRefs(ctx, printer, client, flags.index, settings.CacheDir)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		err := output.NewUserError("no mesocycles available")
		printer.Error(err)
		return err
	}

	indices, err := chooseIndices(cmd, printer, refs, flags)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		sysErr := output.NewSystemErrorWithCause("failed to create output directory "+outDir, err)
		printer.Error(sysErr)
		return sysErr
	}

	renderer := &render.Renderer{
		Lookup:       lookup,
		MuscleGroups: muscleGroups,
		Frontmatter:  frontmatter,
	}

	return exportSelected(ctx, printer, client, renderer, refs, indices, outDir, flags.saveJSON)
}

// chooseIndices resolves which mesocycles to export: all of them, a --select
// expression, or an interactively entered selection.
func chooseIndices(cmd *cobra.Command, printer *output.Printer, refs []meso.Ref, flags *exportFlags) ([]int, error) {
	if flags.all {
		indices := make([]int, len(refs))
		for i := range refs {
			indices[i] = i
		}
		return indices, nil
	}

	expr := flags.selectExpr
	if expr == "" {
		expr = promptSelection(cmd, printer, refs)
	}

	indices := selection.Parse(expr, len(refs))
	if len(indices) == 0 {
		err := output.NewUserError(fmt.Sprintf("selection %q matched no mesocycles", expr))
		printer.Error(err)
		return nil, err
	}
	return indices, nil
}

// promptSelection lists the mesocycles and reads a selection expression from
// standard input. An unreadable or empty line parses to no indices, which
// the caller reports.
func promptSelection(cmd *cobra.Command, printer *output.Printer, refs []meso.Ref) string {
	for i, ref := range refs {
		printer.Print("  [%d] %s\n", i, ref.Name)
	}
	printer.Print("Select mesocycles (e.g. 0,2-4): ")

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return line
}

// exportSelected fetches, renders, and writes each selected mesocycle, then
// writes the accumulated CSV summary.
func exportSelected(ctx context.Context, printer *output.Printer, client *api.Client, renderer *render.Renderer, refs []meso.Ref, indices []int, outDir string, saveJSON bool) error {
	summaryCSV := &render.SummaryCSV{}
	var written []string

	for _, i := range indices {
		path, err := exportOne(ctx, printer, client, renderer, summaryCSV, refs[i], outDir, saveJSON)
		if err != nil {
			printer.Error(err)
			return err
		}
		if path != "" {
			written = append(written, path)
		}
	}

	csvPath := ""
	if !summaryCSV.Empty() {
		csvPath = filepath.Join(outDir, summaryCSVName)
		if err := summaryCSV.WriteFile(csvPath); err != nil {
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"exported": len(written),
			"files":    written,
			"csv":      csvPath,
		})
	}
	printer.Print("Exported %d of %d mesocycles to %s\n", len(written), len(indices), outDir)
	return nil
}

// exportOne processes a single mesocycle. A 410 from the API means the
// mesocycle was deleted server-side; it is skipped with a warning rather
// than aborting the run. Returns the written Markdown path, or "" on skip.
func exportOne(ctx context.Context, printer *output.Printer, client *api.Client, renderer *render.Renderer, summaryCSV *render.SummaryCSV, ref meso.Ref, outDir string, saveJSON bool) (string, error) {
	raw, m, err := client.MesocycleDetail(ctx, ref.Key)
	if err != nil {
		if errors.Is(err, api.ErrGone) {
			printer.Warn("skipping %q: no longer available (HTTP 410)", ref.Name)
			return "", nil
		}
		return "", err
	}

	base := render.SanitizeName(m.Name)
	if base == "" {
		base = ref.Key
	}

	if saveJSON {
		jsonPath := render.UniqueFilename(filepath.Join(outDir, base+".json"))
		if err := render.WriteRawJSON(jsonPath, raw); err != nil {
			return "", err
		}
	}

	content := renderer.Render(m, ref.Key+".json")
	mdPath := render.UniqueFilename(filepath.Join(outDir, base+".md"))
	if err := render.WriteMarkdown(mdPath, content); err != nil {
		return "", err
	}

	summaryCSV.Add(m.Name, meso.Summarize(m), renderer.Lookup)

	if !printer.IsJSON() {
		printer.Print("Wrote %s (%d weeks)\n", mdPath, len(m.Weeks))
	}
	return mdPath, nil
}
