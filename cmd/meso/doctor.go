// Package main provides the entry point for the meso CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/meso/internal/headers"
	"github.com/gorewood/meso/internal/output"
	"github.com/gorewood/meso/internal/refdata"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version   string         `json:"version"`
	Inputs    []checkResult  `json:"inputs"`
	Workspace []checkResult  `json:"workspace"`
	Summary   *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// doctorFlags holds the command-line flags for the doctor command.
type doctorFlags struct {
	headers      string
	exercises    string
	frontmatter  string
	muscleGroups string
	out          string
	quiet        bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check run inputs and workspace health",
		Long: `Check that an export run would have everything it needs.

Runs health checks across two categories:
  INPUTS    - Headers file, frontmatter template, optional reference files
  WORKSPACE - Cache and output directories writable

Each check reports:
  Pass    - Check passed successfully
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

No network calls are made; doctor only inspects local state.

Examples:
  meso doctor --headers headers.txt
  meso doctor --headers headers.txt --quiet
  meso doctor --headers headers.txt --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.headers, "headers", "headers.txt", "Path to the request headers file")
	cmd.Flags().StringVar(&flags.exercises, "exercises", "", "Path to a cached exercise catalog file")
	cmd.Flags().StringVar(&flags.frontmatter, "frontmatter", "frontmatter_template.md", "Path to the frontmatter template")
	cmd.Flags().StringVar(&flags.muscleGroups, "muscle-groups", "", "Path to a muscle-group label override file")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory (default from settings, normally 'output')")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	settings, err := loadSettings(printer)
	if err != nil {
		return err
	}
	outDir := flags.out
	if outDir == "" {
		outDir = settings.OutputDir
	}

	result := gatherDoctorChecks(flags, settings.CacheDir, outDir)

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	outputDoctorHuman(printer, result, flags.quiet)
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(flags *doctorFlags, cacheDir, outDir string) *doctorResult {
	result := &doctorResult{
		Version:   version,
		Inputs:    runInputChecks(flags),
		Workspace: runWorkspaceChecks(cacheDir, outDir),
		Summary:   &doctorSummary{},
	}

	for _, check := range append(append([]checkResult{}, result.Inputs...), result.Workspace...) {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	return result
}

// runInputChecks validates the local input files an export run reads.
func runInputChecks(flags *doctorFlags) []checkResult {
	checks := []checkResult{
		checkHeaders(flags.headers),
		checkFrontmatter(flags.frontmatter),
	}

	if flags.exercises != "" {
		checks = append(checks, checkExercises(flags.exercises))
	}
	if flags.muscleGroups != "" {
		checks = append(checks, checkMuscleGroups(flags.muscleGroups))
	}

	return checks
}

// checkHeaders verifies the headers file exists and parses to at least one header.
func checkHeaders(path string) checkResult {
	parsed, err := headers.Load(path)
	if err != nil {
		return checkResult{
			Name:    "headers file",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "copy request headers from a logged-in browser session, one 'Key: Value' per line",
		}
	}
	return checkResult{
		Name:    "headers file",
		Status:  checkPass,
		Message: fmt.Sprintf("%s (%d headers)", path, len(parsed)),
	}
}

// checkFrontmatter verifies the template exists and uses the {title} placeholder.
func checkFrontmatter(path string) checkResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return checkResult{
			Name:    "frontmatter template",
			Status:  checkFail,
			Message: "not readable at " + path,
			Hint:    "create a template with {title}, {created}, {updated}, {source} placeholders",
		}
	}
	if !strings.Contains(string(data), "{title}") {
		return checkResult{
			Name:    "frontmatter template",
			Status:  checkWarn,
			Message: path + " has no {title} placeholder",
			Hint:    "notes will all render with the literal template text as their title block",
		}
	}
	return checkResult{
		Name:    "frontmatter template",
		Status:  checkPass,
		Message: path,
	}
}

// checkExercises verifies a given exercise catalog file parses.
func checkExercises(path string) checkResult {
	// No fetcher: the check only validates the local file.
	lookup, err := refdata.LoadExercises(context.Background(), nil, path, "")
	if err != nil {
		return checkResult{
			Name:    "exercise catalog",
			Status:  checkFail,
			Message: err.Error(),
		}
	}
	return checkResult{
		Name:    "exercise catalog",
		Status:  checkPass,
		Message: fmt.Sprintf("%s (%d exercises)", path, len(lookup)),
	}
}

// checkMuscleGroups verifies a given muscle-group override file parses.
func checkMuscleGroups(path string) checkResult {
	if _, err := refdata.LoadMuscleGroups(path); err != nil {
		return checkResult{
			Name:    "muscle groups",
			Status:  checkFail,
			Message: err.Error(),
		}
	}
	return checkResult{
		Name:    "muscle groups",
		Status:  checkPass,
		Message: path,
	}
}

// runWorkspaceChecks verifies the cache and output directories are writable.
func runWorkspaceChecks(cacheDir, outDir string) []checkResult {
	return []checkResult{
		checkWritableDir("cache directory", cacheDir),
		checkWritableDir("output directory", outDir),
	}
}

// checkWritableDir verifies a directory can be created and written to.
func checkWritableDir(name, dir string) checkResult {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: "cannot create " + dir,
		}
	}

	probe := filepath.Join(dir, ".meso-doctor")
	if err := os.WriteFile(probe, []byte("probe"), 0600); err != nil {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: "cannot write to " + dir,
		}
	}
	_ = os.Remove(probe)

	return checkResult{
		Name:    name,
		Status:  checkPass,
		Message: dir,
	}
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("meso doctor v%s\n", result.Version)

	printCheckSection(printer, "INPUTS", result.Inputs, quiet)
	printCheckSection(printer, "WORKSPACE", result.Workspace, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	// In quiet mode, skip sections with only passing checks
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Println()
	printer.Println(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}

		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     -> %s\n", check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
