// Package main provides the entry point for the meso CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/meso/internal/api"
	"github.com/gorewood/meso/internal/meso"
	"github.com/gorewood/meso/internal/output"
)

// listFlags holds the command-line flags for the list command.
type listFlags struct {
	headers string
	index   string
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return newListCmdInternal(nil)
}

// newListCmdInternal creates the list command with optional HTTP transport
// injection. If doer is nil, a real HTTP client is used.
func newListCmdInternal(doer api.HTTPDoer) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available mesocycles",
		Long: `List the available mesocycles with their selection index, name, and key.

Reads the cached index file when --index is given; otherwise fetches the
index from the API (which requires --headers) and caches it.

Examples:
  meso list --headers headers.txt
  meso list --index conf/mesocycles.json
  meso list --headers headers.txt --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags, doer)
		},
	}

	cmd.Flags().StringVar(&flags.headers, "headers", "", "Path to the request headers file (required unless --index is given)")
	cmd.Flags().StringVar(&flags.index, "index", "", "Path to a cached mesocycle index file")

	return cmd
}

// runList executes the list command.
func runList(cmd *cobra.Command, flags *listFlags, doer api.HTTPDoer) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	refs, err := listRefs(cmd, printer, flags, doer)
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return writeListJSON(printer, refs)
	}

	if len(refs) == 0 {
		printer.Println("No mesocycles available.")
		return nil
	}

	rows := make([][]string, 0, len(refs))
	for i, ref := range refs {
		rows = append(rows, []string{strconv.Itoa(i), ref.Name, ref.Key})
	}
	printer.Table([]string{"#", "Name", "Key"}, rows)
	return nil
}

// listRefs loads the index from the cache file or the API.
func listRefs(cmd *cobra.Command, printer *output.Printer, flags *listFlags, doer api.HTTPDoer) ([]meso.Ref, error) {
	ctx := cmd.Context()

	if flags.index != "" {
		return loadRefs(ctx, printer, nil, flags.index, "")
	}

	settings, err := loadSettings(printer)
	if err != nil {
		return nil, err
	}
	client, err := newClient(printer, settings, flags.headers, doer)
	if err != nil {
		return nil, err
	}
	return loadRefs(ctx, printer, client, "", settings.CacheDir)
}

// writeListJSON emits the index as a JSON array of {index, name, key}.
func writeListJSON(printer *output.Printer, refs []meso.Ref) error {
	type entry struct {
		Index int    `json:"index"`
		Name  string `json:"name"`
		Key   string `json:"key"`
	}

	entries := make([]entry, 0, len(refs))
	for i, ref := range refs {
		entries = append(entries, entry{Index: i, Name: ref.Name, Key: ref.Key})
	}
	return printer.WriteJSON(entries)
}
