// Package main provides the entry point for the meso CLI.
package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gorewood/meso/internal/api"
	"github.com/gorewood/meso/internal/config"
	"github.com/gorewood/meso/internal/headers"
	"github.com/gorewood/meso/internal/meso"
	"github.com/gorewood/meso/internal/output"
	"github.com/gorewood/meso/internal/render"
)

// loadSettings reads the layered run settings, reporting failures through
// the printer.
func loadSettings(printer *output.Printer) (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("loading settings", err)
		printer.Error(sysErr)
		return nil, sysErr
	}
	return settings, nil
}

// newClient builds the API client from the headers file. An injected doer
// (non-nil only in tests) replaces the real HTTP transport.
func newClient(printer *output.Printer, settings *config.Settings, headersPath string, doer api.HTTPDoer) (*api.Client, error) {
	if headersPath == "" {
		err := output.NewUserError("--headers is required")
		printer.Error(err)
		return nil, err
	}

	requestHeaders, err := headers.Load(headersPath)
	if err != nil {
		printer.Error(err)
		return nil, err
	}

	client := api.New(settings.BaseURL, requestHeaders)
	if doer != nil {
		client = client.WithHTTPClient(doer)
	}
	return client, nil
}

// loadFrontmatter reads the frontmatter template. The file is a hard
// requirement: without it no note can be rendered, so the run aborts before
// any network call.
func loadFrontmatter(printer *output.Printer, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			userErr := output.NewUserError("frontmatter template not found at " + path)
			printer.Error(userErr)
			return "", userErr
		}
		sysErr := output.NewSystemErrorWithCause("reading frontmatter template "+path, err)
		printer.Error(sysErr)
		return "", sysErr
	}
	return string(data), nil
}

// loadRefs returns the mesocycle index. A given index file is parsed
// directly; otherwise the index is fetched from the API and a cache copy is
// written for later offline runs. Cache failures are not fatal.
func loadRefs(ctx context.Context, printer *output.Printer, client *api.Client, indexPath, cacheDir string) ([]meso.Ref, error) {
	if indexPath != "" {
		refs, err := readRefsFile(indexPath)
		if err != nil {
			printer.Error(err)
			return nil, err
		}
		return refs, nil
	}

	raw, refs, err := client.Mesocycles(ctx)
	if err != nil {
		printer.Error(err)
		return nil, err
	}

	if cacheDir != "" {
		if mkErr := os.MkdirAll(cacheDir, 0755); mkErr == nil {
			_ = render.WriteRawJSON(filepath.Join(cacheDir, "mesocycles.json"), raw)
		}
	}
	return refs, nil
}

// readRefsFile parses a cached mesocycle index file.
func readRefsFile(path string) ([]meso.Ref, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, output.NewUserError("index file not found at " + path)
		}
		return nil, output.NewSystemErrorWithCause("reading index file "+path, err)
	}

	var refs []meso.Ref
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to parse index file "+path, err)
	}
	return refs, nil
}
