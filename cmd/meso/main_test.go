package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRootCommand_Version(t *testing.T) {
	// Set version for testing
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "1.2.3") {
		t.Errorf("--version output should contain version: %q", output)
	}
	if !strings.Contains(output, "meso") {
		t.Errorf("--version output should contain 'meso': %q", output)
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()

	// Check for expected help content
	expectations := []string{
		"meso",
		"Usage:",
		"--json",
		"export",
		"doctor",
	}

	for _, expected := range expectations {
		if !strings.Contains(output, expected) {
			t.Errorf("--help output should contain %q: %q", expected, output)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--json"})

	err := cmd.Execute()
	// Should error because no subcommand is provided
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}

	output := buf.String()

	// Should output JSON error
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("--json output should be valid JSON: %q", output)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON error output should contain 'error' key: %q", output)
	}
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		commit      string
		date        string
		want        string
		wantContain string
	}{
		{
			name:    "dev build",
			version: "dev",
			commit:  "none",
			date:    "unknown",
			want:    "dev",
		},
		{
			name:        "release build truncates commit",
			version:     "1.0.0",
			commit:      "abcdef1234567890",
			date:        "2026-01-01",
			wantContain: "1.0.0 (abcdef1, 2026-01-01)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, commit, date = tt.version, tt.commit, tt.date
			got := buildVersion()
			if tt.want != "" && got != tt.want {
				t.Errorf("buildVersion() = %q, want %q", got, tt.want)
			}
			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("buildVersion() = %q, want contains %q", got, tt.wantContain)
			}
		})
	}

	// Restore defaults for other tests
	version, commit, date = "dev", "none", "unknown"
}
