package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func runDoctorCmd(t *testing.T, args []string) (*bytes.Buffer, error) {
	t.Helper()
	cmd := newDoctorCmd()
	cmd.Flags().Bool("json", false, "")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

// doctorFixtures writes a healthy set of inputs and returns doctor args.
func doctorFixtures(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("MESO_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("MESO_API_BASE", "")

	writeFixture(t, dir, "headers.txt", "Cookie: session=abc\nAuthorization: Bearer t\n")
	writeFixture(t, dir, "frontmatter.md", "---\ntitle: {title}\n---")
	writeFixture(t, dir, "exercises.json",
		`[{"id": 5, "name": "Bench Press", "muscleGroupId": 1, "exerciseType": "barbell"}]`)
	writeFixture(t, dir, "groups.json", `["[[Chest]]", "[[Back]]"]`)

	return []string{
		"--headers", filepath.Join(dir, "headers.txt"),
		"--frontmatter", filepath.Join(dir, "frontmatter.md"),
		"--exercises", filepath.Join(dir, "exercises.json"),
		"--muscle-groups", filepath.Join(dir, "groups.json"),
		"--out", filepath.Join(dir, "output"),
	}
}

func TestDoctor_AllChecksPass(t *testing.T) {
	args := doctorFixtures(t)

	buf, err := runDoctorCmd(t, append(args, "--json"))
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}

	var result doctorResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("--json output should be valid JSON: %q", buf.String())
	}
	if result.Summary.Failed != 0 || result.Summary.Warnings != 0 {
		t.Errorf("summary = %+v, want all passing", result.Summary)
	}
	// headers, frontmatter, exercises, muscle groups, cache dir, output dir
	if result.Summary.Passed != 6 {
		t.Errorf("passed = %d, want 6", result.Summary.Passed)
	}
}

func TestDoctor_MissingHeadersFails(t *testing.T) {
	args := doctorFixtures(t)
	for i, arg := range args {
		if arg == "--headers" {
			args[i+1] = "no-such-headers.txt"
		}
	}

	buf, err := runDoctorCmd(t, append(args, "--json"))
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}

	var result doctorResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %q", buf.String())
	}
	if result.Summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Summary.Failed)
	}
	if result.Inputs[0].Status != checkFail {
		t.Errorf("headers check = %+v, want fail", result.Inputs[0])
	}
	if result.Inputs[0].Hint == "" {
		t.Error("failing headers check should carry a hint")
	}
}

func TestDoctor_FrontmatterWithoutTitleWarns(t *testing.T) {
	args := doctorFixtures(t)
	dir := t.TempDir()
	writeFixture(t, dir, "plain.md", "no placeholders here")
	for i, arg := range args {
		if arg == "--frontmatter" {
			args[i+1] = filepath.Join(dir, "plain.md")
		}
	}

	buf, err := runDoctorCmd(t, append(args, "--json"))
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}

	var result doctorResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %q", buf.String())
	}
	if result.Summary.Warnings != 1 {
		t.Errorf("warnings = %d, want 1", result.Summary.Warnings)
	}
}

func TestDoctor_HumanOutput(t *testing.T) {
	args := doctorFixtures(t)

	buf, err := runDoctorCmd(t, args)
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}

	for _, want := range []string{"INPUTS", "WORKSPACE", "passed", "headers file"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("doctor output missing %q: %q", want, buf.String())
		}
	}
}

func TestDoctor_QuietHidesPassingSections(t *testing.T) {
	args := doctorFixtures(t)

	buf, err := runDoctorCmd(t, append(args, "--quiet"))
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}

	if strings.Contains(buf.String(), "INPUTS") {
		t.Errorf("quiet mode should hide all-passing sections: %q", buf.String())
	}
}
