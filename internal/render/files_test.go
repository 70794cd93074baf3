package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hypertrophy Block 1", "Hypertrophy Block 1"},
		{"Cut / Maintain", "Cut _ Maintain"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueFilename_Collisions(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "Foo.md")

	// Unused path comes back unchanged.
	if got := UniqueFilename(base); got != base {
		t.Errorf("UniqueFilename() = %q, want %q", got, base)
	}

	if err := os.WriteFile(base, []byte("first"), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	second := UniqueFilename(base)
	if want := filepath.Join(dir, "Foo (2).md"); second != want {
		t.Errorf("UniqueFilename() = %q, want %q", second, want)
	}

	if err := os.WriteFile(second, []byte("second"), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	third := UniqueFilename(base)
	if want := filepath.Join(dir, "Foo (3).md"); third != want {
		t.Errorf("UniqueFilename() = %q, want %q", third, want)
	}

	// Earlier files are untouched.
	data, err := os.ReadFile(base)
	if err != nil || string(data) != "first" {
		t.Errorf("original file clobbered: %q, %v", data, err)
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")

	if err := WriteMarkdown(path, "# Note\n"); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "# Note\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteRawJSON_PrettyPrints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")

	if err := WriteRawJSON(path, []byte(`{"name":"Block","key":"k"}`)); err != nil {
		t.Fatalf("WriteRawJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"name\": \"Block\"") {
		t.Errorf("payload not indented:\n%s", data)
	}
}
