package refdata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const catalogJSON = `[
	{"id": 1, "name": "Bench Press", "muscleGroupId": 1, "exerciseType": "barbell"},
	{"id": 2, "name": "Pull Up", "muscleGroupId": 2, "exerciseType": "machine-assisted"},
	{"id": 3, "name": "Plank", "muscleGroupId": null, "exerciseType": "bodyweight-only"}
]`

// fakeFetcher serves a canned catalog and records whether it was called.
type fakeFetcher struct {
	data   []byte
	err    error
	called bool
}

func (f *fakeFetcher) Exercises(context.Context) ([]byte, error) {
	f.called = true
	return f.data, f.err
}

func TestLoadExercises_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercises.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fetcher := &fakeFetcher{}
	lookup, err := LoadExercises(context.Background(), fetcher, path, "")
	if err != nil {
		t.Fatalf("LoadExercises() error = %v", err)
	}

	if fetcher.called {
		t.Error("API should not be called when the file exists")
	}
	if got := lookup.Name(1); got != "Bench Press" {
		t.Errorf("Name(1) = %q", got)
	}
	if got := lookup.Equipment(2); got != "Machine Assisted" {
		t.Errorf("Equipment(2) = %q, want title-cased with dash replaced", got)
	}
	if got := lookup.MuscleGroup(3); got != nil {
		t.Errorf("MuscleGroup(3) = %v, want nil", got)
	}
}

func TestLoadExercises_FetchAndCache(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "conf")
	fetcher := &fakeFetcher{data: []byte(catalogJSON)}

	lookup, err := LoadExercises(context.Background(), fetcher, "", cacheDir)
	if err != nil {
		t.Fatalf("LoadExercises() error = %v", err)
	}

	if !fetcher.called {
		t.Error("API should be called when no file is given")
	}
	if len(lookup) != 3 {
		t.Errorf("lookup size = %d, want 3", len(lookup))
	}

	cached, err := os.ReadFile(filepath.Join(cacheDir, "exercises.json"))
	if err != nil {
		t.Fatalf("cache copy not written: %v", err)
	}
	if !strings.Contains(string(cached), "Bench Press") {
		t.Errorf("cache copy missing catalog content:\n%s", cached)
	}
}

func TestLoadExercises_MissingFileFallsThrough(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte(catalogJSON)}

	_, err := LoadExercises(context.Background(), fetcher, filepath.Join(t.TempDir(), "nope.json"), "")
	if err != nil {
		t.Fatalf("LoadExercises() error = %v", err)
	}
	if !fetcher.called {
		t.Error("API should be used when the hinted file is absent")
	}
}

func TestLoadExercises_NoSource(t *testing.T) {
	if _, err := LoadExercises(context.Background(), nil, "", ""); err == nil {
		t.Fatal("LoadExercises() expected error with neither file nor client")
	}
}

func TestLoadExercises_FetchFailure(t *testing.T) {
	fetchErr := errors.New("boom")
	fetcher := &fakeFetcher{err: fetchErr}

	_, err := LoadExercises(context.Background(), fetcher, "", "")
	if !errors.Is(err, fetchErr) {
		t.Errorf("LoadExercises() error = %v, want wrapped fetch error", err)
	}
}

func TestLoadExercises_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"missing id", `[{"name": "X", "exerciseType": "barbell"}]`, "id"},
		{"missing name", `[{"id": 1, "exerciseType": "barbell"}]`, "name"},
		{"missing type", `[{"id": 1, "name": "X"}]`, "exerciseType"},
		{"not an array", `{"id": 1}`, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseExercises([]byte(tt.json))
			if err == nil {
				t.Fatal("parseExercises() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLookupFallbacks(t *testing.T) {
	lookup := Lookup{}

	if got := lookup.Name(99); got != "Exercise 99" {
		t.Errorf("Name(99) = %q", got)
	}
	if got := lookup.Equipment(99); got != "Unknown" {
		t.Errorf("Equipment(99) = %q", got)
	}
	if got := lookup.MuscleGroup(99); got != nil {
		t.Errorf("MuscleGroup(99) = %v, want nil", got)
	}
}

func TestEquipmentLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"barbell", "Barbell"},
		{"machine-assisted", "Machine Assisted"},
		{"smith-machine", "Smith Machine"},
		{"bodyweight-loadable", "Bodyweight Loadable"},
	}

	for _, tt := range tests {
		if got := equipmentLabel(tt.in); got != tt.want {
			t.Errorf("equipmentLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
