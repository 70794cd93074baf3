// Package refdata loads the reference tables the renderer needs: the
// exercise catalog and the muscle-group label map. Both are loaded once and
// treated as immutable for the run.
package refdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/meso/internal/output"
)

// Exercise is the metadata kept per exercise ID.
type Exercise struct {
	Name          string
	MuscleGroupID *int
	Equipment     string
}

// Lookup maps exercise ID to its metadata.
type Lookup map[int]Exercise

// Name returns the display name for an exercise, with a readable
// placeholder for IDs missing from the catalog.
func (l Lookup) Name(id int) string {
	if e, ok := l[id]; ok {
		return e.Name
	}
	return fmt.Sprintf("Exercise %d", id)
}

// Equipment returns the equipment label, or "Unknown" for unlisted IDs.
func (l Lookup) Equipment(id int) string {
	if e, ok := l[id]; ok {
		return e.Equipment
	}
	return "Unknown"
}

// MuscleGroup returns the exercise's muscle-group ID, nil when unknown.
func (l Lookup) MuscleGroup(id int) *int {
	if e, ok := l[id]; ok {
		return e.MuscleGroupID
	}
	return nil
}

// ExerciseFetcher fetches the raw exercise catalog from the API.
type ExerciseFetcher interface {
	Exercises(ctx context.Context) ([]byte, error)
}

// rawExercise matches the API's exercise record shape.
type rawExercise struct {
	ID            *int    `json:"id"`
	Name          string  `json:"name"`
	MuscleGroupID *int    `json:"muscleGroupId"`
	ExerciseType  *string `json:"exerciseType"`
}

// LoadExercises builds the exercise lookup. If path is non-empty and the
// file exists it is parsed directly; otherwise the catalog is fetched from
// the API and a copy is cached at <cacheDir>/exercises.json for later runs.
func LoadExercises(ctx context.Context, fetcher ExerciseFetcher, path, cacheDir string) (Lookup, error) {
	data, err := readExerciseSource(ctx, fetcher, path, cacheDir)
	if err != nil {
		return nil, err
	}
	return parseExercises(data)
}

// readExerciseSource picks the local file or the network, caching the latter.
func readExerciseSource(ctx context.Context, fetcher ExerciseFetcher, path, cacheDir string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, output.NewSystemErrorWithCause("reading exercises file "+path, err)
		}
		// Fall through to the API when the hinted file is absent.
	}

	if fetcher == nil {
		return nil, output.NewSystemError("no exercises file and no API client available")
	}

	data, err := fetcher.Exercises(ctx)
	if err != nil {
		return nil, err
	}

	cacheExercises(data, cacheDir)
	return data, nil
}

// cacheExercises writes a pretty-printed cache copy. Cache failures are not
// fatal: the run already has the data in memory.
func cacheExercises(data []byte, cacheDir string) {
	if cacheDir == "" {
		return
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(data)
	}
	_ = os.WriteFile(filepath.Join(cacheDir, "exercises.json"), pretty.Bytes(), 0600)
}

// parseExercises decodes the catalog and validates required fields.
func parseExercises(data []byte) (Lookup, error) {
	var records []rawExercise
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to parse exercise catalog", err)
	}

	lookup := make(Lookup, len(records))
	for i, record := range records {
		if record.ID == nil {
			return nil, output.NewSystemError(fmt.Sprintf("exercise record %d missing required field 'id'", i))
		}
		if record.Name == "" {
			return nil, output.NewSystemError(fmt.Sprintf("exercise %d missing required field 'name'", *record.ID))
		}
		if record.ExerciseType == nil {
			return nil, output.NewSystemError(fmt.Sprintf("exercise %d missing required field 'exerciseType'", *record.ID))
		}

		lookup[*record.ID] = Exercise{
			Name:          record.Name,
			MuscleGroupID: record.MuscleGroupID,
			Equipment:     equipmentLabel(*record.ExerciseType),
		}
	}
	return lookup, nil
}

// equipmentLabel turns an exercise type slug like "machine-assisted" into
// the display label "Machine Assisted".
func equipmentLabel(exerciseType string) string {
	words := strings.Split(strings.ReplaceAll(exerciseType, "-", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
