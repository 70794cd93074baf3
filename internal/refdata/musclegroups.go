package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/gorewood/meso/internal/output"
)

// defaultMuscleGroups is the built-in dense map, 1-indexed by muscle-group
// ID. Labels are Obsidian wiki-links so notes cross-link automatically.
var defaultMuscleGroups = []string{
	"[[Chest]]", "[[Back]]", "[[Delts]]", "[[Biceps]]",
	"[[Triceps]]", "[[Quads]]", "[[Hamstrings]]", "[[Glutes]]",
	"[[Calves]]", "[[Traps]]", "[[Forearms]]", "[[Abs]]",
}

// MuscleGroups resolves muscle-group IDs to display labels. It unifies the
// two override-file shapes behind one lookup: a JSON array is a dense
// 1-indexed sequence, a JSON object is a sparse ID-keyed mapping.
type MuscleGroups struct {
	dense  []string
	sparse map[string]string
}

// DefaultMuscleGroups returns the built-in 12-entry map.
func DefaultMuscleGroups() *MuscleGroups {
	return &MuscleGroups{dense: defaultMuscleGroups}
}

// LoadMuscleGroups reads a user override file, or returns the built-in
// default when path is empty.
func LoadMuscleGroups(path string) (*MuscleGroups, error) {
	if path == "" {
		return DefaultMuscleGroups(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, output.NewUserError("muscle groups file not found at " + path)
		}
		return nil, output.NewSystemErrorWithCause("reading muscle groups file "+path, err)
	}

	return parseMuscleGroups(data)
}

// parseMuscleGroups accepts either representation of the map.
func parseMuscleGroups(data []byte) (*MuscleGroups, error) {
	var dense []string
	if err := json.Unmarshal(data, &dense); err == nil {
		return &MuscleGroups{dense: dense}, nil
	}

	var sparse map[string]string
	if err := json.Unmarshal(data, &sparse); err == nil {
		return &MuscleGroups{sparse: sparse}, nil
	}

	return nil, output.NewSystemError("muscle groups file must be a JSON array or a JSON object of labels")
}

// LabelFor resolves an ID to its display label. IDs outside the map and nil
// IDs synthesize a placeholder link instead of failing.
func (m *MuscleGroups) LabelFor(id *int) string {
	if id == nil {
		return "[[MuscleGroup ?]]"
	}

	if m.sparse != nil {
		if label, ok := m.sparse[strconv.Itoa(*id)]; ok {
			return label
		}
	} else if *id >= 1 && *id <= len(m.dense) {
		return m.dense[*id-1]
	}

	return fmt.Sprintf("[[MuscleGroup %d]]", *id)
}
