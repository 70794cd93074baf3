// Package meso defines the mesocycle data model and its aggregation.
package meso

// Ref identifies a mesocycle in the index listing.
type Ref struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Mesocycle is a multi-week training program as returned by the detail endpoint.
type Mesocycle struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Weeks []Week `json:"weeks"`
}

// Week holds one week of training days. Week numbers are positional:
// index 0 in the slice is week 1.
type Week struct {
	Days []Day `json:"days"`
}

// Day is a single training day within a week.
type Day struct {
	Label      string          `json:"label"`
	Position   int             `json:"position"`
	FinishedAt string          `json:"finishedAt,omitempty"`
	Exercises  []ExerciseEntry `json:"exercises"`
}

// ExerciseEntry is one exercise slot on a day with its logged sets.
// MuscleGroupID is carried on the entry itself by the API and is used for
// volume charting; it is independent of the exercise lookup.
type ExerciseEntry struct {
	ExerciseID    int   `json:"exerciseId"`
	MuscleGroupID *int  `json:"muscleGroupId,omitempty"`
	Sets          []Set `json:"sets"`
}

// Set is one logged repetition group. A nil Weight means the set was not
// logged with a load (warm-up or skipped) and is excluded from volume counts.
type Set struct {
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
}

// Weekdays is the fixed rendering order for day labels. Labels outside this
// set still get per-day sections but are excluded from the summary table.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsWeekday reports whether label is one of the seven fixed weekday names.
func IsWeekday(label string) bool {
	for _, day := range Weekdays {
		if day == label {
			return true
		}
	}
	return false
}
