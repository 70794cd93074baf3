package meso

// DayExercise keys per-exercise aggregates by the day label the exercise
// appears under. The same exercise on two different days aggregates separately.
type DayExercise struct {
	Label      string
	ExerciseID int
}

// Effort is the heaviest logged set for a (day, exercise) pair.
// A nil *Effort in Summary.MaxEffort means no weighted set was ever logged,
// which is distinct from a genuine zero-weight set.
type Effort struct {
	Weight float64
	Reps   *int
}

// Summary is the aggregation output for one mesocycle.
type Summary struct {
	// WeeklySets holds per-week weighted-set counts. Every vector has
	// exactly Weeks entries; weeks where the exercise did not appear are 0.
	WeeklySets map[DayExercise][]int

	// MaxEffort holds the heaviest set per (day, exercise), maximum by
	// weight with ties kept at first-seen.
	MaxEffort map[DayExercise]*Effort

	// DayOrder lists exercise IDs per day label in first-encounter order.
	DayOrder map[string][]int

	// Weeks is the week count of the source mesocycle.
	Weeks int
}

// Summarize walks the mesocycle once and builds the per-(day, exercise)
// weekly set counts, max efforts, and encounter order. Only sets with a
// non-nil weight count toward volume or max effort.
func Summarize(m *Mesocycle) *Summary {
	s := &Summary{
		WeeklySets: make(map[DayExercise][]int),
		MaxEffort:  make(map[DayExercise]*Effort),
		DayOrder:   make(map[string][]int),
		Weeks:      len(m.Weeks),
	}

	for weekIdx, week := range m.Weeks {
		weekNum := weekIdx + 1
		for _, day := range week.Days {
			for _, entry := range day.Exercises {
				key := DayExercise{Label: day.Label, ExerciseID: entry.ExerciseID}
				s.recordOrder(day.Label, entry.ExerciseID)
				s.recordSets(key, weekNum, entry.Sets)
			}
		}
	}

	return s
}

// recordOrder appends the exercise to the day's encounter-order list the
// first time it is seen under that label.
func (s *Summary) recordOrder(label string, exerciseID int) {
	for _, id := range s.DayOrder[label] {
		if id == exerciseID {
			return
		}
	}
	s.DayOrder[label] = append(s.DayOrder[label], exerciseID)

	// An exercise with zero weighted sets still needs a dense zero vector.
	key := DayExercise{Label: label, ExerciseID: exerciseID}
	if _, ok := s.WeeklySets[key]; !ok {
		s.WeeklySets[key] = make([]int, s.Weeks)
	}
}

// recordSets counts weighted sets for the given week and updates max effort.
func (s *Summary) recordSets(key DayExercise, weekNum int, sets []Set) {
	counts := s.WeeklySets[key]
	if counts == nil {
		counts = make([]int, s.Weeks)
		s.WeeklySets[key] = counts
	}

	for _, set := range sets {
		if set.Weight == nil {
			continue
		}
		counts[weekNum-1]++

		best := s.MaxEffort[key]
		if best == nil || *set.Weight > best.Weight {
			s.MaxEffort[key] = &Effort{Weight: *set.Weight, Reps: set.Reps}
		}
	}
}

// TotalSets sums the weekly counts for a (day, exercise) pair.
func (s *Summary) TotalSets(key DayExercise) int {
	total := 0
	for _, count := range s.WeeklySets[key] {
		total += count
	}
	return total
}

// VolumeChart holds per-week set totals grouped by muscle group.
type VolumeChart struct {
	// Groups lists muscle-group IDs in first-seen order.
	Groups []int

	// Sets[groupID][weekIndex] is the set total for that group and 1-based week.
	Sets map[int]map[int]int

	// Weeks is the week count of the source mesocycle.
	Weeks int
}

// MuscleVolume tallies total sets per muscle group per week. Unlike
// Summarize, every set counts here regardless of logged weight: chart volume
// reflects prescribed work, not just loaded sets. Entries without a muscle
// group ID are skipped.
func MuscleVolume(m *Mesocycle) *VolumeChart {
	chart := &VolumeChart{
		Sets:  make(map[int]map[int]int),
		Weeks: len(m.Weeks),
	}

	for weekIdx, week := range m.Weeks {
		weekNum := weekIdx + 1
		for _, day := range week.Days {
			for _, entry := range day.Exercises {
				if entry.MuscleGroupID == nil {
					continue
				}
				groupID := *entry.MuscleGroupID
				if chart.Sets[groupID] == nil {
					chart.Sets[groupID] = make(map[int]int)
					chart.Groups = append(chart.Groups, groupID)
				}
				chart.Sets[groupID][weekNum] += len(entry.Sets)
			}
		}
	}

	return chart
}
