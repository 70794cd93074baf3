package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gorewood/meso/internal/meso"
	"github.com/gorewood/meso/internal/output"
)

// SummaryCSV accumulates one row per (day, exercise) across every processed
// mesocycle and writes them as a single flat file at the end of the run.
// Mesocycles of different lengths coexist: the header carries the widest
// week count seen and shorter rows pad with empty cells.
type SummaryCSV struct {
	rows     []summaryRow
	maxWeeks int
}

type summaryRow struct {
	mesocycle string
	day       string
	exercise  string
	totalSets int
	maxWeight string
	maxReps   string
	weekly    []int
}

// Add appends the rows for one mesocycle's summary, weekdays in
// Monday..Sunday order and exercises in encounter order, matching the
// Markdown summary table.
func (c *SummaryCSV) Add(mesocycle string, summary *meso.Summary, lookup exerciseNamer) {
	if summary.Weeks > c.maxWeeks {
		c.maxWeeks = summary.Weeks
	}

	for _, label := range meso.Weekdays {
		exercises, ok := summary.DayOrder[label]
		if !ok {
			continue
		}
		for _, exerciseID := range exercises {
			key := meso.DayExercise{Label: label, ExerciseID: exerciseID}
			maxWeight, maxReps := formatEffort(summary.MaxEffort[key])

			c.rows = append(c.rows, summaryRow{
				mesocycle: mesocycle,
				day:       label,
				exercise:  lookup.Name(exerciseID),
				totalSets: summary.TotalSets(key),
				maxWeight: maxWeight,
				maxReps:   maxReps,
				weekly:    summary.WeeklySets[key],
			})
		}
	}
}

// Empty reports whether any rows were accumulated.
func (c *SummaryCSV) Empty() bool {
	return len(c.rows) == 0
}

// Len returns the number of accumulated rows.
func (c *SummaryCSV) Len() int {
	return len(c.rows)
}

// WriteFile writes the accumulated rows as CSV with columns
// Mesocycle, Day, Exercise, Total Sets, Max Weight, Max Reps, Sets W1..WN.
func (c *SummaryCSV) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to create "+path, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	header := []string{"Mesocycle", "Day", "Exercise", "Total Sets", "Max Weight", "Max Reps"}
	for w := 1; w <= c.maxWeeks; w++ {
		header = append(header, fmt.Sprintf("Sets W%d", w))
	}
	if err := writer.Write(header); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}

	for _, row := range c.rows {
		record := []string{
			row.mesocycle,
			row.day,
			row.exercise,
			strconv.Itoa(row.totalSets),
			row.maxWeight,
			row.maxReps,
		}
		for w := 0; w < c.maxWeeks; w++ {
			if w < len(row.weekly) {
				record = append(record, strconv.Itoa(row.weekly[w]))
			} else {
				record = append(record, "")
			}
		}
		if err := writer.Write(record); err != nil {
			return output.NewSystemErrorWithCause("failed to write "+path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// exerciseNamer is the slice of the exercise lookup the CSV needs.
type exerciseNamer interface {
	Name(id int) string
}
