// Package render turns an aggregated mesocycle into Markdown notes, chart
// blocks, and the cross-mesocycle CSV summary.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/meso/internal/meso"
	"github.com/gorewood/meso/internal/refdata"
)

// chartPalette is the fixed 10-color cycle for chart blocks, by row index.
var chartPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Renderer holds the immutable run configuration for Markdown generation.
// Now is injectable so rendering is reproducible under test.
type Renderer struct {
	Lookup       refdata.Lookup
	MuscleGroups *refdata.MuscleGroups
	Frontmatter  string
	Now          func() time.Time
}

// Render produces the complete Markdown document for one mesocycle:
// frontmatter, exercise summary table, muscle-volume chart block, then one
// section per (week, day) in order, each closed with a horizontal rule.
func (r *Renderer) Render(m *meso.Mesocycle, source string) string {
	summary := meso.Summarize(m)

	var builder strings.Builder
	builder.WriteString(r.renderFrontmatter(m, source))
	builder.WriteString("\n\n")
	r.writeSummaryTable(&builder, summary)
	builder.WriteString("\n\n")
	r.writeVolumeChart(&builder, meso.MuscleVolume(m))
	builder.WriteString("\n")

	for weekIdx, week := range m.Weeks {
		for _, day := range week.Days {
			r.writeDaySection(&builder, &day, weekIdx+1)
		}
	}

	return builder.String()
}

// renderFrontmatter substitutes the template placeholders. The title is the
// mesocycle name with spaces replaced by underscores; timestamps are the
// current UTC time.
func (r *Renderer) renderFrontmatter(m *meso.Mesocycle, source string) string {
	now := r.now().UTC().Format("2006-01-02 15:04 UTC")

	replacer := strings.NewReplacer(
		"{title}", strings.ReplaceAll(m.Name, " ", "_"),
		"{created}", now,
		"{updated}", now,
		"{source}", source,
	)
	return replacer.Replace(r.Frontmatter)
}

// now falls back to the wall clock when no clock was injected.
func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// writeSummaryTable renders the per-exercise weekly set-count table, grouped
// under bold weekday sub-headers in Monday..Sunday order. Day labels outside
// the weekday set are omitted here (they still get day sections).
func (r *Renderer) writeSummaryTable(builder *strings.Builder, summary *meso.Summary) {
	headers := make([]string, 0, summary.Weeks+4)
	headers = append(headers, "Exercise")
	for w := 1; w <= summary.Weeks; w++ {
		headers = append(headers, fmt.Sprintf("W%d", w))
	}
	headers = append(headers, "Total", "Max Weight", "Max Reps")

	builder.WriteString("## Exercise Summary\n\n")
	builder.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	builder.WriteString("|" + strings.Join(dashes(len(headers)), " | ") + " |\n")

	for _, label := range meso.Weekdays {
		exercises, ok := summary.DayOrder[label]
		if !ok {
			continue
		}

		builder.WriteString("| **" + label + "** " + strings.Repeat(" |", len(headers)-1) + " |\n")
		for _, exerciseID := range exercises {
			r.writeSummaryRow(builder, summary, label, exerciseID)
		}
	}
}

// writeSummaryRow renders one exercise's weekly counts, total, and max effort.
func (r *Renderer) writeSummaryRow(builder *strings.Builder, summary *meso.Summary, label string, exerciseID int) {
	key := meso.DayExercise{Label: label, ExerciseID: exerciseID}

	cells := make([]string, 0, summary.Weeks+4)
	cells = append(cells, "[["+r.Lookup.Name(exerciseID)+"]]")
	for _, count := range summary.WeeklySets[key] {
		cells = append(cells, strconv.Itoa(count))
	}
	maxWeight, maxReps := formatEffort(summary.MaxEffort[key])
	cells = append(cells, strconv.Itoa(summary.TotalSets(key)), maxWeight, maxReps)

	builder.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

// writeVolumeChart renders the muscle-group weekly volume table, its block
// anchor, and one fenced chart definition per muscle group.
func (r *Renderer) writeVolumeChart(builder *strings.Builder, chart *meso.VolumeChart) {
	header := make([]string, 0, chart.Weeks+1)
	header = append(header, "Muscle")
	for w := 1; w <= chart.Weeks; w++ {
		header = append(header, fmt.Sprintf("W%d", w))
	}

	builder.WriteString("| " + strings.Join(header, " | ") + " |\n")
	builder.WriteString("|" + strings.Repeat("--------|", len(header)) + "\n")

	labels := make([]string, 0, len(chart.Groups))
	for _, groupID := range chart.Groups {
		id := groupID
		label := r.MuscleGroups.LabelFor(&id)
		labels = append(labels, label)

		cells := []string{label}
		for w := 1; w <= chart.Weeks; w++ {
			cells = append(cells, strconv.Itoa(chart.Sets[groupID][w]))
		}
		builder.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	builder.WriteString("^table\n")
	builder.WriteString("\n## Summary\n\n")

	for i, label := range labels {
		if i > 0 {
			builder.WriteString("\n")
		}
		writeChartBlock(builder, label, chartPalette[i%len(chartPalette)])
	}
}

// writeChartBlock emits one fenced chart definition for a muscle-group row.
func writeChartBlock(builder *strings.Builder, label, color string) {
	builder.WriteString("```chart\n")
	builder.WriteString("type: bar\n")
	builder.WriteString("id: table\n")
	fmt.Fprintf(builder, "title: %q\n", label)
	fmt.Fprintf(builder, "select: [%q]\n", label)
	builder.WriteString("layout: rows\n")
	builder.WriteString("width: 80%\n")
	builder.WriteString("beginAtZero: true\n")
	fmt.Fprintf(builder, "color: %q\n", color)
	builder.WriteString("showDataLabels: true\n")
	builder.WriteString("```")
}

// writeDaySection renders one training day: heading with finish date, then
// per exercise its muscle group, name, equipment, and the set table.
func (r *Renderer) writeDaySection(builder *strings.Builder, day *meso.Day, weekNum int) {
	date := "TBD"
	if day.FinishedAt != "" {
		date = day.FinishedAt
		if len(date) > 10 {
			date = date[:10]
		}
	}
	fmt.Fprintf(builder, "\n## Week %d - Day %d - %s ([[%s]])\n\n", weekNum, day.Position+1, day.Label, date)

	for _, entry := range day.Exercises {
		muscle := r.MuscleGroups.LabelFor(r.Lookup.MuscleGroup(entry.ExerciseID))
		fmt.Fprintf(builder, "### %s — [[%s]]\n\n", muscle, r.Lookup.Name(entry.ExerciseID))
		fmt.Fprintf(builder, "[[%s]]\n\n", r.Lookup.Equipment(entry.ExerciseID))

		builder.WriteString("| Weight | Reps |\n")
		builder.WriteString("| ------ | ---- |\n")
		for _, set := range entry.Sets {
			fmt.Fprintf(builder, "| %s | %s |\n", formatWeight(set.Weight), formatReps(set.Reps))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("---\n")
}

// formatEffort renders the max-effort columns. A nil effort (no weighted set
// ever logged) blanks both cells; a genuine zero-weight effort renders "0".
func formatEffort(effort *meso.Effort) (weight, reps string) {
	if effort == nil {
		return "", ""
	}
	return strconv.FormatFloat(effort.Weight, 'f', -1, 64), formatReps(effort.Reps)
}

// formatWeight renders a set weight, with an empty cell for unlogged loads.
func formatWeight(weight *float64) string {
	if weight == nil {
		return ""
	}
	return strconv.FormatFloat(*weight, 'f', -1, 64)
}

// formatReps renders a rep count, blanking nil and negative values.
func formatReps(reps *int) string {
	if reps == nil || *reps < 0 {
		return ""
	}
	return strconv.Itoa(*reps)
}

// dashes returns n markdown column separators.
func dashes(n int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	return cells
}
