// ABOUTME: Markdown rendering of the training schedule for human-readable export.
// ABOUTME: Produces a date-grouped document with per-exercise completion detail.
package storage

import (
	"fmt"
	"strings"
)

// ExportMarkdown renders the full schedule as a markdown document, one
// section per date in chronological order. Dangling workout and exercise
// references are skipped rather than failing the export.
func (d *DB) ExportMarkdown() (string, error) {
	logs, err := d.ListWorkoutLogs()
	if err != nil {
		return "", fmt.Errorf("export markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Training Schedule\n")

	lastDate := ""
	for _, wl := range logs {
		if wl.Date != lastDate {
			fmt.Fprintf(&b, "\n## %s\n\n", wl.Date)
			lastDate = wl.Date
		}

		name := fmt.Sprintf("workout %d (deleted)", wl.WorkoutID)
		if w, err := d.GetWorkout(wl.WorkoutID); err == nil {
			name = w.Name
		}
		fmt.Fprintf(&b, "### %s %s\n\n", checkbox(wl.IsCompleted), name)

		if wl.Notes != nil && *wl.Notes != "" {
			fmt.Fprintf(&b, "> %s\n\n", *wl.Notes)
		}

		els, err := d.GetExerciseLogs(wl.ExerciseLogs)
		if err != nil {
			return "", fmt.Errorf("export markdown: %w", err)
		}
		for _, el := range els {
			exName := fmt.Sprintf("exercise %d (deleted)", el.ExerciseID)
			if e, err := d.GetExercise(el.ExerciseID); err == nil {
				exName = e.Name
			}

			done := 0
			for _, s := range el.SetsCompleted {
				if s {
					done++
				}
			}
			fmt.Fprintf(&b, "- %s %s: %d/%d sets", checkbox(el.IsCompleted), exName, done, len(el.SetsCompleted))
			if el.Effort != nil {
				fmt.Fprintf(&b, ", effort %d/10", *el.Effort)
			}
			b.WriteString("\n")
		}
		if len(els) > 0 {
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
