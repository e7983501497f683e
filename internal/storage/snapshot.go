// ABOUTME: Snapshot codec converting the full store to and from a single
// ABOUTME: versioned document, plus the merge-style import path.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/gratis/internal/models"
	"gopkg.in/yaml.v3"
)

// SnapshotVersion is carried verbatim in every exported document. It is
// informational for now; no migration logic keys off it.
const SnapshotVersion = "1.0"

// Snapshot is the backup document. Its data section is a faithful copy
// of the four collections at read time.
type Snapshot struct {
	Version   string       `json:"version" yaml:"version"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
	Data      SnapshotData `json:"data" yaml:"data"`
}

// SnapshotData holds the four collections of a snapshot.
type SnapshotData struct {
	Workouts     []*models.Workout     `json:"workouts" yaml:"workouts"`
	Exercises    []*models.Exercise    `json:"exercises" yaml:"exercises"`
	WorkoutLogs  []*models.WorkoutLog  `json:"workoutLogs" yaml:"workoutLogs"`
	ExerciseLogs []*models.ExerciseLog `json:"exerciseLogs" yaml:"exerciseLogs"`
}

// ExportSnapshot reads all four collections and assembles a snapshot.
// The reads are independent, not a cross-collection transaction; the
// document is a point-in-time best-effort copy.
func (d *DB) ExportSnapshot() (*Snapshot, error) {
	workouts, err := d.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	exercises, err := d.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	workoutLogs, err := d.ListWorkoutLogs()
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	exerciseLogs, err := d.ListExerciseLogs()
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	if workouts == nil {
		workouts = []*models.Workout{}
	}
	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	if workoutLogs == nil {
		workoutLogs = []*models.WorkoutLog{}
	}
	if exerciseLogs == nil {
		exerciseLogs = []*models.ExerciseLog{}
	}

	return &Snapshot{
		Version:   SnapshotVersion,
		Timestamp: time.Now().UTC(),
		Data: SnapshotData{
			Workouts:     workouts,
			Exercises:    exercises,
			WorkoutLogs:  workoutLogs,
			ExerciseLogs: exerciseLogs,
		},
	}, nil
}

// ExportJSON serializes the full store as an indented snapshot document.
func (d *DB) ExportJSON() ([]byte, error) {
	snap, err := d.ExportSnapshot()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return data, nil
}

// ExportYAML serializes the full store as a YAML snapshot document.
func (d *DB) ExportYAML() ([]byte, error) {
	snap, err := d.ExportSnapshot()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("export yaml: %w", err)
	}
	return data, nil
}

// ParseSnapshot decodes a snapshot document from JSON bytes.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// MergeSnapshot upserts every record in the snapshot by id without
// clearing anything first. Existing records with matching ids are
// overwritten, everything else is left alone. Ids are preserved, never
// reassigned. This is the local file import path; remote restore uses
// ImportSnapshot instead.
func (d *DB) MergeSnapshot(snap *Snapshot) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("merge snapshot: %w", err)
	}
	defer tx.Rollback()

	if err := insertSnapshotData(tx, &snap.Data, true); err != nil {
		return fmt.Errorf("merge snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("merge snapshot: %w", err)
	}
	return nil
}

// ImportJSON decodes a snapshot document and applies it, either merging
// by id or destructively replacing all content.
func (d *DB) ImportJSON(data []byte, merge bool) error {
	snap, err := ParseSnapshot(data)
	if err != nil {
		return err
	}
	if merge {
		return d.MergeSnapshot(snap)
	}
	return d.ImportSnapshot(snap)
}
