// ABOUTME: Destructive snapshot restore. Clears all four collections and
// ABOUTME: reinserts snapshot records with their original ids in one transaction.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/gratis/internal/models"
)

// ImportSnapshot replaces the entire store with the snapshot's contents.
// Every current record is deleted, then every snapshot record is inserted
// keeping its original id. The whole sequence runs in one transaction so
// a mid-sequence failure rolls back rather than leaving some collections
// cleared. A failure after the transaction has started to apply is
// reported as a PartialFailureError since it implies intended data loss.
func (d *DB) ImportSnapshot(snap *Snapshot) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"exercise_logs", "workout_logs", "workouts", "exercises"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return &PartialFailureError{Op: "clear " + table, Err: err}
		}
	}

	if err := insertSnapshotData(tx, &snap.Data, false); err != nil {
		return &PartialFailureError{Op: "restore records", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &PartialFailureError{Op: "commit restore", Err: err}
	}
	return nil
}

// insertSnapshotData writes snapshot records with explicit ids. With
// upsert set, existing rows with the same id are replaced; otherwise an
// id collision is an error. SQLite keeps sqlite_sequence ahead of
// explicit-id inserts, so ids assigned later stay monotonic.
func insertSnapshotData(tx *sql.Tx, data *SnapshotData, upsert bool) error {
	verb := "INSERT"
	if upsert {
		verb = "INSERT OR REPLACE"
	}

	for _, e := range data.Exercises {
		if err := insertExerciseWithID(tx, verb, e); err != nil {
			return fmt.Errorf("exercise %d: %w", e.ID, err)
		}
	}
	for _, w := range data.Workouts {
		if err := insertWorkoutWithID(tx, verb, w); err != nil {
			return fmt.Errorf("workout %d: %w", w.ID, err)
		}
	}
	for _, wl := range data.WorkoutLogs {
		if err := insertWorkoutLogWithID(tx, verb, wl); err != nil {
			return fmt.Errorf("workout log %d: %w", wl.ID, err)
		}
	}
	for _, el := range data.ExerciseLogs {
		if err := insertExerciseLogWithID(tx, verb, el); err != nil {
			return fmt.Errorf("exercise log %d: %w", el.ID, err)
		}
	}
	return nil
}

func insertExerciseWithID(tx *sql.Tx, verb string, e *models.Exercise) error {
	repNames, err := encodeNullableList(e.RepNames)
	if err != nil {
		return err
	}
	_, err = tx.Exec(verb+` INTO exercises (id, name, description, sets, reps, weight,
			rep_names, set_rest_period_seconds, rep_rest_period_seconds, rep_duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Description, e.Sets, e.Reps, e.Weight,
		repNames, e.SetRestPeriodSeconds, e.RepRestPeriodSeconds, e.RepDurationSeconds)
	return err
}

func insertWorkoutWithID(tx *sql.Tx, verb string, w *models.Workout) error {
	exercises, err := encodeList(w.Exercises)
	if err != nil {
		return err
	}
	_, err = tx.Exec(verb+` INTO workouts (id, name, description, exercises)
		VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.Description, exercises)
	return err
}

func insertWorkoutLogWithID(tx *sql.Tx, verb string, wl *models.WorkoutLog) error {
	exerciseLogs, err := encodeList(wl.ExerciseLogs)
	if err != nil {
		return err
	}
	_, err = tx.Exec(verb+` INTO workout_logs (id, workout_id, date, is_completed, exercise_logs, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		wl.ID, wl.WorkoutID, wl.Date, wl.IsCompleted, exerciseLogs, wl.Notes)
	return err
}

func insertExerciseLogWithID(tx *sql.Tx, verb string, el *models.ExerciseLog) error {
	sets, err := encodeList(el.SetsCompleted)
	if err != nil {
		return err
	}
	reps, err := encodeList(el.RepsCompletedPerSet)
	if err != nil {
		return err
	}
	weights, err := encodeNullableList(el.WeightPerRep)
	if err != nil {
		return err
	}
	_, err = tx.Exec(verb+` INTO exercise_logs (id, exercise_id, date, is_completed,
			sets_completed, reps_completed_per_set, weight_per_rep, effort, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		el.ID, el.ExerciseID, el.Date, el.IsCompleted, sets, reps, weights, el.Effort, el.Notes)
	return err
}
