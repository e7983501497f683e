// ABOUTME: WorkoutLog CRUD and scheduling operations for SQLite storage.
// ABOUTME: Unscheduling cascades: referenced exercise logs are deleted first.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/gratis/internal/models"
)

// WorkoutLogPatch carries the fields of a workout log update. Nil fields
// are left unchanged.
type WorkoutLogPatch struct {
	WorkoutID    *int64
	Date         *string
	IsCompleted  *bool
	ExerciseLogs *[]int64
	Notes        *string
}

// ScheduleWorkout creates a workout log placing the workout on a calendar
// date. Several workouts may be scheduled on the same date, each with its
// own log; no uniqueness of (workout, date) is enforced.
func (d *DB) ScheduleWorkout(workoutID int64, date string) (*models.WorkoutLog, error) {
	if _, err := d.GetWorkout(workoutID); err != nil {
		return nil, fmt.Errorf("schedule workout %d: %w", workoutID, err)
	}

	wl := models.NewWorkoutLog(workoutID, date)
	if err := d.CreateWorkoutLog(wl); err != nil {
		return nil, fmt.Errorf("schedule workout %d: %w", workoutID, err)
	}
	return wl, nil
}

// CreateWorkoutLog validates and stores a new workout log, assigning its id.
func (d *DB) CreateWorkoutLog(wl *models.WorkoutLog) error {
	if err := wl.Validate(); err != nil {
		return fmt.Errorf("create workout log: %w", err)
	}

	logs, err := encodeList(wl.ExerciseLogs)
	if err != nil {
		return fmt.Errorf("create workout log: %w", err)
	}

	res, err := d.db.Exec(`
		INSERT INTO workout_logs (workout_id, date, is_completed, exercise_logs, notes)
		VALUES (?, ?, ?, ?, ?)`,
		wl.WorkoutID, wl.Date, wl.IsCompleted, logs, wl.Notes,
	)
	if err != nil {
		return fmt.Errorf("create workout log: %w", err)
	}

	wl.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create workout log: %w", err)
	}
	return nil
}

// GetWorkoutLog retrieves a workout log by id.
func (d *DB) GetWorkoutLog(id int64) (*models.WorkoutLog, error) {
	row := d.db.QueryRow(`
		SELECT id, workout_id, date, is_completed, exercise_logs, notes
		FROM workout_logs WHERE id = ?`, id)
	wl, err := scanWorkoutLog(row)
	if err != nil {
		return nil, fmt.Errorf("get workout log %d: %w", id, err)
	}
	return wl, nil
}

// UpdateWorkoutLog merges the supplied fields into the stored log and
// returns the updated record.
func (d *DB) UpdateWorkoutLog(id int64, patch WorkoutLogPatch) (*models.WorkoutLog, error) {
	wl, err := d.GetWorkoutLog(id)
	if err != nil {
		return nil, fmt.Errorf("update workout log %d: %w", id, ErrNotFound)
	}

	if patch.WorkoutID != nil {
		wl.WorkoutID = *patch.WorkoutID
	}
	if patch.Date != nil {
		wl.Date = *patch.Date
	}
	if patch.IsCompleted != nil {
		wl.IsCompleted = *patch.IsCompleted
	}
	if patch.ExerciseLogs != nil {
		wl.ExerciseLogs = *patch.ExerciseLogs
	}
	if patch.Notes != nil {
		wl.Notes = patch.Notes
	}

	if err := wl.Validate(); err != nil {
		return nil, fmt.Errorf("update workout log %d: %w", id, err)
	}

	logs, err := encodeList(wl.ExerciseLogs)
	if err != nil {
		return nil, fmt.Errorf("update workout log %d: %w", id, err)
	}

	_, err = d.db.Exec(`
		UPDATE workout_logs SET workout_id = ?, date = ?, is_completed = ?, exercise_logs = ?, notes = ?
		WHERE id = ?`,
		wl.WorkoutID, wl.Date, wl.IsCompleted, logs, wl.Notes, id)
	if err != nil {
		return nil, fmt.Errorf("update workout log %d: %w", id, err)
	}
	return wl, nil
}

// DeleteWorkoutLog unschedules a session. The delete cascades: every
// exercise log referenced by the workout log is removed first, inside one
// transaction.
func (d *DB) DeleteWorkoutLog(id int64) error {
	wl, err := d.GetWorkoutLog(id)
	if err != nil {
		return fmt.Errorf("delete workout log %d: %w", id, err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete workout log %d: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	if len(wl.ExerciseLogs) > 0 {
		placeholders := make([]string, len(wl.ExerciseLogs))
		args := make([]any, len(wl.ExerciseLogs))
		for i, logID := range wl.ExerciseLogs {
			placeholders[i] = "?"
			args[i] = logID
		}
		query := fmt.Sprintf(`DELETE FROM exercise_logs WHERE id IN (%s)`, strings.Join(placeholders, ","))
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("delete workout log %d: cascade: %w", id, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM workout_logs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete workout log %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete workout log %d: %w", id, err)
	}
	return nil
}

// ListWorkoutLogs retrieves all workout logs ordered by date then id.
func (d *DB) ListWorkoutLogs() ([]*models.WorkoutLog, error) {
	return d.queryWorkoutLogs(`
		SELECT id, workout_id, date, is_completed, exercise_logs, notes
		FROM workout_logs ORDER BY date, id`)
}

// ListWorkoutLogsByDate retrieves the workout logs scheduled on a date.
func (d *DB) ListWorkoutLogsByDate(date string) ([]*models.WorkoutLog, error) {
	return d.queryWorkoutLogs(`
		SELECT id, workout_id, date, is_completed, exercise_logs, notes
		FROM workout_logs WHERE date = ? ORDER BY id`, date)
}

// AttachExerciseLog appends an exercise log id to a workout log's list.
// An exercise log must belong to at most one workout log per date, so the
// attach fails if any other log on that date already references the id.
func (d *DB) AttachExerciseLog(workoutLogID, exerciseLogID int64) error {
	wl, err := d.GetWorkoutLog(workoutLogID)
	if err != nil {
		return fmt.Errorf("attach exercise log %d: %w", exerciseLogID, err)
	}
	if wl.References(exerciseLogID) {
		return nil
	}

	sameDate, err := d.ListWorkoutLogsByDate(wl.Date)
	if err != nil {
		return fmt.Errorf("attach exercise log %d: %w", exerciseLogID, err)
	}
	for _, other := range sameDate {
		if other.ID != wl.ID && other.References(exerciseLogID) {
			return fmt.Errorf("attach exercise log %d: already referenced by workout log %d on %s",
				exerciseLogID, other.ID, wl.Date)
		}
	}

	updated := append(wl.ExerciseLogs, exerciseLogID)
	_, err = d.UpdateWorkoutLog(wl.ID, WorkoutLogPatch{ExerciseLogs: &updated})
	if err != nil {
		return fmt.Errorf("attach exercise log %d: %w", exerciseLogID, err)
	}
	return nil
}

func (d *DB) queryWorkoutLogs(query string, args ...any) ([]*models.WorkoutLog, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workout logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.WorkoutLog
	for rows.Next() {
		wl, err := scanWorkoutLog(rows)
		if err != nil {
			return nil, fmt.Errorf("list workout logs: %w", err)
		}
		logs = append(logs, wl)
	}
	return logs, rows.Err()
}

func scanWorkoutLog(row scanner) (*models.WorkoutLog, error) {
	var wl models.WorkoutLog
	var logs string
	var notes sql.NullString

	err := row.Scan(&wl.ID, &wl.WorkoutID, &wl.Date, &wl.IsCompleted, &logs, &notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan workout log: %w", err)
	}

	if err := decodeList(logs, &wl.ExerciseLogs); err != nil {
		return nil, fmt.Errorf("scan workout log: %w", err)
	}
	if notes.Valid {
		wl.Notes = &notes.String
	}
	return &wl, nil
}
