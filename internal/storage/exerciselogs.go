// ABOUTME: ExerciseLog CRUD plus the completion aggregation rules.
// ABOUTME: Set-level edits recompute isCompleted and propagate to the session log.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/gratis/internal/models"
)

// ExerciseLogPatch carries the fields of an exercise log update. Nil
// fields are left unchanged. When SetsCompleted is supplied, IsCompleted
// is recomputed from it and any IsCompleted in the same patch is ignored.
type ExerciseLogPatch struct {
	IsCompleted         *bool
	SetsCompleted       *[]bool
	RepsCompletedPerSet *[]int
	WeightPerRep        *[]float64
	Effort              *int
	Notes               *string
}

// CreateExerciseLog validates and stores a new exercise log, assigning
// its id. Logs are normally created via FindOrCreateExerciseLog; this is
// the raw insert used by that path and by snapshot restore.
func (d *DB) CreateExerciseLog(el *models.ExerciseLog) error {
	if err := el.Validate(); err != nil {
		return fmt.Errorf("create exercise log: %w", err)
	}

	sets, err := encodeList(el.SetsCompleted)
	if err != nil {
		return fmt.Errorf("create exercise log: %w", err)
	}
	reps, err := encodeList(el.RepsCompletedPerSet)
	if err != nil {
		return fmt.Errorf("create exercise log: %w", err)
	}
	weights, err := encodeNullableList(el.WeightPerRep)
	if err != nil {
		return fmt.Errorf("create exercise log: %w", err)
	}

	res, err := d.db.Exec(`
		INSERT INTO exercise_logs (exercise_id, date, is_completed, sets_completed,
			reps_completed_per_set, weight_per_rep, effort, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		el.ExerciseID, el.Date, el.IsCompleted, sets, reps, weights, el.Effort, el.Notes,
	)
	if err != nil {
		return fmt.Errorf("create exercise log: %w", err)
	}

	el.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create exercise log: %w", err)
	}
	return nil
}

// GetExerciseLog retrieves an exercise log by id.
func (d *DB) GetExerciseLog(id int64) (*models.ExerciseLog, error) {
	row := d.db.QueryRow(`
		SELECT id, exercise_id, date, is_completed, sets_completed,
			reps_completed_per_set, weight_per_rep, effort, notes
		FROM exercise_logs WHERE id = ?`, id)
	el, err := scanExerciseLog(row)
	if err != nil {
		return nil, fmt.Errorf("get exercise log %d: %w", id, err)
	}
	return el, nil
}

// GetExerciseLogs retrieves the logs whose ids are in the given set. Ids
// that no longer resolve are silently omitted.
func (d *DB) GetExerciseLogs(ids []int64) ([]*models.ExerciseLog, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, exercise_id, date, is_completed, sets_completed,
			reps_completed_per_set, weight_per_rep, effort, notes
		FROM exercise_logs WHERE id IN (%s) ORDER BY id`, strings.Join(placeholders, ","))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("get exercise logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.ExerciseLog
	for rows.Next() {
		el, err := scanExerciseLog(rows)
		if err != nil {
			return nil, fmt.Errorf("get exercise logs: %w", err)
		}
		logs = append(logs, el)
	}
	return logs, rows.Err()
}

// FindOrCreateExerciseLog returns the workout log's exercise log for the
// given exercise, creating and attaching one on first use. A created log
// is always fully populated from the exercise's current sets/reps/weight,
// never partial.
func (d *DB) FindOrCreateExerciseLog(workoutLogID, exerciseID int64) (*models.ExerciseLog, error) {
	wl, err := d.GetWorkoutLog(workoutLogID)
	if err != nil {
		return nil, fmt.Errorf("find or create exercise log: %w", err)
	}

	existing, err := d.GetExerciseLogs(wl.ExerciseLogs)
	if err != nil {
		return nil, fmt.Errorf("find or create exercise log: %w", err)
	}
	for _, el := range existing {
		if el.ExerciseID == exerciseID {
			return el, nil
		}
	}

	exercise, err := d.GetExercise(exerciseID)
	if err != nil {
		return nil, fmt.Errorf("find or create exercise log: %w", err)
	}

	el := models.NewExerciseLog(exercise, wl.Date)
	if err := d.CreateExerciseLog(el); err != nil {
		return nil, fmt.Errorf("find or create exercise log: %w", err)
	}
	if err := d.AttachExerciseLog(workoutLogID, el.ID); err != nil {
		return nil, fmt.Errorf("find or create exercise log: %w", err)
	}
	return el, nil
}

// UpdateExerciseLog merges the supplied fields into the stored log and
// returns the updated record.
//
// Two aggregation rules run here. First, a patch touching SetsCompleted
// recomputes IsCompleted as the AND of all entries, overriding any value
// in the same patch. Second, when the update changes IsCompleted, the
// change propagates to the owning workout log on the same date. The log
// commits before propagation: a propagation error surfaces to the caller
// but never rolls back the already-written exercise log.
func (d *DB) UpdateExerciseLog(id int64, patch ExerciseLogPatch) (*models.ExerciseLog, error) {
	el, err := d.GetExerciseLog(id)
	if err != nil {
		return nil, fmt.Errorf("update exercise log %d: %w", id, ErrNotFound)
	}
	wasCompleted := el.IsCompleted

	if patch.IsCompleted != nil {
		el.IsCompleted = *patch.IsCompleted
	}
	if patch.SetsCompleted != nil {
		el.SetsCompleted = *patch.SetsCompleted
		el.IsCompleted = models.AllSetsComplete(el.SetsCompleted)
	}
	if patch.RepsCompletedPerSet != nil {
		el.RepsCompletedPerSet = *patch.RepsCompletedPerSet
	}
	if patch.WeightPerRep != nil {
		el.WeightPerRep = *patch.WeightPerRep
	}
	if patch.Effort != nil {
		el.Effort = patch.Effort
	}
	if patch.Notes != nil {
		el.Notes = patch.Notes
	}

	if err := el.Validate(); err != nil {
		return nil, fmt.Errorf("update exercise log %d: %w", id, err)
	}

	sets, err := encodeList(el.SetsCompleted)
	if err != nil {
		return nil, fmt.Errorf("update exercise log %d: %w", id, err)
	}
	reps, err := encodeList(el.RepsCompletedPerSet)
	if err != nil {
		return nil, fmt.Errorf("update exercise log %d: %w", id, err)
	}
	weights, err := encodeNullableList(el.WeightPerRep)
	if err != nil {
		return nil, fmt.Errorf("update exercise log %d: %w", id, err)
	}

	_, err = d.db.Exec(`
		UPDATE exercise_logs SET is_completed = ?, sets_completed = ?,
			reps_completed_per_set = ?, weight_per_rep = ?, effort = ?, notes = ?
		WHERE id = ?`,
		el.IsCompleted, sets, reps, weights, el.Effort, el.Notes, id)
	if err != nil {
		return nil, fmt.Errorf("update exercise log %d: %w", id, err)
	}

	if el.IsCompleted != wasCompleted {
		if err := d.propagateCompletion(el.ID, el.Date); err != nil {
			return el, fmt.Errorf("update exercise log %d: %w", id, err)
		}
	}
	return el, nil
}

// DeleteExerciseLog removes an exercise log. Workout logs keep the
// dangling id; readers filter it.
func (d *DB) DeleteExerciseLog(id int64) error {
	res, err := d.db.Exec(`DELETE FROM exercise_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise log %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise log %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete exercise log %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListExerciseLogs retrieves all exercise logs ordered by date then id.
func (d *DB) ListExerciseLogs() ([]*models.ExerciseLog, error) {
	return d.queryExerciseLogs(`
		SELECT id, exercise_id, date, is_completed, sets_completed,
			reps_completed_per_set, weight_per_rep, effort, notes
		FROM exercise_logs ORDER BY date, id`)
}

// ListExerciseLogsByDate retrieves the exercise logs recorded on a date.
func (d *DB) ListExerciseLogsByDate(date string) ([]*models.ExerciseLog, error) {
	return d.queryExerciseLogs(`
		SELECT id, exercise_id, date, is_completed, sets_completed,
			reps_completed_per_set, weight_per_rep, effort, notes
		FROM exercise_logs WHERE date = ? ORDER BY id`, date)
}

// ListExerciseLogsByExercise retrieves all logs for one exercise in date
// order, oldest first. Used for progress views.
func (d *DB) ListExerciseLogsByExercise(exerciseID int64) ([]*models.ExerciseLog, error) {
	return d.queryExerciseLogs(`
		SELECT id, exercise_id, date, is_completed, sets_completed,
			reps_completed_per_set, weight_per_rep, effort, notes
		FROM exercise_logs WHERE exercise_id = ? ORDER BY date, id`, exerciseID)
}

// propagateCompletion recomputes the owning workout log's isCompleted
// after an exercise log's flag changed. The owner is found by scanning
// the date's workout logs for one whose list contains the id; no owner is
// not an error, the log may simply never have been attached. One level
// only, nothing propagates beyond the workout log.
func (d *DB) propagateCompletion(exerciseLogID int64, date string) error {
	candidates, err := d.ListWorkoutLogsByDate(date)
	if err != nil {
		return fmt.Errorf("propagate completion: %w", err)
	}

	var owner *models.WorkoutLog
	for _, wl := range candidates {
		if wl.References(exerciseLogID) {
			owner = wl
			break
		}
	}
	if owner == nil {
		return nil
	}

	// Dangling ids are excluded from the aggregate, not treated as failures.
	siblings, err := d.GetExerciseLogs(owner.ExerciseLogs)
	if err != nil {
		return fmt.Errorf("propagate completion: %w", err)
	}

	allCompleted := true
	for _, el := range siblings {
		if !el.IsCompleted {
			allCompleted = false
			break
		}
	}

	if allCompleted == owner.IsCompleted {
		return nil
	}
	if _, err := d.UpdateWorkoutLog(owner.ID, WorkoutLogPatch{IsCompleted: &allCompleted}); err != nil {
		return fmt.Errorf("propagate completion: %w", err)
	}
	return nil
}

func (d *DB) queryExerciseLogs(query string, args ...any) ([]*models.ExerciseLog, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.ExerciseLog
	for rows.Next() {
		el, err := scanExerciseLog(rows)
		if err != nil {
			return nil, fmt.Errorf("list exercise logs: %w", err)
		}
		logs = append(logs, el)
	}
	return logs, rows.Err()
}

func scanExerciseLog(row scanner) (*models.ExerciseLog, error) {
	var el models.ExerciseLog
	var sets, reps string
	var weights sql.NullString
	var effort sql.NullInt64
	var notes sql.NullString

	err := row.Scan(&el.ID, &el.ExerciseID, &el.Date, &el.IsCompleted,
		&sets, &reps, &weights, &effort, &notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise log: %w", err)
	}

	if err := decodeList(sets, &el.SetsCompleted); err != nil {
		return nil, fmt.Errorf("scan exercise log: %w", err)
	}
	if err := decodeList(reps, &el.RepsCompletedPerSet); err != nil {
		return nil, fmt.Errorf("scan exercise log: %w", err)
	}
	if err := decodeNullableList(weights, &el.WeightPerRep); err != nil {
		return nil, fmt.Errorf("scan exercise log: %w", err)
	}
	if effort.Valid {
		v := int(effort.Int64)
		el.Effort = &v
	}
	if notes.Valid {
		el.Notes = &notes.String
	}
	return &el, nil
}
