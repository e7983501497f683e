// ABOUTME: Exercise CRUD operations for SQLite storage.
// ABOUTME: Deletes are unconditional; referencing workouts filter dangling ids.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/gratis/internal/models"
)

// ExercisePatch carries the fields of an exercise update. Nil fields are
// left unchanged; supplied fields are merged into the existing record.
type ExercisePatch struct {
	Name                 *string
	Description          *string
	Sets                 *int
	Reps                 *int
	Weight               *float64
	RepNames             *[]string
	SetRestPeriodSeconds *int
	RepRestPeriodSeconds *int
	RepDurationSeconds   *int
}

// CreateExercise validates and stores a new exercise, assigning its id.
func (d *DB) CreateExercise(e *models.Exercise) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}

	repNames, err := encodeNullableList(e.RepNames)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}

	res, err := d.db.Exec(`
		INSERT INTO exercises (name, description, sets, reps, weight, rep_names,
			set_rest_period_seconds, rep_rest_period_seconds, rep_duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Description, e.Sets, e.Reps, e.Weight, repNames,
		e.SetRestPeriodSeconds, e.RepRestPeriodSeconds, e.RepDurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by id.
func (d *DB) GetExercise(id int64) (*models.Exercise, error) {
	row := d.db.QueryRow(`
		SELECT id, name, description, sets, reps, weight, rep_names,
			set_rest_period_seconds, rep_rest_period_seconds, rep_duration_seconds
		FROM exercises WHERE id = ?`, id)

	e, err := scanExercise(row)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return e, nil
}

// UpdateExercise merges the supplied fields into the stored exercise and
// returns the updated record.
func (d *DB) UpdateExercise(id int64, patch ExercisePatch) (*models.Exercise, error) {
	e, err := d.GetExercise(id)
	if err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", id, ErrNotFound)
	}

	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Description != nil {
		e.Description = patch.Description
	}
	if patch.Sets != nil {
		e.Sets = *patch.Sets
	}
	if patch.Reps != nil {
		e.Reps = *patch.Reps
	}
	if patch.Weight != nil {
		e.Weight = patch.Weight
	}
	if patch.RepNames != nil {
		e.RepNames = *patch.RepNames
	}
	if patch.SetRestPeriodSeconds != nil {
		e.SetRestPeriodSeconds = patch.SetRestPeriodSeconds
	}
	if patch.RepRestPeriodSeconds != nil {
		e.RepRestPeriodSeconds = patch.RepRestPeriodSeconds
	}
	if patch.RepDurationSeconds != nil {
		e.RepDurationSeconds = patch.RepDurationSeconds
	}

	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", id, err)
	}

	repNames, err := encodeNullableList(e.RepNames)
	if err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", id, err)
	}

	_, err = d.db.Exec(`
		UPDATE exercises SET name = ?, description = ?, sets = ?, reps = ?, weight = ?,
			rep_names = ?, set_rest_period_seconds = ?, rep_rest_period_seconds = ?,
			rep_duration_seconds = ?
		WHERE id = ?`,
		e.Name, e.Description, e.Sets, e.Reps, e.Weight, repNames,
		e.SetRestPeriodSeconds, e.RepRestPeriodSeconds, e.RepDurationSeconds, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", id, err)
	}
	return e, nil
}

// DeleteExercise removes an exercise. Workouts and logs that reference it
// are left alone; their readers tolerate the dangling id.
func (d *DB) DeleteExercise(id int64) error {
	res, err := d.db.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete exercise %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListExercises retrieves all exercises ordered by id.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, sets, reps, weight, rep_names,
			set_rest_period_seconds, rep_rest_period_seconds, rep_duration_seconds
		FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("list exercises: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// ResolveExercises maps an ordered id list to exercises, preserving order
// and duplicates. Ids that no longer resolve are silently omitted.
func (d *DB) ResolveExercises(ids []int64) ([]*models.Exercise, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	placeholders := make([]string, 0, len(unique))
	args := make([]any, 0, len(unique))
	for id := range unique {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, sets, reps, weight, rep_names,
			set_rest_period_seconds, rep_rest_period_seconds, rep_duration_seconds
		FROM exercises WHERE id IN (%s)`, strings.Join(placeholders, ","))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve exercises: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.Exercise, len(unique))
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("resolve exercises: %w", err)
		}
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve exercises: %w", err)
	}

	resolved := make([]*models.Exercise, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			resolved = append(resolved, e)
		}
	}
	return resolved, nil
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanExercise(row scanner) (*models.Exercise, error) {
	var e models.Exercise
	var description sql.NullString
	var weight sql.NullFloat64
	var repNames sql.NullString
	var setRest, repRest, repDuration sql.NullInt64

	err := row.Scan(&e.ID, &e.Name, &description, &e.Sets, &e.Reps, &weight,
		&repNames, &setRest, &repRest, &repDuration)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	if description.Valid {
		e.Description = &description.String
	}
	if weight.Valid {
		e.Weight = &weight.Float64
	}
	if err := decodeNullableList(repNames, &e.RepNames); err != nil {
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	if setRest.Valid {
		v := int(setRest.Int64)
		e.SetRestPeriodSeconds = &v
	}
	if repRest.Valid {
		v := int(repRest.Int64)
		e.RepRestPeriodSeconds = &v
	}
	if repDuration.Valid {
		v := int(repDuration.Int64)
		e.RepDurationSeconds = &v
	}

	return &e, nil
}
