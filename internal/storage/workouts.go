// ABOUTME: Workout CRUD operations for SQLite storage.
// ABOUTME: Exercise id lists are stored as ordered JSON, duplicates allowed.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/gratis/internal/models"
)

// WorkoutPatch carries the fields of a workout update. Nil fields are left
// unchanged.
type WorkoutPatch struct {
	Name        *string
	Description *string
	Exercises   *[]int64
}

// CreateWorkout validates and stores a new workout, assigning its id.
func (d *DB) CreateWorkout(w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	exercises, err := encodeList(w.Exercises)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	res, err := d.db.Exec(`
		INSERT INTO workouts (name, description, exercises) VALUES (?, ?, ?)`,
		w.Name, w.Description, exercises,
	)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	w.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// GetWorkout retrieves a workout by id.
func (d *DB) GetWorkout(id int64) (*models.Workout, error) {
	row := d.db.QueryRow(`SELECT id, name, description, exercises FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if err != nil {
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}
	return w, nil
}

// UpdateWorkout merges the supplied fields into the stored workout and
// returns the updated record.
func (d *DB) UpdateWorkout(id int64, patch WorkoutPatch) (*models.Workout, error) {
	w, err := d.GetWorkout(id)
	if err != nil {
		return nil, fmt.Errorf("update workout %d: %w", id, ErrNotFound)
	}

	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.Description != nil {
		w.Description = patch.Description
	}
	if patch.Exercises != nil {
		w.Exercises = *patch.Exercises
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("update workout %d: %w", id, err)
	}

	exercises, err := encodeList(w.Exercises)
	if err != nil {
		return nil, fmt.Errorf("update workout %d: %w", id, err)
	}

	_, err = d.db.Exec(`UPDATE workouts SET name = ?, description = ?, exercises = ? WHERE id = ?`,
		w.Name, w.Description, exercises, id)
	if err != nil {
		return nil, fmt.Errorf("update workout %d: %w", id, err)
	}
	return w, nil
}

// DeleteWorkout removes a workout. WorkoutLogs referencing it are left
// alone; their readers tolerate the dangling id.
func (d *DB) DeleteWorkout(id int64) error {
	res, err := d.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete workout %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListWorkouts retrieves all workouts ordered by id.
func (d *DB) ListWorkouts() ([]*models.Workout, error) {
	rows, err := d.db.Query(`SELECT id, name, description, exercises FROM workouts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("list workouts: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func scanWorkout(row scanner) (*models.Workout, error) {
	var w models.Workout
	var description sql.NullString
	var exercises string

	err := row.Scan(&w.ID, &w.Name, &description, &exercises)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	if description.Valid {
		w.Description = &description.String
	}
	if err := decodeList(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("scan workout: %w", err)
	}
	return &w, nil
}
