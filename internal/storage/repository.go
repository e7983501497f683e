// ABOUTME: Store interface for workout tracking data.
// ABOUTME: Defines the contract implemented by the SQLite-backed DB.
package storage

import "github.com/harperreed/gratis/internal/models"

// Store defines the storage interface for workout data.
// This interface allows swapping implementations (e.g., for testing).
type Store interface {
	// Exercise operations
	CreateExercise(e *models.Exercise) error
	GetExercise(id int64) (*models.Exercise, error)
	UpdateExercise(id int64, patch ExercisePatch) (*models.Exercise, error)
	DeleteExercise(id int64) error
	ListExercises() ([]*models.Exercise, error)
	ResolveExercises(ids []int64) ([]*models.Exercise, error)

	// Workout operations
	CreateWorkout(w *models.Workout) error
	GetWorkout(id int64) (*models.Workout, error)
	UpdateWorkout(id int64, patch WorkoutPatch) (*models.Workout, error)
	DeleteWorkout(id int64) error
	ListWorkouts() ([]*models.Workout, error)

	// Workout log operations
	ScheduleWorkout(workoutID int64, date string) (*models.WorkoutLog, error)
	CreateWorkoutLog(wl *models.WorkoutLog) error
	GetWorkoutLog(id int64) (*models.WorkoutLog, error)
	UpdateWorkoutLog(id int64, patch WorkoutLogPatch) (*models.WorkoutLog, error)
	DeleteWorkoutLog(id int64) error
	ListWorkoutLogs() ([]*models.WorkoutLog, error)
	ListWorkoutLogsByDate(date string) ([]*models.WorkoutLog, error)
	AttachExerciseLog(workoutLogID, exerciseLogID int64) error

	// Exercise log operations
	CreateExerciseLog(el *models.ExerciseLog) error
	GetExerciseLog(id int64) (*models.ExerciseLog, error)
	GetExerciseLogs(ids []int64) ([]*models.ExerciseLog, error)
	FindOrCreateExerciseLog(workoutLogID, exerciseID int64) (*models.ExerciseLog, error)
	UpdateExerciseLog(id int64, patch ExerciseLogPatch) (*models.ExerciseLog, error)
	DeleteExerciseLog(id int64) error
	ListExerciseLogs() ([]*models.ExerciseLog, error)
	ListExerciseLogsByDate(date string) ([]*models.ExerciseLog, error)
	ListExerciseLogsByExercise(exerciseID int64) ([]*models.ExerciseLog, error)

	// Backup/restore
	ExportSnapshot() (*Snapshot, error)
	ExportJSON() ([]byte, error)
	ExportYAML() ([]byte, error)
	ExportMarkdown() (string, error)
	ImportSnapshot(snap *Snapshot) error
	MergeSnapshot(snap *Snapshot) error
	ImportJSON(data []byte, merge bool) error

	// Lifecycle
	Close() error
}

// Compile-time check that DB implements Store.
var _ Store = (*DB)(nil)
