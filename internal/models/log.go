// ABOUTME: WorkoutLog and ExerciseLog models for per-date session tracking.
// ABOUTME: Holds the pure completion rule shared with the storage layer.
package models

// DefaultEffort is the effort assigned to a new exercise log (1-10 scale).
const DefaultEffort = 8

// WorkoutLog is one scheduled instance of a Workout on a calendar date.
// ExerciseLogs holds ids of the session's exercise logs; the entries are
// weak references and may dangle after deletes.
type WorkoutLog struct {
	ID           int64   `json:"id" yaml:"id"`
	WorkoutID    int64   `json:"workoutId" yaml:"workoutId"`
	Date         string  `json:"date" yaml:"date"`
	IsCompleted  bool    `json:"isCompleted" yaml:"isCompleted"`
	ExerciseLogs []int64 `json:"exerciseLogs" yaml:"exerciseLogs"`
	Notes        *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewWorkoutLog creates an empty, not-yet-completed log for a date.
func NewWorkoutLog(workoutID int64, date string) *WorkoutLog {
	return &WorkoutLog{
		WorkoutID:    workoutID,
		Date:         date,
		ExerciseLogs: []int64{},
	}
}

// References reports whether the log lists the given exercise log id.
func (wl *WorkoutLog) References(exerciseLogID int64) bool {
	for _, id := range wl.ExerciseLogs {
		if id == exerciseLogID {
			return true
		}
	}
	return false
}

// Validate checks the workout log's field constraints.
func (wl *WorkoutLog) Validate() error {
	if err := ValidateDate(wl.Date); err != nil {
		return err
	}
	return nil
}

// ExerciseLog is one performed instance of an Exercise on a date, with
// per-set completion detail. It is located by (exerciseId, date), not by
// a foreign key to its WorkoutLog.
type ExerciseLog struct {
	ID                  int64     `json:"id" yaml:"id"`
	ExerciseID          int64     `json:"exerciseId" yaml:"exerciseId"`
	Date                string    `json:"date" yaml:"date"`
	IsCompleted         bool      `json:"isCompleted" yaml:"isCompleted"`
	SetsCompleted       []bool    `json:"setsCompleted" yaml:"setsCompleted"`
	RepsCompletedPerSet []int     `json:"repsCompletedPerSet" yaml:"repsCompletedPerSet"`
	WeightPerRep        []float64 `json:"weightPerRep,omitempty" yaml:"weightPerRep,omitempty"`
	Effort              *int      `json:"effort,omitempty" yaml:"effort,omitempty"`
	Notes               *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewExerciseLog creates a fully populated log for an exercise on a date,
// sized from the exercise's sets/reps/weight at creation time. A log is
// never created partially filled.
func NewExerciseLog(exercise *Exercise, date string) *ExerciseLog {
	el := &ExerciseLog{
		ExerciseID:          exercise.ID,
		Date:                date,
		SetsCompleted:       make([]bool, exercise.Sets),
		RepsCompletedPerSet: make([]int, exercise.Sets),
	}
	for i := range el.RepsCompletedPerSet {
		el.RepsCompletedPerSet[i] = exercise.Reps
	}
	if exercise.Weight != nil {
		el.WeightPerRep = make([]float64, exercise.Sets)
		for i := range el.WeightPerRep {
			el.WeightPerRep[i] = *exercise.Weight
		}
	}
	effort := DefaultEffort
	el.Effort = &effort
	return el
}

// Validate checks the exercise log's field constraints.
func (el *ExerciseLog) Validate() error {
	if err := ValidateDate(el.Date); err != nil {
		return err
	}
	if el.Effort != nil && (*el.Effort < 1 || *el.Effort > 10) {
		return &ValidationError{Field: "effort", Message: "must be between 1 and 10"}
	}
	return nil
}

// AllSetsComplete is the completion rule for an exercise log: the logical
// AND of all entries in setsCompleted. An empty list is complete.
func AllSetsComplete(sets []bool) bool {
	for _, done := range sets {
		if !done {
			return false
		}
	}
	return true
}
