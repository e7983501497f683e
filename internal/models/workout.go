// ABOUTME: Workout model, a named ordered list of exercise references.
// ABOUTME: Exercise ids are weak references; readers filter dangling entries.
package models

// Workout is an ordered collection of Exercise ids. Order is the display
// and execution order. Duplicates are allowed and not deduplicated.
type Workout struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Exercises   []int64 `json:"exercises" yaml:"exercises"`
}

// NewWorkout creates a Workout with no exercises yet.
func NewWorkout(name string) *Workout {
	return &Workout{
		Name:      name,
		Exercises: []int64{},
	}
}

// WithDescription sets the description.
func (w *Workout) WithDescription(desc string) *Workout {
	w.Description = &desc
	return w
}

// WithExercises sets the ordered exercise id list.
func (w *Workout) WithExercises(ids []int64) *Workout {
	w.Exercises = ids
	return w
}

// References reports whether the workout lists the given exercise id.
func (w *Workout) References(exerciseID int64) bool {
	for _, id := range w.Exercises {
		if id == exerciseID {
			return true
		}
	}
	return false
}

// Validate checks the workout's field constraints.
func (w *Workout) Validate() error {
	if w.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	return nil
}
