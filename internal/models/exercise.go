// ABOUTME: Exercise model, a reusable movement definition.
// ABOUTME: Carries sets/reps/weight defaults and optional interval timing.
package models

import "fmt"

// Exercise is a reusable movement template. Logs are derived from its
// sets/reps/weight values at the moment a log is created.
type Exercise struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Sets        int      `json:"sets" yaml:"sets"`
	Reps        int      `json:"reps" yaml:"reps"`
	Weight      *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`

	// RepNames may be shorter or longer than Reps; lookups cycle by index.
	RepNames []string `json:"repNames,omitempty" yaml:"repNames,omitempty"`

	SetRestPeriodSeconds *int `json:"setRestPeriodSeconds,omitempty" yaml:"setRestPeriodSeconds,omitempty"`
	RepRestPeriodSeconds *int `json:"repRestPeriodSeconds,omitempty" yaml:"repRestPeriodSeconds,omitempty"`

	// RepDurationSeconds > 0 enables interval timing; nil means untimed.
	RepDurationSeconds *int `json:"repDurationSeconds,omitempty" yaml:"repDurationSeconds,omitempty"`
}

// NewExercise creates an Exercise with the minimum viable defaults.
func NewExercise(name string) *Exercise {
	return &Exercise{
		Name: name,
		Sets: 1,
		Reps: 1,
	}
}

// WithDescription sets the description.
func (e *Exercise) WithDescription(desc string) *Exercise {
	e.Description = &desc
	return e
}

// WithSets sets the number of sets.
func (e *Exercise) WithSets(sets int) *Exercise {
	e.Sets = sets
	return e
}

// WithReps sets the number of reps per set.
func (e *Exercise) WithReps(reps int) *Exercise {
	e.Reps = reps
	return e
}

// WithWeight sets the working weight.
func (e *Exercise) WithWeight(weight float64) *Exercise {
	e.Weight = &weight
	return e
}

// WithRepNames sets the ordered rep name list.
func (e *Exercise) WithRepNames(names []string) *Exercise {
	e.RepNames = names
	return e
}

// WithSetRest sets the rest period between sets, in seconds.
func (e *Exercise) WithSetRest(seconds int) *Exercise {
	e.SetRestPeriodSeconds = &seconds
	return e
}

// WithRepRest sets the rest period between reps, in seconds.
func (e *Exercise) WithRepRest(seconds int) *Exercise {
	e.RepRestPeriodSeconds = &seconds
	return e
}

// WithRepDuration sets the timed-rep duration, in seconds.
func (e *Exercise) WithRepDuration(seconds int) *Exercise {
	e.RepDurationSeconds = &seconds
	return e
}

// RepName returns the display name for rep index i (zero-based).
// The RepNames list may be any length; it is cycled modulo its length.
func (e *Exercise) RepName(i int) string {
	if len(e.RepNames) == 0 {
		return fmt.Sprintf("Rep %d", i+1)
	}
	return e.RepNames[i%len(e.RepNames)]
}

// Timed reports whether reps of this exercise run on an interval timer.
func (e *Exercise) Timed() bool {
	return e.RepDurationSeconds != nil && *e.RepDurationSeconds > 0
}

// Validate checks the exercise's field constraints.
func (e *Exercise) Validate() error {
	if e.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if e.Sets < 1 {
		return &ValidationError{Field: "sets", Message: "must be at least 1"}
	}
	if e.Reps < 1 {
		return &ValidationError{Field: "reps", Message: "must be at least 1"}
	}
	if e.SetRestPeriodSeconds != nil && *e.SetRestPeriodSeconds < 0 {
		return &ValidationError{Field: "setRestPeriodSeconds", Message: "must not be negative"}
	}
	if e.RepRestPeriodSeconds != nil && *e.RepRestPeriodSeconds < 0 {
		return &ValidationError{Field: "repRestPeriodSeconds", Message: "must not be negative"}
	}
	if e.RepDurationSeconds != nil && *e.RepDurationSeconds <= 0 {
		return &ValidationError{Field: "repDurationSeconds", Message: "must be positive when set"}
	}
	return nil
}
