// ABOUTME: Tests for WorkoutLog and ExerciseLog models.
// ABOUTME: Verifies fully-populated log creation and the completion rule.
package models

import "testing"

func TestNewExerciseLogFullyPopulated(t *testing.T) {
	e := NewExercise("Bench Press").WithSets(3).WithReps(8).WithWeight(60)
	e.ID = 42

	el := NewExerciseLog(e, "2025-03-10")

	if el.ExerciseID != 42 {
		t.Errorf("ExerciseID = %d, want 42", el.ExerciseID)
	}
	if len(el.SetsCompleted) != 3 {
		t.Fatalf("SetsCompleted length = %d, want 3", len(el.SetsCompleted))
	}
	for i, done := range el.SetsCompleted {
		if done {
			t.Errorf("SetsCompleted[%d] should start false", i)
		}
	}
	if len(el.RepsCompletedPerSet) != 3 {
		t.Fatalf("RepsCompletedPerSet length = %d, want 3", len(el.RepsCompletedPerSet))
	}
	for i, reps := range el.RepsCompletedPerSet {
		if reps != 8 {
			t.Errorf("RepsCompletedPerSet[%d] = %d, want 8", i, reps)
		}
	}
	if len(el.WeightPerRep) != 3 {
		t.Fatalf("WeightPerRep length = %d, want 3", len(el.WeightPerRep))
	}
	if el.WeightPerRep[0] != 60 {
		t.Errorf("WeightPerRep[0] = %v, want 60", el.WeightPerRep[0])
	}
	if el.Effort == nil || *el.Effort != DefaultEffort {
		t.Errorf("Effort = %v, want default %d", el.Effort, DefaultEffort)
	}
}

func TestNewExerciseLogWithoutWeight(t *testing.T) {
	e := NewExercise("Pull-up").WithSets(2)
	el := NewExerciseLog(e, "2025-03-10")
	if el.WeightPerRep != nil {
		t.Error("WeightPerRep should stay absent for weightless exercises")
	}
}

func TestAllSetsComplete(t *testing.T) {
	cases := []struct {
		sets []bool
		want bool
	}{
		{[]bool{true, true, true}, true},
		{[]bool{true, false, true}, false},
		{[]bool{false}, false},
		{nil, true},
	}
	for _, tc := range cases {
		if got := AllSetsComplete(tc.sets); got != tc.want {
			t.Errorf("AllSetsComplete(%v) = %v, want %v", tc.sets, got, tc.want)
		}
	}
}

func TestExerciseLogValidateEffort(t *testing.T) {
	e := NewExercise("Row").WithSets(1)
	el := NewExerciseLog(e, "2025-03-10")

	bad := 11
	el.Effort = &bad
	if err := el.Validate(); err == nil {
		t.Error("effort 11 should fail validation")
	}

	good := 1
	el.Effort = &good
	if err := el.Validate(); err != nil {
		t.Errorf("effort 1 should be valid, got %v", err)
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2025-03-10"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if err := ValidateDate("10/03/2025"); err == nil {
		t.Error("malformed date accepted")
	}
}

func TestWorkoutLogReferences(t *testing.T) {
	wl := NewWorkoutLog(1, "2025-03-10")
	wl.ExerciseLogs = []int64{7, 9}

	if !wl.References(7) || !wl.References(9) {
		t.Error("References should find listed ids")
	}
	if wl.References(8) {
		t.Error("References should not find unlisted ids")
	}
}
