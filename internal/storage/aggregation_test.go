// ABOUTME: Tests for the completion aggregation rules.
// ABOUTME: Covers the AND-rule override and propagation to the workout log.
package storage

import (
	"testing"

	"github.com/harperreed/gratis/internal/models"
)

// sessionFixture builds a workout log on one date with exercise logs for
// two exercises, returning everything needed by the propagation tests.
func sessionFixture(t *testing.T, db *DB) (wl *models.WorkoutLog, elA, elB *models.ExerciseLog) {
	t.Helper()

	a := mustCreateExercise(t, db, "Bench", 2, 5)
	b := mustCreateExercise(t, db, "Rows", 2, 10)

	w := models.NewWorkout("Upper")
	w.Exercises = []int64{a.ID, b.ID}
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	wl, err := db.ScheduleWorkout(w.ID, "2026-04-01")
	if err != nil {
		t.Fatalf("ScheduleWorkout failed: %v", err)
	}
	elA, err = db.FindOrCreateExerciseLog(wl.ID, a.ID)
	if err != nil {
		t.Fatalf("FindOrCreateExerciseLog failed: %v", err)
	}
	elB, err = db.FindOrCreateExerciseLog(wl.ID, b.ID)
	if err != nil {
		t.Fatalf("FindOrCreateExerciseLog failed: %v", err)
	}
	return wl, elA, elB
}

func completeAllSets(t *testing.T, db *DB, el *models.ExerciseLog) {
	t.Helper()
	sets := make([]bool, len(el.SetsCompleted))
	for i := range sets {
		sets[i] = true
	}
	if _, err := db.UpdateExerciseLog(el.ID, ExerciseLogPatch{SetsCompleted: &sets}); err != nil {
		t.Fatalf("UpdateExerciseLog failed: %v", err)
	}
}

func TestSetsCompletedRecomputesIsCompleted(t *testing.T) {
	db := setupTestDB(t)
	_, elA, _ := sessionFixture(t, db)

	// A caller-supplied isCompleted is overridden by the recomputed value
	// whenever setsCompleted is in the same patch.
	lie := true
	sets := []bool{true, false}
	updated, err := db.UpdateExerciseLog(elA.ID, ExerciseLogPatch{
		IsCompleted:   &lie,
		SetsCompleted: &sets,
	})
	if err != nil {
		t.Fatalf("UpdateExerciseLog failed: %v", err)
	}
	if updated.IsCompleted {
		t.Error("Expected isCompleted false with an incomplete set, override ignored")
	}

	sets = []bool{true, true}
	deny := false
	updated, err = db.UpdateExerciseLog(elA.ID, ExerciseLogPatch{
		IsCompleted:   &deny,
		SetsCompleted: &sets,
	})
	if err != nil {
		t.Fatalf("UpdateExerciseLog failed: %v", err)
	}
	if !updated.IsCompleted {
		t.Error("Expected isCompleted true with all sets done")
	}
}

func TestPropagationMarksWorkoutLogComplete(t *testing.T) {
	db := setupTestDB(t)
	wl, elA, elB := sessionFixture(t, db)

	completeAllSets(t, db, elA)

	got, err := db.GetWorkoutLog(wl.ID)
	if err != nil {
		t.Fatalf("GetWorkoutLog failed: %v", err)
	}
	if got.IsCompleted {
		t.Error("Workout log complete with one exercise outstanding")
	}

	completeAllSets(t, db, elB)

	got, _ = db.GetWorkoutLog(wl.ID)
	if !got.IsCompleted {
		t.Error("Expected workout log complete after both exercises done")
	}
}

func TestPropagationUnmarksWorkoutLog(t *testing.T) {
	db := setupTestDB(t)
	wl, elA, elB := sessionFixture(t, db)

	completeAllSets(t, db, elA)
	completeAllSets(t, db, elB)

	// Un-marking one set flips the exercise log and the session with it.
	sets := []bool{true, false}
	if _, err := db.UpdateExerciseLog(elA.ID, ExerciseLogPatch{SetsCompleted: &sets}); err != nil {
		t.Fatalf("UpdateExerciseLog failed: %v", err)
	}

	got, _ := db.GetWorkoutLog(wl.ID)
	if got.IsCompleted {
		t.Error("Expected workout log incomplete after un-marking a set")
	}
}

func TestPropagationExcludesDanglingReferences(t *testing.T) {
	db := setupTestDB(t)
	wl, elA, elB := sessionFixture(t, db)

	// Delete one child directly; its id stays in the workout log's list.
	if err := db.DeleteExerciseLog(elB.ID); err != nil {
		t.Fatalf("DeleteExerciseLog failed: %v", err)
	}

	completeAllSets(t, db, elA)

	// The dangling id is excluded from the AND, not treated as incomplete.
	got, _ := db.GetWorkoutLog(wl.ID)
	if !got.IsCompleted {
		t.Error("Expected workout log complete when only resolvable child is done")
	}
}

func TestPropagationWithoutOwnerIsNoop(t *testing.T) {
	db := setupTestDB(t)

	e := mustCreateExercise(t, db, "Stretch", 1, 1)
	el := models.NewExerciseLog(e, "2026-04-02")
	if err := db.CreateExerciseLog(el); err != nil {
		t.Fatalf("CreateExerciseLog failed: %v", err)
	}

	// A log never attached to a workout log still updates cleanly.
	completeAllSets(t, db, el)
	got, err := db.GetExerciseLog(el.ID)
	if err != nil {
		t.Fatalf("GetExerciseLog failed: %v", err)
	}
	if !got.IsCompleted {
		t.Error("Expected exercise log completed")
	}
}

func TestDirectIsCompletedAlsoPropagates(t *testing.T) {
	db := setupTestDB(t)
	wl, elA, elB := sessionFixture(t, db)

	// Flipping isCompleted without touching setsCompleted still propagates.
	done := true
	if _, err := db.UpdateExerciseLog(elA.ID, ExerciseLogPatch{IsCompleted: &done}); err != nil {
		t.Fatalf("UpdateExerciseLog failed: %v", err)
	}
	if _, err := db.UpdateExerciseLog(elB.ID, ExerciseLogPatch{IsCompleted: &done}); err != nil {
		t.Fatalf("UpdateExerciseLog failed: %v", err)
	}

	got, _ := db.GetWorkoutLog(wl.ID)
	if !got.IsCompleted {
		t.Error("Expected workout log complete after direct flag updates")
	}
}
