// ABOUTME: Tests for MCP tool handlers against a real SQLite store.
package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/gratis/internal/storage"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gratis-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "gratis.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewServer(db)
	if err != nil {
		t.Fatalf("Failed to create MCP server: %v", err)
	}
	return s
}

func TestAddExerciseTool(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleAddExercise(ctx, nil, addExerciseInput{
		Name: "Push-ups", Sets: 3, Reps: 12,
	})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}
	if out.ID == 0 || out.Name != "Push-ups" {
		t.Errorf("Unexpected output: %+v", out)
	}

	if _, _, err := s.handleAddExercise(ctx, nil, addExerciseInput{}); err == nil {
		t.Error("Expected validation error for empty name")
	}
}

func TestScheduleAndCompleteSetTools(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	_, ex, err := s.handleAddExercise(ctx, nil, addExerciseInput{Name: "Squats", Sets: 2, Reps: 8})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}
	_, w, err := s.handleAddWorkout(ctx, nil, addWorkoutInput{
		Name: "Legs", Exercises: []int64{ex.ID},
	})
	if err != nil {
		t.Fatalf("handleAddWorkout failed: %v", err)
	}

	_, scheduled, err := s.handleScheduleWorkout(ctx, nil, scheduleWorkoutInput{
		WorkoutID: w.ID, Date: "2026-06-01",
	})
	if err != nil {
		t.Fatalf("handleScheduleWorkout failed: %v", err)
	}
	if scheduled.Message == "" {
		t.Error("Expected confirmation message")
	}

	logs, err := s.store.ListWorkoutLogsByDate("2026-06-01")
	if err != nil || len(logs) != 1 {
		t.Fatalf("Expected scheduled log, got %v / %v", logs, err)
	}
	wlID := logs[0].ID

	_, out, err := s.handleCompleteSet(ctx, nil, completeSetInput{
		WorkoutLogID: wlID, ExerciseID: ex.ID, Set: 1, Done: true,
	})
	if err != nil {
		t.Fatalf("handleCompleteSet failed: %v", err)
	}
	if out.ExerciseCompleted || out.WorkoutCompleted {
		t.Error("One of two sets should not complete anything")
	}

	_, out, err = s.handleCompleteSet(ctx, nil, completeSetInput{
		WorkoutLogID: wlID, ExerciseID: ex.ID, Set: 2, Done: true,
	})
	if err != nil {
		t.Fatalf("handleCompleteSet failed: %v", err)
	}
	if !out.ExerciseCompleted || !out.WorkoutCompleted {
		t.Errorf("Expected full completion after both sets, got %+v", out)
	}

	// Out-of-range sets are rejected.
	if _, _, err := s.handleCompleteSet(ctx, nil, completeSetInput{
		WorkoutLogID: wlID, ExerciseID: ex.ID, Set: 5, Done: true,
	}); err == nil {
		t.Error("Expected error for out-of-range set")
	}
}

func TestDayLogTool(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleDayLog(ctx, nil, dayLogInput{Date: "2026-06-02"})
	if err != nil {
		t.Fatalf("handleDayLog failed: %v", err)
	}
	msg, ok := out.(map[string]interface{})
	if !ok || msg["message"] == "" {
		t.Errorf("Expected empty-day message, got %v", out)
	}
}
