// ABOUTME: MCP tool implementations for workout tracking.
// ABOUTME: Covers exercises, workouts, scheduling, and set completion.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/gratis/internal/models"
	"github.com/harperreed/gratis/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Create an exercise with sets, reps, and optional weight",
	}, s.handleAddExercise)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List all exercises",
	}, s.handleListExercises)

	// add_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Create a workout from an ordered list of exercise ids",
	}, s.handleAddWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List all workouts",
	}, s.handleListWorkouts)

	// schedule_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "schedule_workout",
		Description: "Schedule a workout on a date (YYYY-MM-DD)",
	}, s.handleScheduleWorkout)

	// complete_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_set",
		Description: "Mark a set done (or not) for an exercise in a scheduled workout",
	}, s.handleCompleteSet)

	// day_log
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "day_log",
		Description: "Show the scheduled workouts and their progress for a date",
	}, s.handleDayLog)
}

// Tool input/output types

type addExerciseInput struct {
	Name        string  `json:"name" jsonschema:"Exercise name"`
	Description string  `json:"description,omitempty" jsonschema:"Optional description"`
	Sets        int     `json:"sets,omitempty" jsonschema:"Number of sets (default 1)"`
	Reps        int     `json:"reps,omitempty" jsonschema:"Reps per set (default 1)"`
	Weight      float64 `json:"weight,omitempty" jsonschema:"Working weight, omit for bodyweight"`
}

type exerciseOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type addWorkoutInput struct {
	Name        string  `json:"name" jsonschema:"Workout name"`
	Description string  `json:"description,omitempty" jsonschema:"Optional description"`
	Exercises   []int64 `json:"exercises,omitempty" jsonschema:"Ordered exercise ids"`
}

type workoutOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type scheduleWorkoutInput struct {
	WorkoutID int64  `json:"workout_id" jsonschema:"Workout id"`
	Date      string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type completeSetInput struct {
	WorkoutLogID int64 `json:"workout_log_id" jsonschema:"Scheduled workout log id"`
	ExerciseID   int64 `json:"exercise_id" jsonschema:"Exercise id within the workout"`
	Set          int   `json:"set" jsonschema:"Set number starting at 1"`
	Done         bool  `json:"done" jsonschema:"Completion state to record (default true)"`
}

type completeSetOutput struct {
	ExerciseCompleted bool   `json:"exerciseCompleted"`
	WorkoutCompleted  bool   `json:"workoutCompleted"`
	Message           string `json:"message"`
}

type dayLogInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	e := models.NewExercise(input.Name)
	if input.Description != "" {
		e.WithDescription(input.Description)
	}
	if input.Sets > 0 {
		e.WithSets(input.Sets)
	}
	if input.Reps > 0 {
		e.WithReps(input.Reps)
	}
	if input.Weight > 0 {
		e.WithWeight(input.Weight)
	}

	if err := s.store.CreateExercise(e); err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to create exercise: %w", err)
	}

	return nil, exerciseOutput{
		ID:      e.ID,
		Name:    e.Name,
		Message: fmt.Sprintf("Added exercise %q: %dx%d (ID: %d)", e.Name, e.Sets, e.Reps, e.ID),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	exercises, err := s.store.ListExercises()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}
	return nil, exercises, nil
}

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	w := models.NewWorkout(input.Name)
	if input.Description != "" {
		w.WithDescription(input.Description)
	}
	if len(input.Exercises) > 0 {
		w.Exercises = input.Exercises
	}

	if err := s.store.CreateWorkout(w); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      w.ID,
		Name:    w.Name,
		Message: fmt.Sprintf("Added workout %q with %d exercises (ID: %d)", w.Name, len(w.Exercises), w.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}
	return nil, workouts, nil
}

func (s *Server) handleScheduleWorkout(ctx context.Context, req *mcp.CallToolRequest, input scheduleWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	date := input.Date
	if date == "" {
		date = models.Today()
	}

	wl, err := s.store.ScheduleWorkout(input.WorkoutID, date)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to schedule workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Scheduled workout %d on %s (log ID: %d)", wl.WorkoutID, wl.Date, wl.ID),
	}, nil
}

func (s *Server) handleCompleteSet(ctx context.Context, req *mcp.CallToolRequest, input completeSetInput) (*mcp.CallToolResult, completeSetOutput, error) {
	el, err := s.store.FindOrCreateExerciseLog(input.WorkoutLogID, input.ExerciseID)
	if err != nil {
		return nil, completeSetOutput{}, fmt.Errorf("failed to open exercise log: %w", err)
	}

	if input.Set < 1 || input.Set > len(el.SetsCompleted) {
		return nil, completeSetOutput{}, fmt.Errorf("set %d out of range 1-%d", input.Set, len(el.SetsCompleted))
	}

	sets := append([]bool(nil), el.SetsCompleted...)
	sets[input.Set-1] = input.Done

	updated, err := s.store.UpdateExerciseLog(el.ID, storage.ExerciseLogPatch{SetsCompleted: &sets})
	if err != nil {
		return nil, completeSetOutput{}, fmt.Errorf("failed to record set: %w", err)
	}

	wl, err := s.store.GetWorkoutLog(input.WorkoutLogID)
	if err != nil {
		return nil, completeSetOutput{}, fmt.Errorf("failed to read workout log: %w", err)
	}

	return nil, completeSetOutput{
		ExerciseCompleted: updated.IsCompleted,
		WorkoutCompleted:  wl.IsCompleted,
		Message:           fmt.Sprintf("Set %d recorded for exercise %d", input.Set, input.ExerciseID),
	}, nil
}

func (s *Server) handleDayLog(ctx context.Context, req *mcp.CallToolRequest, input dayLogInput) (*mcp.CallToolResult, any, error) {
	date := input.Date
	if date == "" {
		date = models.Today()
	}

	logs, err := s.store.ListWorkoutLogsByDate(date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workout logs: %w", err)
	}
	if len(logs) == 0 {
		return nil, map[string]interface{}{"message": fmt.Sprintf("Nothing scheduled on %s.", date)}, nil
	}

	result := make([]map[string]interface{}, 0, len(logs))
	for _, wl := range logs {
		entry := map[string]interface{}{
			"workoutLogId": wl.ID,
			"workoutId":    wl.WorkoutID,
			"isCompleted":  wl.IsCompleted,
		}
		if w, err := s.store.GetWorkout(wl.WorkoutID); err == nil {
			entry["workout"] = w.Name
		}
		if els, err := s.store.GetExerciseLogs(wl.ExerciseLogs); err == nil {
			entry["exerciseLogs"] = els
		}
		result = append(result, entry)
	}

	return nil, result, nil
}
