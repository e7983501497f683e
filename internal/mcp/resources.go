// ABOUTME: MCP resource implementations for workout tracking.
// ABOUTME: Provides gratis://schedule/today and gratis://exercises resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/gratis/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// gratis://schedule/today - Today's scheduled workouts with progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gratis://schedule/today",
		Name:        "Today's Schedule",
		Description: "Workouts scheduled today with per-exercise completion",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// gratis://exercises - The exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gratis://exercises",
		Name:        "Exercise Catalog",
		Description: "All defined exercises with sets, reps, and weights",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	date := models.Today()
	logs, err := s.store.ListWorkoutLogsByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout logs: %w", err)
	}

	sessions := make([]map[string]interface{}, 0, len(logs))
	for _, wl := range logs {
		session := map[string]interface{}{
			"workoutLogId": wl.ID,
			"isCompleted":  wl.IsCompleted,
		}
		if w, err := s.store.GetWorkout(wl.WorkoutID); err == nil {
			session["workout"] = w.Name
		}
		if els, err := s.store.GetExerciseLogs(wl.ExerciseLogs); err == nil {
			session["exerciseLogs"] = els
		}
		sessions = append(sessions, session)
	}

	result := map[string]interface{}{
		"date":     date,
		"sessions": sessions,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "gratis://schedule/today",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.store.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	data, err := json.MarshalIndent(exercises, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "gratis://exercises",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
