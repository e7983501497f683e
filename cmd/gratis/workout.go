// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Add, list, show, update, and delete ordered exercise groupings.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gratis/internal/models"
	"github.com/harperreed/gratis/internal/storage"
	"github.com/spf13/cobra"
)

var (
	workoutDesc      string
	workoutExercises string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a workout",
	Long: `Add a workout as an ordered list of exercise ids. Order matters; it is
the execution order, and the same exercise may appear more than once.

Examples:
  gratis workout add "Upper Body" --exercises 1,2,3
  gratis workout add "Intervals" --exercises 4,5,4,5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := models.NewWorkout(args[0])
		if workoutDesc != "" {
			w.WithDescription(workoutDesc)
		}
		if workoutExercises != "" {
			ids, err := parseIDList(workoutExercises)
			if err != nil {
				return err
			}
			w.Exercises = ids
		}

		if err := store.CreateWorkout(w); err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		color.Green("✓ Added workout %q", w.Name)
		fmt.Printf("  %s %d exercises\n",
			color.New(color.Faint).Sprintf("#%d", w.ID), len(w.Exercises))
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := store.ListWorkouts()
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		if len(workouts) == 0 {
			fmt.Println("No workouts yet. Add one with 'gratis workout add'.")
			return nil
		}

		for _, w := range workouts {
			fmt.Printf("%s %s  %d exercises\n",
				color.New(color.Faint).Sprintf("#%-3d", w.ID),
				w.Name, len(w.Exercises))
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout and its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		w, err := store.GetWorkout(id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(w.Name), color.New(color.Faint).Sprintf("#%d", w.ID))
		if w.Description != nil {
			fmt.Printf("  %s\n", *w.Description)
		}

		// Deleted exercises drop out of the listing silently.
		exercises, err := store.ResolveExercises(w.Exercises)
		if err != nil {
			return fmt.Errorf("failed to resolve exercises: %w", err)
		}
		for i, e := range exercises {
			fmt.Printf("  %d. %s  %dx%d%s\n", i+1, e.Name, e.Sets, e.Reps, weightSuffix(e.Weight))
		}
		return nil
	},
}

var workoutUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch storage.WorkoutPatch
		if cmd.Flags().Changed("description") {
			patch.Description = &workoutDesc
		}
		if cmd.Flags().Changed("exercises") {
			ids, err := parseIDList(workoutExercises)
			if err != nil {
				return err
			}
			patch.Exercises = &ids
		}

		w, err := store.UpdateWorkout(id, patch)
		if err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}
		color.Green("✓ Updated %q: %d exercises", w.Name, len(w.Exercises))
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteWorkout(id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		color.Green("✓ Deleted workout #%d", id)
		return nil
	},
}

func parseIDList(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := parseID(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutDesc, "description", "", "workout description")
	workoutAddCmd.Flags().StringVar(&workoutExercises, "exercises", "", "comma-separated exercise ids in order")

	workoutUpdateCmd.Flags().StringVar(&workoutDesc, "description", "", "workout description")
	workoutUpdateCmd.Flags().StringVar(&workoutExercises, "exercises", "", "comma-separated exercise ids in order")

	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutShowCmd, workoutUpdateCmd, workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
