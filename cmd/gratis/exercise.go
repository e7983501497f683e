// ABOUTME: CLI commands for managing the exercise catalog.
// ABOUTME: Add, list, show, update, and delete exercises.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gratis/internal/models"
	"github.com/harperreed/gratis/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exerciseDesc     string
	exerciseSets     int
	exerciseReps     int
	exerciseWeight   float64
	exerciseRepNames string
	exerciseSetRest  int
	exerciseRepRest  int
	exerciseDuration int
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Long: `Add an exercise to the catalog.

Examples:
  gratis exercise add "Push-ups" --sets 3 --reps 12
  gratis exercise add "Squats" --sets 5 --reps 5 --weight 80
  gratis exercise add "Side Plank" --reps 2 --rep-names "Left,Right" --duration 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := models.NewExercise(args[0])
		if exerciseDesc != "" {
			e.WithDescription(exerciseDesc)
		}
		if exerciseSets > 0 {
			e.WithSets(exerciseSets)
		}
		if exerciseReps > 0 {
			e.WithReps(exerciseReps)
		}
		if exerciseWeight > 0 {
			e.WithWeight(exerciseWeight)
		}
		if exerciseRepNames != "" {
			e.WithRepNames(strings.Split(exerciseRepNames, ","))
		}
		if cmd.Flags().Changed("set-rest") {
			e.WithSetRest(exerciseSetRest)
		}
		if cmd.Flags().Changed("rep-rest") {
			e.WithRepRest(exerciseRepRest)
		}
		if exerciseDuration > 0 {
			e.WithRepDuration(exerciseDuration)
		}

		if err := store.CreateExercise(e); err != nil {
			return fmt.Errorf("failed to create exercise: %w", err)
		}

		color.Green("✓ Added exercise %q", e.Name)
		fmt.Printf("  %s %dx%d%s\n",
			color.New(color.Faint).Sprintf("#%d", e.ID),
			e.Sets, e.Reps, weightSuffix(e.Weight))
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		if len(exercises) == 0 {
			fmt.Println("No exercises yet. Add one with 'gratis exercise add'.")
			return nil
		}

		for _, e := range exercises {
			timed := ""
			if e.Timed() {
				timed = color.CyanString(" (timed)")
			}
			fmt.Printf("%s %s  %dx%d%s%s\n",
				color.New(color.Faint).Sprintf("#%-3d", e.ID),
				e.Name, e.Sets, e.Reps, weightSuffix(e.Weight), timed)
		}
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show exercise details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := store.GetExercise(id)
		if err != nil {
			return fmt.Errorf("failed to get exercise: %w", err)
		}

		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(e.Name), color.New(color.Faint).Sprintf("#%d", e.ID))
		if e.Description != nil {
			fmt.Printf("  %s\n", *e.Description)
		}
		fmt.Printf("  Sets: %d  Reps: %d%s\n", e.Sets, e.Reps, weightSuffix(e.Weight))
		if len(e.RepNames) > 0 {
			fmt.Printf("  Rep names: %s\n", strings.Join(e.RepNames, ", "))
		}
		if e.SetRestPeriodSeconds != nil {
			fmt.Printf("  Set rest: %ds\n", *e.SetRestPeriodSeconds)
		}
		if e.RepRestPeriodSeconds != nil {
			fmt.Printf("  Rep rest: %ds\n", *e.RepRestPeriodSeconds)
		}
		if e.RepDurationSeconds != nil {
			fmt.Printf("  Rep duration: %ds (timed)\n", *e.RepDurationSeconds)
		}
		return nil
	},
}

var exerciseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch storage.ExercisePatch
		if cmd.Flags().Changed("description") {
			patch.Description = &exerciseDesc
		}
		if cmd.Flags().Changed("sets") {
			patch.Sets = &exerciseSets
		}
		if cmd.Flags().Changed("reps") {
			patch.Reps = &exerciseReps
		}
		if cmd.Flags().Changed("weight") {
			patch.Weight = &exerciseWeight
		}

		e, err := store.UpdateExercise(id, patch)
		if err != nil {
			return fmt.Errorf("failed to update exercise: %w", err)
		}
		color.Green("✓ Updated %q: %dx%d%s", e.Name, e.Sets, e.Reps, weightSuffix(e.Weight))
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteExercise(id); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		color.Green("✓ Deleted exercise #%d", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func weightSuffix(weight *float64) string {
	if weight == nil {
		return ""
	}
	return fmt.Sprintf(" @ %g", *weight)
}

func init() {
	exerciseAddCmd.Flags().StringVar(&exerciseDesc, "description", "", "exercise description")
	exerciseAddCmd.Flags().IntVar(&exerciseSets, "sets", 0, "number of sets")
	exerciseAddCmd.Flags().IntVar(&exerciseReps, "reps", 0, "reps per set")
	exerciseAddCmd.Flags().Float64Var(&exerciseWeight, "weight", 0, "working weight")
	exerciseAddCmd.Flags().StringVar(&exerciseRepNames, "rep-names", "", "comma-separated rep names, cycled by index")
	exerciseAddCmd.Flags().IntVar(&exerciseSetRest, "set-rest", 0, "rest between sets (seconds)")
	exerciseAddCmd.Flags().IntVar(&exerciseRepRest, "rep-rest", 0, "rest between reps (seconds)")
	exerciseAddCmd.Flags().IntVar(&exerciseDuration, "duration", 0, "rep duration for timed exercises (seconds)")

	exerciseUpdateCmd.Flags().StringVar(&exerciseDesc, "description", "", "exercise description")
	exerciseUpdateCmd.Flags().IntVar(&exerciseSets, "sets", 0, "number of sets")
	exerciseUpdateCmd.Flags().IntVar(&exerciseReps, "reps", 0, "reps per set")
	exerciseUpdateCmd.Flags().Float64Var(&exerciseWeight, "weight", 0, "working weight")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseShowCmd, exerciseUpdateCmd, exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
