// ABOUTME: CLI commands for scheduling workouts onto calendar days.
// ABOUTME: Schedule, unschedule, and the day view with completion progress.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/gratis/internal/models"
	"github.com/spf13/cobra"
)

var scheduleDate string

var scheduleCmd = &cobra.Command{
	Use:   "schedule <workout-id>",
	Short: "Schedule a workout on a date",
	Long: `Schedule a workout on a calendar day, creating a session log for it.
Multiple workouts may share a day, each as its own session.

Examples:
  gratis schedule 1
  gratis schedule 1 --date 2026-03-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		date := scheduleDate
		if date == "" {
			date = models.Today()
		}

		wl, err := store.ScheduleWorkout(id, date)
		if err != nil {
			return fmt.Errorf("failed to schedule workout: %w", err)
		}

		color.Green("✓ Scheduled workout #%d on %s", id, wl.Date)
		fmt.Printf("  session %s\n", color.New(color.Faint).Sprintf("#%d", wl.ID))
		return nil
	},
}

var unscheduleCmd = &cobra.Command{
	Use:   "unschedule <session-id>",
	Short: "Remove a scheduled session and its exercise logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteWorkoutLog(id); err != nil {
			return fmt.Errorf("failed to unschedule: %w", err)
		}
		color.Green("✓ Removed session #%d and its exercise logs", id)
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show a day's sessions and progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := models.Today()
		if len(args) == 1 {
			date = args[0]
		}
		if err := models.ValidateDate(date); err != nil {
			return err
		}

		logs, err := store.ListWorkoutLogsByDate(date)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(logs) == 0 {
			fmt.Printf("Nothing scheduled on %s.\n", date)
			return nil
		}

		fmt.Printf("%s\n", color.New(color.Bold).Sprint(date))
		for _, wl := range logs {
			name := fmt.Sprintf("workout #%d (deleted)", wl.WorkoutID)
			if w, err := store.GetWorkout(wl.WorkoutID); err == nil {
				name = w.Name
			}
			fmt.Printf("%s %s %s\n", mark(wl.IsCompleted),
				name, color.New(color.Faint).Sprintf("session #%d", wl.ID))

			els, err := store.GetExerciseLogs(wl.ExerciseLogs)
			if err != nil {
				return fmt.Errorf("failed to resolve exercise logs: %w", err)
			}
			for _, el := range els {
				exName := fmt.Sprintf("exercise #%d (deleted)", el.ExerciseID)
				if e, err := store.GetExercise(el.ExerciseID); err == nil {
					exName = e.Name
				}
				done := 0
				for _, s := range el.SetsCompleted {
					if s {
						done++
					}
				}
				fmt.Printf("  %s %s  %d/%d sets\n", mark(el.IsCompleted), exName, done, len(el.SetsCompleted))
			}
		}
		return nil
	},
}

func mark(done bool) string {
	if done {
		return color.GreenString("✓")
	}
	return color.New(color.Faint).Sprint("·")
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(scheduleCmd, unscheduleCmd, dayCmd)
}
