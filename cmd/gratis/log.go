// ABOUTME: CLI commands for recording training progress.
// ABOUTME: Set completion, reps, effort, and notes on exercise logs.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/gratis/internal/storage"
	"github.com/spf13/cobra"
)

var logUndo bool

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record training progress",
}

var logSetCmd = &cobra.Command{
	Use:   "set <session-id> <exercise-id> <set>",
	Short: "Mark a set complete",
	Long: `Mark a set of an exercise complete within a session. The exercise log
is created on first touch, fully populated from the exercise. Completing
every set completes the exercise; completing every exercise completes
the session.

Examples:
  gratis log set 1 2 1          # Session 1, exercise 2, first set done
  gratis log set 1 2 1 --undo   # Take it back`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}
		set, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid set number: %s", args[2])
		}

		el, err := store.FindOrCreateExerciseLog(sessionID, exerciseID)
		if err != nil {
			return fmt.Errorf("failed to open exercise log: %w", err)
		}
		if set < 1 || set > len(el.SetsCompleted) {
			return fmt.Errorf("set %d out of range 1-%d", set, len(el.SetsCompleted))
		}

		sets := append([]bool(nil), el.SetsCompleted...)
		sets[set-1] = !logUndo

		updated, err := store.UpdateExerciseLog(el.ID, storage.ExerciseLogPatch{SetsCompleted: &sets})
		if err != nil {
			return fmt.Errorf("failed to record set: %w", err)
		}

		if logUndo {
			color.Yellow("↺ Set %d unmarked", set)
		} else {
			color.Green("✓ Set %d done", set)
		}
		if updated.IsCompleted {
			wl, err := store.GetWorkoutLog(sessionID)
			if err == nil && wl.IsCompleted {
				color.Green("✓ Session complete!")
			} else {
				color.Green("✓ Exercise complete")
			}
		}
		return nil
	},
}

var logRepsCmd = &cobra.Command{
	Use:   "reps <session-id> <exercise-id> <set> <count>",
	Short: "Record actual reps for a set",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}
		set, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid set number: %s", args[2])
		}
		count, err := strconv.Atoi(args[3])
		if err != nil || count < 0 {
			return fmt.Errorf("invalid rep count: %s", args[3])
		}

		el, err := store.FindOrCreateExerciseLog(sessionID, exerciseID)
		if err != nil {
			return fmt.Errorf("failed to open exercise log: %w", err)
		}
		if set < 1 || set > len(el.RepsCompletedPerSet) {
			return fmt.Errorf("set %d out of range 1-%d", set, len(el.RepsCompletedPerSet))
		}

		reps := append([]int(nil), el.RepsCompletedPerSet...)
		reps[set-1] = count

		if _, err := store.UpdateExerciseLog(el.ID, storage.ExerciseLogPatch{RepsCompletedPerSet: &reps}); err != nil {
			return fmt.Errorf("failed to record reps: %w", err)
		}
		color.Green("✓ Recorded %d reps for set %d", count, set)
		return nil
	},
}

var logEffortCmd = &cobra.Command{
	Use:   "effort <session-id> <exercise-id> <1-10>",
	Short: "Record perceived effort",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}
		effort, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid effort: %s", args[2])
		}

		el, err := store.FindOrCreateExerciseLog(sessionID, exerciseID)
		if err != nil {
			return fmt.Errorf("failed to open exercise log: %w", err)
		}
		if _, err := store.UpdateExerciseLog(el.ID, storage.ExerciseLogPatch{Effort: &effort}); err != nil {
			return fmt.Errorf("failed to record effort: %w", err)
		}
		color.Green("✓ Effort %d/10 recorded", effort)
		return nil
	},
}

var logNoteCmd = &cobra.Command{
	Use:   "note <session-id> <exercise-id> <text>",
	Short: "Attach a note to an exercise log",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}

		el, err := store.FindOrCreateExerciseLog(sessionID, exerciseID)
		if err != nil {
			return fmt.Errorf("failed to open exercise log: %w", err)
		}
		if _, err := store.UpdateExerciseLog(el.ID, storage.ExerciseLogPatch{Notes: &args[2]}); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		color.Green("✓ Note saved")
		return nil
	},
}

var logHistoryCmd = &cobra.Command{
	Use:   "history <exercise-id>",
	Short: "Show an exercise's training history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseID, err := parseID(args[0])
		if err != nil {
			return err
		}

		logs, err := store.ListExerciseLogsByExercise(exerciseID)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
		if len(logs) == 0 {
			fmt.Println("No history for this exercise yet.")
			return nil
		}

		for _, el := range logs {
			done := 0
			for _, s := range el.SetsCompleted {
				if s {
					done++
				}
			}
			effort := ""
			if el.Effort != nil {
				effort = fmt.Sprintf("  effort %d/10", *el.Effort)
			}
			fmt.Printf("%s %s  %d/%d sets%s\n", mark(el.IsCompleted), el.Date, done, len(el.SetsCompleted), effort)
		}
		return nil
	},
}

func init() {
	logSetCmd.Flags().BoolVar(&logUndo, "undo", false, "unmark the set instead")
	logCmd.AddCommand(logSetCmd, logRepsCmd, logEffortCmd, logNoteCmd, logHistoryCmd)
	rootCmd.AddCommand(logCmd)
}
