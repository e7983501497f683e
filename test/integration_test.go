// ABOUTME: Integration tests for gratis CLI.
// ABOUTME: Builds the binary and runs a full training workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	gratisBinary := filepath.Join(projectRoot, "gratis-test-bin")

	buildCmd := exec.Command("go", "build", "-o", gratisBinary, "./cmd/gratis")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(gratisBinary)

	// Isolate config and data in a temp home
	tmpDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(gratisBinary, args...)
		cmd.Env = append(os.Environ(),
			"HOME="+tmpDir,
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, ".config"),
			"XDG_DATA_HOME="+filepath.Join(tmpDir, ".local", "share"),
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Define exercises
	output, err := run("exercise", "add", "Push-ups", "--sets", "2", "--reps", "12")
	if err != nil {
		t.Fatalf("Failed to add exercise: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added exercise") {
		t.Errorf("Expected 'Added exercise' in output, got: %s", output)
	}

	output, err = run("exercise", "add", "Squats", "--sets", "2", "--reps", "8", "--weight", "60")
	if err != nil {
		t.Fatalf("Failed to add exercise: %v\n%s", err, output)
	}

	output, err = run("exercise", "list")
	if err != nil {
		t.Fatalf("Failed to list exercises: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Push-ups") || !strings.Contains(output, "Squats") {
		t.Errorf("Expected both exercises listed, got: %s", output)
	}

	// Group into a workout and schedule it
	output, err = run("workout", "add", "Full Body", "--exercises", "1,2")
	if err != nil {
		t.Fatalf("Failed to add workout: %v\n%s", err, output)
	}

	output, err = run("schedule", "1", "--date", "2026-07-01")
	if err != nil {
		t.Fatalf("Failed to schedule: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Scheduled workout") {
		t.Errorf("Expected schedule confirmation, got: %s", output)
	}

	// Complete every set of both exercises
	for _, args := range [][]string{
		{"log", "set", "1", "1", "1"},
		{"log", "set", "1", "1", "2"},
		{"log", "set", "1", "2", "1"},
		{"log", "set", "1", "2", "2"},
	} {
		output, err = run(args...)
		if err != nil {
			t.Fatalf("Failed to log set %v: %v\n%s", args, err, output)
		}
	}
	if !strings.Contains(output, "Session complete") {
		t.Errorf("Expected session completion after final set, got: %s", output)
	}

	// Day view shows completed session
	output, err = run("day", "2026-07-01")
	if err != nil {
		t.Fatalf("Failed to show day: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Full Body") || !strings.Contains(output, "2/2 sets") {
		t.Errorf("Expected completed day view, got: %s", output)
	}

	// Export and destructively re-import
	backupPath := filepath.Join(tmpDir, "backup.json")
	output, err = run("export", "json", "-o", backupPath)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}

	output, err = run("import", backupPath, "--force")
	if err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}

	output, err = run("day", "2026-07-01")
	if err != nil {
		t.Fatalf("Failed to show day after restore: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Full Body") {
		t.Errorf("Expected data to survive round trip, got: %s", output)
	}

	// Import without confirmation is refused
	output, err = run("import", backupPath)
	if err == nil {
		t.Errorf("Expected refusal without --force/--merge, got: %s", output)
	}
}
