// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for exercises, workouts, workout_logs, exercise_logs.
package storage

// initSchema creates or updates the database schema.
//
// Cross-entity references are weak (id lists serialized as JSON text, no
// foreign keys), so deletes never fail on dangling references; readers
// filter them instead. AUTOINCREMENT keeps ids monotonic and never reused.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		sets INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight REAL,
		rep_names TEXT,
		set_rest_period_seconds INTEGER,
		rep_rest_period_seconds INTEGER,
		rep_duration_seconds INTEGER
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		exercises TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS workout_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		exercise_logs TEXT NOT NULL DEFAULT '[]',
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS exercise_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		sets_completed TEXT NOT NULL,
		reps_completed_per_set TEXT NOT NULL,
		weight_per_rep TEXT,
		effort INTEGER,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_workout_logs_date ON workout_logs(date);
	CREATE INDEX IF NOT EXISTS idx_exercise_logs_date ON exercise_logs(date);
	CREATE INDEX IF NOT EXISTS idx_exercise_logs_exercise ON exercise_logs(exercise_id, date);
	`

	_, err := d.db.Exec(schema)
	return err
}
