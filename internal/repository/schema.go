package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// SchemaManager owns the database lifecycle: idempotent table creation,
// destructive replacement of the legacy layout and defensive addition of
// columns introduced after the first release.
type SchemaManager struct {
	conn PgConnection
}

func NewSchemaManager(cfg DBConfig) *SchemaManager {
	return &SchemaManager{
		conn: newPool("schemaManager", cfg),
	}
}

func NewSchemaManagerWithConn(conn PgConnection) *SchemaManager {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for schemaManager: " + err.Error())
	}
	return &SchemaManager{
		conn: conn,
	}
}

var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		age INT,
		weight REAL,
		height REAL,
		sex VARCHAR(10),
		role VARCHAR(20) DEFAULT 'USER',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		daily_step_goal INT DEFAULT 0,
		weekly_workout_goal INT DEFAULT 0,
		weight_target REAL DEFAULT 0.0
	);`,
	`CREATE TABLE IF NOT EXISTS workouts (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		type VARCHAR(50),
		duration_minutes INT,
		calories_burned INT,
		notes TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS steps (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		steps INT DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS meals (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		meal_type VARCHAR(50),
		food_item VARCHAR(100),
		calories INT
	);`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workout_type VARCHAR(50),
		day_of_week VARCHAR(20),
		time TIME NOT NULL,
		is_active BOOLEAN DEFAULT TRUE
	);`,
}

// The steps upsert relies on this index for its ON CONFLICT target; a
// separate statement also covers databases created before the index
// existed.
var createIndexStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS steps_user_date_key ON steps (user_id, date);`,
}

// EnsureDatabase creates the target database through a short-lived
// server-level connection. Any failure (already exists, missing
// permission) is logged and swallowed; a truly absent database surfaces
// on the first real connection attempt instead.
func EnsureDatabase(ctx context.Context, cfg *PGCfg) {
	conn, err := pgx.Connect(ctx, cfg.ServerConnString())
	if err != nil {
		slog.Warn("could not reach server to ensure database", slog.String("error", err.Error()))
		return
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %q;`, cfg.DB))
	if err != nil {
		slog.Warn("could not create database (might already exist or permission denied)",
			slog.String("db", cfg.DB),
			slog.String("error", err.Error()),
		)
		return
	}
	slog.Info("database created", slog.String("db", cfg.DB))
}

// Bootstrap runs the full schema lifecycle. Safe to call on every
// startup; a second run against a current database is a no-op.
func (sm *SchemaManager) Bootstrap(ctx context.Context) error {
	if err := sm.MigrateLegacyIfNeeded(ctx); err != nil {
		return err
	}
	if err := sm.EnsureSchema(ctx); err != nil {
		return err
	}
	return sm.EnsureGoalColumns(ctx)
}

// EnsureSchema creates the five tables and their supporting indexes if
// absent. Idempotent.
func (sm *SchemaManager) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createTableStatements {
		if _, err := sm.conn.Exec(ctx, stmt); err != nil {
			return errors.New("creating tables error: " + err.Error())
		}
	}
	for _, stmt := range createIndexStatements {
		if _, err := sm.conn.Exec(ctx, stmt); err != nil {
			return errors.New("creating indexes error: " + err.Error())
		}
	}
	return nil
}

// MigrateLegacyIfNeeded inspects the users table columns. The legacy
// layout (a username column, no name column) is replaced destructively:
// dependent tables are dropped first, users last, and EnsureSchema
// recreates everything empty.
func (sm *SchemaManager) MigrateLegacyIfNeeded(ctx context.Context) error {
	exists, err := sm.tableExists(ctx, "users")
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	hasName, err := sm.columnExists(ctx, "users", "name")
	if err != nil {
		return err
	}
	hasUsername, err := sm.columnExists(ctx, "users", "username")
	if err != nil {
		return err
	}
	if hasName && !hasUsername {
		return nil
	}
	slog.Warn("detected legacy users table layout, dropping tables to recreate")
	for _, table := range []string{"reminders", "meals", "steps", "workouts", "users"} {
		if _, err := sm.conn.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s;`, table)); err != nil {
			return errors.New("dropping legacy table " + table + " error: " + err.Error())
		}
	}
	return nil
}

// EnsureGoalColumns backfills columns added after the first release.
// Presence is checked against the catalog explicitly instead of
// treating an ALTER failure as the already-applied signal.
func (sm *SchemaManager) EnsureGoalColumns(ctx context.Context) error {
	backfills := []struct {
		table  string
		column string
		ddl    string
	}{
		{"users", "daily_step_goal", `ALTER TABLE users ADD COLUMN daily_step_goal INT DEFAULT 0;`},
		{"users", "weekly_workout_goal", `ALTER TABLE users ADD COLUMN weekly_workout_goal INT DEFAULT 0;`},
		{"users", "weight_target", `ALTER TABLE users ADD COLUMN weight_target REAL DEFAULT 0.0;`},
		{"reminders", "day_of_week", `ALTER TABLE reminders ADD COLUMN day_of_week VARCHAR(20);`},
	}
	for _, b := range backfills {
		exists, err := sm.columnExists(ctx, b.table, b.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := sm.conn.Exec(ctx, b.ddl); err != nil {
			return errors.New("adding column " + b.table + "." + b.column + " error: " + err.Error())
		}
		slog.Info("added column", slog.String("table", b.table), slog.String("column", b.column))
	}
	return nil
}

func (sm *SchemaManager) tableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	row := sm.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1);`,
		table,
	)
	if err := row.Scan(&exists); err != nil {
		return false, errors.New("inspecting table existence error: " + err.Error())
	}
	return exists, nil
}

func (sm *SchemaManager) columnExists(ctx context.Context, table, column string) (bool, error) {
	var exists bool
	row := sm.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 AND column_name = $2);`,
		table,
		column,
	)
	if err := row.Scan(&exists); err != nil {
		return false, errors.New("inspecting column existence error: " + err.Error())
	}
	return exists, nil
}
