package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS missions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			duration_days INTEGER NOT NULL,
			daily_point_target INTEGER NOT NULL,
			start_date TEXT NOT NULL,
			daily_habits TEXT,
			penalty_type TEXT NOT NULL DEFAULT 'restart',
			penalty_detail TEXT,
			buffer_days INTEGER NOT NULL DEFAULT 0,
			frequency TEXT NOT NULL DEFAULT 'daily',
			scheduled_weekdays TEXT,

			today_score INTEGER NOT NULL DEFAULT 0,
			score_date TEXT NOT NULL DEFAULT '',
			pending_date TEXT,
			pending_mercy INTEGER NOT NULL DEFAULT 0,

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS mission_tasks (
			mission_id TEXT NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'high',
			status TEXT NOT NULL DEFAULT 'pending',
			PRIMARY KEY (mission_id, id),
			FOREIGN KEY(mission_id) REFERENCES missions(id)
		);`,
		// One row per evaluated date; absence means "not evaluated yet".
		`CREATE TABLE IF NOT EXISTS mission_history (
			mission_id TEXT NOT NULL,
			date TEXT NOT NULL,
			status TEXT NOT NULL,
			PRIMARY KEY (mission_id, date),
			FOREIGN KEY(mission_id) REFERENCES missions(id)
		);`,
		// Append-only completion audit trail.
		`CREATE TABLE IF NOT EXISTS mission_daily_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mission_id TEXT NOT NULL,
			date TEXT NOT NULL,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			points INTEGER NOT NULL,
			completed_at DATETIME NOT NULL,
			priority TEXT NOT NULL DEFAULT 'high',
			FOREIGN KEY(mission_id) REFERENCES missions(id)
		);`,
		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS tap_targets (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			target INTEGER NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			total_time_ms INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_mission_tasks_position ON mission_tasks(mission_id, position);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_mission_daily_log_seq ON mission_daily_log(mission_id, date, seq);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE missions ADD COLUMN updated_at DATETIME;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
