package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			frequency TEXT NOT NULL DEFAULT 'daily',
			target_completions INTEGER NOT NULL DEFAULT 1,
			reminder_time TEXT,
			icon TEXT NOT NULL DEFAULT 'Target',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// One row per habit per day; the row is deleted when the count returns to zero.
		`CREATE TABLE IF NOT EXISTS habit_completions (
			habit_id TEXT NOT NULL,
			day TEXT NOT NULL,
			count INTEGER NOT NULL CHECK (count > 0),
			PRIMARY KEY (habit_id, day),
			FOREIGN KEY(habit_id) REFERENCES habits(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_habit_completions_day ON habit_completions(day);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release.
	alterStmts := []string{
		`ALTER TABLE habits ADD COLUMN sort_order INTEGER DEFAULT 0;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
