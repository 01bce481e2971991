package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type CompletionRepo struct {
	db DBTX
}

func NewCompletionRepo(db DBTX) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// Count returns the completions recorded for habitID on day, 0 when there is no row.
func (r *CompletionRepo) Count(ctx context.Context, habitID string, day string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT count FROM habit_completions WHERE habit_id = ? AND day = ?`, habitID, day)
	var n int
	if err := row.Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}

// Set stores count for habitID on day. A count of zero or less deletes the row.
func (r *CompletionRepo) Set(ctx context.Context, habitID string, day string, count int) error {
	if count <= 0 {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM habit_completions WHERE habit_id = ? AND day = ?`, habitID, day); err != nil {
			return fmt.Errorf("completion delete: %w", err)
		}
		return nil
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_completions (habit_id, day, count) VALUES (?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET count = excluded.count
	`, habitID, day, count)
	if err != nil {
		return fmt.Errorf("completion upsert: %w", err)
	}
	return nil
}

func (r *CompletionRepo) ListByHabit(ctx context.Context, habitID string) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, count
		FROM habit_completions
		WHERE habit_id = ?
		ORDER BY day ASC
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	return scanCompletions(rows)
}

// ListAll returns every ledger row grouped by habit ID.
func (r *CompletionRepo) ListAll(ctx context.Context) (map[string][]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT habit_id, day, count FROM habit_completions ORDER BY habit_id, day`)
	if err != nil {
		return nil, fmt.Errorf("completion list all: %w", err)
	}
	all, err := scanCompletions(rows)
	if err != nil {
		return nil, err
	}
	out := map[string][]Completion{}
	for _, c := range all {
		out[c.HabitID] = append(out[c.HabitID], c)
	}
	return out, nil
}

func (r *CompletionRepo) DeleteByHabit(ctx context.Context, habitID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habit_completions WHERE habit_id = ?`, habitID); err != nil {
		return fmt.Errorf("completion delete by habit: %w", err)
	}
	return nil
}

func scanCompletions(rows *sql.Rows) ([]Completion, error) {
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.HabitID, &c.Day, &c.Count); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}
