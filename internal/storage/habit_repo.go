package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type HabitRepo struct {
	db DBTX
}

func NewHabitRepo(db DBTX) *HabitRepo {
	return &HabitRepo{db: db}
}

type HabitInsert struct {
	ID                string
	Name              string
	Frequency         string
	TargetCompletions int
	ReminderTime      *string
	Icon              string
	CreatedAt         time.Time
}

func (r *HabitRepo) Insert(ctx context.Context, in HabitInsert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (
			id, name, frequency, target_completions, reminder_time, icon,
			sort_order, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM habits), ?, ?)
	`, in.ID, in.Name, in.Frequency, in.TargetCompletions, in.ReminderTime, in.Icon, in.CreatedAt, in.CreatedAt)
	if err != nil {
		return fmt.Errorf("habit insert: %w", err)
	}
	return nil
}

const habitColumns = `id, name, frequency, target_completions, reminder_time, icon, sort_order, created_at, updated_at`

func (r *HabitRepo) Get(ctx context.Context, id string) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabitRow(row)
}

func (r *HabitRepo) ListAll(ctx context.Context) ([]Habit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+habitColumns+` FROM habits ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		h, err := scanHabitRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit list rows: %w", err)
	}
	return out, nil
}

type HabitUpdate struct {
	Name              string
	Frequency         string
	TargetCompletions int
	ReminderTime      *string
	Icon              string
	UpdatedAt         time.Time
}

// Update rewrites the editable fields of a habit. It reports whether a row matched.
func (r *HabitRepo) Update(ctx context.Context, id string, in HabitUpdate) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE habits
		SET name = ?, frequency = ?, target_completions = ?, reminder_time = ?, icon = ?, updated_at = ?
		WHERE id = ?
	`, in.Name, in.Frequency, in.TargetCompletions, in.ReminderTime, in.Icon, in.UpdatedAt, id)
	if err != nil {
		return false, fmt.Errorf("habit update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("habit update rows: %w", err)
	}
	return n > 0, nil
}

func (r *HabitRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("habit delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("habit delete rows: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabitRow(row scanner) (*Habit, error) {
	var (
		h        Habit
		reminder sql.NullString
		order    sql.NullInt64
		created  sql.NullTime
		updated  sql.NullTime
	)
	if err := row.Scan(&h.ID, &h.Name, &h.Frequency, &h.TargetCompletions, &reminder, &h.Icon, &order, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("habit scan: %w", err)
	}
	if reminder.Valid && reminder.String != "" {
		v := reminder.String
		h.ReminderTime = &v
	}
	h.SortOrder = int(order.Int64)
	h.CreatedAt = created.Time
	h.UpdatedAt = updated.Time
	return &h, nil
}
