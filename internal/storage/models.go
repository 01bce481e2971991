package storage

import "time"

type Habit struct {
	ID                string
	Name              string
	Frequency         string
	TargetCompletions int
	ReminderTime      *string
	Icon              string
	SortOrder         int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Completion is one ledger row: how many times a habit was completed on a day.
type Completion struct {
	HabitID string
	Day     string // YYYY-MM-DD
	Count   int
}
