package engine

import (
	"context"

	"github.com/Rizwanrichu87/studio/internal/stats"
)

// HabitRow is one habit as shown on the day's checklist.
type HabitRow struct {
	Habit  stats.Habit
	Count  int
	Target int
	Done   bool
}

type Dashboard struct {
	Summary      stats.Summary
	Habits       []HabitRow
	Achievements []Achievement
	Unlocked     int
}

// Dashboard computes every statistic shown for the reference day.
func (s *Service) Dashboard(ctx context.Context, day stats.Date) (*Dashboard, error) {
	habits, err := s.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	due := stats.DueHabits(habits, day)
	rows := make([]HabitRow, 0, len(due))
	for _, h := range due {
		rows = append(rows, HabitRow{
			Habit:  h,
			Count:  h.Count(day),
			Target: h.Target(),
			Done:   stats.IsDoneOnDate(h, day),
		})
	}

	summary := stats.Summarize(habits, day, s.window)
	checker := NewAchievementChecker(habits, summary)
	return &Dashboard{
		Summary:      summary,
		Habits:       rows,
		Achievements: checker.GetAchievements(),
		Unlocked:     checker.CountUnlocked(),
	}, nil
}

// Month returns the per-habit streak matrix for the month containing day.
func (s *Service) Month(ctx context.Context, day stats.Date) ([]stats.MonthDay, error) {
	habits, err := s.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	return stats.MonthlyStreakMatrix(habits, day), nil
}
