package engine

import (
	"context"

	"github.com/Rizwanrichu87/studio/internal/stats"
)

// Achievement represents a badge the user can unlock.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// AchievementChecker calculates which achievements are unlocked.
type AchievementChecker struct {
	habits  []stats.Habit
	summary stats.Summary
}

func NewAchievementChecker(habits []stats.Habit, summary stats.Summary) *AchievementChecker {
	return &AchievementChecker{habits: habits, summary: summary}
}

// GetAchievements returns all achievements with their unlocked status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		{ID: "first_step", Name: "First Step", Description: "Complete your first habit.", Icon: "Award",
			Unlocked: c.summary.TotalCompletions >= 1},
		{ID: "consistency_king", Name: "Consistency King", Description: "Complete a habit 7 days in a row.", Icon: "Trophy",
			Unlocked: c.summary.LongestStreak >= 7},
		{ID: "on_fire", Name: "On Fire!", Description: "Maintain a 14-day streak.", Icon: "TrendingUp",
			Unlocked: c.summary.CurrentStreak >= 14},
		{ID: "perfect_week", Name: "Perfect Week", Description: "Complete all daily habits for 7 days.", Icon: "CalendarDays",
			Unlocked: c.perfectWeek()},
		{ID: "habit_machine", Name: "Habit Machine", Description: "Complete 50 habit tasks in total.", Icon: "BrainCircuit",
			Unlocked: c.summary.TotalCompletions >= 50},
		{ID: "newbie_no_more", Name: "Newbie No More", Description: "Add 5 different habits.", Icon: "Target",
			Unlocked: len(c.habits) >= 5},
	}
}

// perfectWeek holds when every daily habit was done on each of the seven
// days ending at the summary date.
func (c *AchievementChecker) perfectWeek() bool {
	var daily []stats.Habit
	for _, h := range c.habits {
		if h.Frequency == stats.FrequencyDaily {
			daily = append(daily, h)
		}
	}
	if len(daily) == 0 {
		return false
	}
	for i := 0; i < 7; i++ {
		d := c.summary.Date.AddDays(-i)
		for _, h := range daily {
			if !stats.IsDoneOnDate(h, d) {
				return false
			}
		}
	}
	return true
}

// CountUnlocked returns how many achievements have been unlocked.
func (c *AchievementChecker) CountUnlocked() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Unlocked {
			count++
		}
	}
	return count
}

// Achievements is a convenience wrapper that loads habits and checks them for day.
func (s *Service) Achievements(ctx context.Context, day stats.Date) ([]Achievement, error) {
	habits, err := s.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(habits, day, s.window)
	return NewAchievementChecker(habits, summary).GetAchievements(), nil
}
