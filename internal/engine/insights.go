package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Rizwanrichu87/studio/internal/ai"
	"github.com/Rizwanrichu87/studio/internal/stats"
)

// Insights feeds tracked data into the AI coach.
type Insights struct {
	svc   *Service
	coach *ai.Coach
}

func NewInsights(svc *Service, coach *ai.Coach) *Insights {
	return &Insights{svc: svc, coach: coach}
}

type trackedHabit struct {
	Name          string `json:"name"`
	Frequency     string `json:"frequency"`
	Target        int    `json:"targetCompletions"`
	ReminderTime  string `json:"reminderTime,omitempty"`
	Completions   int    `json:"completions"`
	DaysDone      int    `json:"daysDone"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	LastCompleted string `json:"lastCompleted,omitempty"`
}

// trackingData summarizes each habit as a JSON document for the prompts.
func trackingData(habits []stats.Habit, day stats.Date) (string, error) {
	out := make([]trackedHabit, 0, len(habits))
	for _, h := range habits {
		one := []stats.Habit{h}
		th := trackedHabit{
			Name:          h.Name,
			Frequency:     string(h.Frequency),
			Target:        h.Target(),
			ReminderTime:  h.ReminderTime,
			Completions:   stats.TotalCompletions(one),
			CurrentStreak: stats.CurrentStreak(one, day),
			LongestStreak: stats.LongestStreak(one),
		}
		dates := h.Completions.Dates()
		for _, d := range dates {
			if stats.IsDoneOnDate(h, d) {
				th.DaysDone++
			}
		}
		if len(dates) > 0 {
			th.LastCompleted = dates[len(dates)-1].String()
		}
		out = append(out, th)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal tracking data: %w", err)
	}
	return string(b), nil
}

func (i *Insights) Motivate(ctx context.Context, day stats.Date) (*ai.Motivation, error) {
	habits, err := i.svc.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	sum := stats.Summarize(habits, day, i.svc.window)
	return i.coach.Motivate(ctx, ai.MotivationInput{
		HabitsCompleted:       sum.TotalCompletions,
		CurrentStreak:         sum.CurrentStreak,
		LongestStreak:         sum.LongestStreak,
		MissedDays:            sum.MissedDays,
		AverageCompletionRate: sum.CompletionRate,
	})
}

func (i *Insights) Recommend(ctx context.Context, day stats.Date, goals string) (*ai.Recommendations, error) {
	in, err := i.goalInput(ctx, day, goals)
	if err != nil {
		return nil, err
	}
	return i.coach.Recommend(ctx, in)
}

func (i *Insights) Predict(ctx context.Context, day stats.Date, goals string) (*ai.Prediction, error) {
	in, err := i.goalInput(ctx, day, goals)
	if err != nil {
		return nil, err
	}
	return i.coach.Predict(ctx, in)
}

func (i *Insights) DetectCollisions(ctx context.Context, day stats.Date) (*ai.Collisions, error) {
	habits, err := i.svc.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	data, err := trackingData(habits, day)
	if err != nil {
		return nil, err
	}
	return i.coach.DetectCollisions(ctx, ai.CollisionInput{Habits: data})
}

func (i *Insights) goalInput(ctx context.Context, day stats.Date, goals string) (ai.GoalInput, error) {
	habits, err := i.svc.ListHabits(ctx)
	if err != nil {
		return ai.GoalInput{}, err
	}
	data, err := trackingData(habits, day)
	if err != nil {
		return ai.GoalInput{}, err
	}
	return ai.GoalInput{HabitTrackingData: data, UserGoals: goals}, nil
}
