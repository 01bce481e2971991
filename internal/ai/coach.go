package ai

import (
	"context"
	"errors"
	"math"
	"strings"
)

// ErrNoGoals is returned when a goal-based request has no goals to work from.
var ErrNoGoals = errors.New("describe your goals before requesting recommendations")

type MotivationInput struct {
	HabitsCompleted       int     `json:"habitsCompleted"`
	CurrentStreak         int     `json:"currentStreak"`
	LongestStreak         int     `json:"longestStreak"`
	MissedDays            int     `json:"missedDays"`
	AverageCompletionRate float64 `json:"averageCompletionRate"`
}

type Motivation struct {
	MotivationalTip string `json:"motivationalTip"`
	Insight         string `json:"insight"`
}

// GoalInput is shared by the recommendation and prediction requests.
type GoalInput struct {
	HabitTrackingData string `json:"habitTrackingData"`
	UserGoals         string `json:"userGoals"`
}

type Recommendations struct {
	Recommendations       string `json:"recommendations"`
	PatternDetection      string `json:"patternDetection"`
	OptimalTimeSuggestion string `json:"optimalTimeSuggestion"`
}

type Prediction struct {
	SuccessProbability float64 `json:"successProbability"`
	PredictionReason   string  `json:"predictionReason"`
}

type CollisionInput struct {
	Habits string `json:"habits"`
}

type Collision struct {
	HabitA string `json:"habitA"`
	HabitB string `json:"habitB"`
	Reason string `json:"reason"`
}

type Collisions struct {
	Collisions []Collision `json:"collisions"`
}

// Coach wraps a Generator with the four insight requests.
type Coach struct {
	gen Generator
}

func NewCoach(gen Generator) *Coach {
	return &Coach{gen: gen}
}

func (c *Coach) Motivate(ctx context.Context, in MotivationInput) (*Motivation, error) {
	var out Motivation
	if err := c.gen.Generate(ctx, MotivationTemplate, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Coach) Recommend(ctx context.Context, in GoalInput) (*Recommendations, error) {
	if strings.TrimSpace(in.UserGoals) == "" {
		return nil, ErrNoGoals
	}
	var out Recommendations
	if err := c.gen.Generate(ctx, RecommendationTemplate, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Predict returns the model's success estimate, clamped to 0-100.
func (c *Coach) Predict(ctx context.Context, in GoalInput) (*Prediction, error) {
	if strings.TrimSpace(in.UserGoals) == "" {
		return nil, ErrNoGoals
	}
	var out Prediction
	if err := c.gen.Generate(ctx, PredictionTemplate, in, &out); err != nil {
		return nil, err
	}
	out.SuccessProbability = math.Max(0, math.Min(100, out.SuccessProbability))
	return &out, nil
}

func (c *Coach) DetectCollisions(ctx context.Context, in CollisionInput) (*Collisions, error) {
	var out Collisions
	if err := c.gen.Generate(ctx, CollisionTemplate, in, &out); err != nil {
		return nil, err
	}
	if out.Collisions == nil {
		out.Collisions = []Collision{}
	}
	return &out, nil
}
