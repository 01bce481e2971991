package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator renders the prompt like the real generator and answers with canned JSON.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, tmpl Template, input any, out any) error {
	prompt, err := tmpl.Render(input)
	if err != nil {
		return err
	}
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return f.err
	}
	return decodeOutput(tmpl.Name, f.reply, out)
}

func TestMotivateRendersStatsIntoPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: `{"motivationalTip":"Keep going","insight":"Mondays are strong"}`}
	coach := NewCoach(gen)

	got, err := coach.Motivate(context.Background(), MotivationInput{
		HabitsCompleted:       42,
		CurrentStreak:         3,
		LongestStreak:         9,
		MissedDays:            2,
		AverageCompletionRate: 71.4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Keep going", got.MotivationalTip)
	assert.Equal(t, "Mondays are strong", got.Insight)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Habits Completed: 42")
	assert.Contains(t, gen.prompts[0], "Longest Streak: 9")
	assert.Contains(t, gen.prompts[0], "Average Completion Rate: 71%")
}

func TestRecommendRequiresGoals(t *testing.T) {
	gen := &fakeGenerator{}
	_, err := NewCoach(gen).Recommend(context.Background(), GoalInput{HabitTrackingData: "[]", UserGoals: "  "})
	assert.ErrorIs(t, err, ErrNoGoals)
	assert.Empty(t, gen.prompts, "generator must not be called without goals")
}

func TestPredictClampsProbability(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"successProbability\": 140, \"predictionReason\": \"very consistent\"}\n```"}
	got, err := NewCoach(gen).Predict(context.Background(), GoalInput{HabitTrackingData: "[]", UserGoals: "run a marathon"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.SuccessProbability)
	assert.Equal(t, "very consistent", got.PredictionReason)
}

func TestDetectCollisionsEmptyList(t *testing.T) {
	gen := &fakeGenerator{reply: `{}`}
	got, err := NewCoach(gen).DetectCollisions(context.Background(), CollisionInput{Habits: `[{"name":"Read"}]`})
	require.NoError(t, err)
	assert.NotNil(t, got.Collisions)
	assert.Empty(t, got.Collisions)
	assert.Contains(t, gen.prompts[0], `[{"name":"Read"}]`)
}

func TestGeneratorErrorsPropagate(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := NewCoach(&fakeGenerator{err: boom}).Motivate(context.Background(), MotivationInput{})
	assert.ErrorIs(t, err, boom)
}

func TestDecodeOutputRejectsGarbage(t *testing.T) {
	var m Motivation
	assert.Error(t, decodeOutput("motivation", "not json", &m))
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "", nil)
	assert.Error(t, err)
}
