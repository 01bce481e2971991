package ai

import (
	"text/template"

	"google.golang.org/genai"
)

func ptr[T any](v T) *T { return &v }

var MotivationTemplate = Template{
	Name: "motivation",
	Prompt: template.Must(template.New("motivation").Parse(`
You are an AI assistant designed to provide motivational tips and insights to users to help them maintain their habits.

Based on the following user data, generate a motivational tip and an insight:

Habits Completed: {{.HabitsCompleted}}
Current Streak: {{.CurrentStreak}}
Longest Streak: {{.LongestStreak}}
Missed Days: {{.MissedDays}}
Average Completion Rate: {{printf "%.0f" .AverageCompletionRate}}%

motivationalTip: a short, encouraging tip to keep the user motivated.
insight: an observation or suggestion based on the user's patterns and progress.
`)),
	Schema: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"motivationalTip": {Type: genai.TypeString, Description: "A personalized motivational tip for the user."},
			"insight":         {Type: genai.TypeString, Description: "An insight based on the user activity and patterns."},
		},
		Required: []string{"motivationalTip", "insight"},
	},
}

var RecommendationTemplate = Template{
	Name: "recommendations",
	Prompt: template.Must(template.New("recommendations").Parse(`
You are an AI habit coach. Analyze the user's habit tracking data and goals to provide personalized recommendations.

Habit Tracking Data: {{.HabitTrackingData}}

User Goals: {{.UserGoals}}

1. recommendations: specific and actionable recommendations to improve consistency and achieve their goals.
2. patternDetection: patterns in the data, such as days when habits are commonly missed.
3. optimalTimeSuggestion: based on the user's successful completions, the best times of day to perform their habits.
`)),
	Schema: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendations":       {Type: genai.TypeString},
			"patternDetection":      {Type: genai.TypeString},
			"optimalTimeSuggestion": {Type: genai.TypeString},
		},
		Required: []string{"recommendations", "patternDetection", "optimalTimeSuggestion"},
	},
}

var PredictionTemplate = Template{
	Name: "prediction",
	Prompt: template.Must(template.New("prediction").Parse(`
You are an AI analyst specializing in behavioral patterns.
Based on the provided habit tracking data and user goals, predict the probability of the user successfully achieving their goals.

Habit Data: {{.HabitTrackingData}}
User Goals: {{.UserGoals}}

Provide a success probability percentage (0-100) and a brief explanation for your prediction, considering factors like consistency, streak length, and completion rate.
`)),
	Schema: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"successProbability": {Type: genai.TypeNumber, Minimum: ptr(0.0), Maximum: ptr(100.0)},
			"predictionReason":   {Type: genai.TypeString},
		},
		Required: []string{"successProbability", "predictionReason"},
	},
}

var CollisionTemplate = Template{
	Name: "collisions",
	Prompt: template.Must(template.New("collisions").Parse(`
You are an AI assistant that helps users identify conflicting habits.
Analyze the following list of habits and their schedules to find any potential collisions.
A collision occurs if two habits have reminder times that are too close together on the same day.

Habits Data: {{.Habits}}

Identify pairs of habits that might overlap and provide a brief reason for the collision.
Return an empty array if there are no collisions.
`)),
	Schema: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"collisions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"habitA": {Type: genai.TypeString},
						"habitB": {Type: genai.TypeString},
						"reason": {Type: genai.TypeString},
					},
					Required: []string{"habitA", "habitB", "reason"},
				},
			},
		},
		Required: []string{"collisions"},
	},
}
