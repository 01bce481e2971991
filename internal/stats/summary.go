package stats

// DefaultWindow is the trailing window, in days, used for missed-day and
// completion-rate figures.
const DefaultWindow = 7

// Summary bundles the dashboard statistics for one reference day.
type Summary struct {
	Date             Date       `json:"date"`
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	Today            Progress   `json:"today"`
	TotalCompletions int        `json:"totalCompletions"`
	Week             []DayCount `json:"week"`
	Calendar         []Date     `json:"calendar"`
	MissedDays       int        `json:"missedDays"`
	CompletionRate   float64    `json:"completionRate"`
}

func Summarize(habits []Habit, today Date, window int) Summary {
	if window <= 0 {
		window = DefaultWindow
	}
	return Summary{
		Date:             today,
		CurrentStreak:    CurrentStreak(habits, today),
		LongestStreak:    LongestStreak(habits),
		Today:            TodayProgress(habits, today),
		TotalCompletions: TotalCompletions(habits),
		Week:             WeeklyAggregate(habits, today),
		Calendar:         CalendarHighlightDates(habits),
		MissedDays:       MissedDays(habits, today, window),
		CompletionRate:   CompletionRate(habits, today, window),
	}
}
