package stats

import "math"

// DayCount is one bar of the weekly chart.
type DayCount struct {
	Label     string `json:"label"`
	Date      Date   `json:"date"`
	Completed int    `json:"completed"`
}

// WeeklyAggregate sums every habit's count for each day of the ISO week
// (Monday to Sunday) containing ref. It always returns seven entries.
func WeeklyAggregate(habits []Habit, ref Date) []DayCount {
	start := WeekStart(ref)
	out := make([]DayCount, 7)
	for i := range out {
		d := start.AddDays(i)
		total := 0
		for _, h := range habits {
			total += h.Count(d)
		}
		out[i] = DayCount{Label: d.Time().Format("Mon"), Date: d, Completed: total}
	}
	return out
}

// DueOn reports whether h is scheduled on d.
//
// Every frequency is currently due every day: weekly and monthly habits are
// not filtered. This keeps the dashboard's long-standing behavior; a real
// schedule per frequency has not been designed yet.
func DueOn(h Habit, d Date) bool {
	return true
}

// DueHabits filters habits by DueOn.
func DueHabits(habits []Habit, d Date) []Habit {
	var out []Habit
	for _, h := range habits {
		if DueOn(h, d) {
			out = append(out, h)
		}
	}
	return out
}

// Progress is the day's completed count against the summed targets of due habits.
type Progress struct {
	Completed int `json:"completed"`
	Target    int `json:"target"`
	Percent   int `json:"percent"`
}

func TodayProgress(habits []Habit, today Date) Progress {
	var p Progress
	for _, h := range DueHabits(habits, today) {
		p.Completed += h.Count(today)
		p.Target += h.Target()
	}
	if p.Target > 0 {
		p.Percent = int(math.Round(float64(p.Completed) * 100 / float64(p.Target)))
	}
	return p
}

// TotalCompletions is the all-time sum of every count in every ledger.
func TotalCompletions(habits []Habit) int {
	total := 0
	for _, h := range habits {
		for _, n := range h.Completions {
			if n > 0 {
				total += n
			}
		}
	}
	return total
}

// MissedDays counts the days in the window ending today on which no habit
// had any completion.
func MissedDays(habits []Habit, today Date, window int) int {
	days := completionDays(habits)
	missed := 0
	for i := 0; i < window; i++ {
		if _, ok := days[today.AddDays(-i)]; !ok {
			missed++
		}
	}
	return missed
}

// CompletionRate is the average daily completion percentage (0-100) over
// the window ending today. A day's rate is its summed counts over its summed
// targets, capped at 100%.
func CompletionRate(habits []Habit, today Date, window int) float64 {
	if len(habits) == 0 || window <= 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < window; i++ {
		d := today.AddDays(-i)
		done, target := 0, 0
		for _, h := range DueHabits(habits, d) {
			done += h.Count(d)
			target += h.Target()
		}
		if target == 0 {
			continue
		}
		sum += math.Min(1, float64(done)/float64(target))
	}
	return math.Round(sum/float64(window)*1000) / 10
}
