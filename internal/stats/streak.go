package stats

// IsDoneOnDate reports whether h reached its target on d.
func IsDoneOnDate(h Habit, d Date) bool {
	return h.Count(d) >= h.Target()
}

// completionDays is the union, over all habits, of days with a non-zero count.
func completionDays(habits []Habit) map[Date]struct{} {
	days := map[Date]struct{}{}
	for _, h := range habits {
		for d, n := range h.Completions {
			if n > 0 {
				days[d] = struct{}{}
			}
		}
	}
	return days
}

// CurrentStreak counts consecutive days, walking back from today, on which at
// least one habit has a completion. If today has nothing yet the walk starts
// at yesterday, so a streak that ended yesterday is still current.
//
// The streak is over the union of all habits, not per habit.
func CurrentStreak(habits []Habit, today Date) int {
	days := completionDays(habits)
	if len(days) == 0 {
		return 0
	}

	day := today
	if _, ok := days[day]; !ok {
		day = day.AddDays(-1)
	}

	streak := 0
	for {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
		day = day.AddDays(-1)
	}
}

// LongestStreak returns the longest run of consecutive days in the union of
// all habits' completion days.
func LongestStreak(habits []Habit) int {
	days := completionDays(habits)
	if len(days) == 0 {
		return 0
	}

	sorted := make([]Date, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sortDates(sorted)

	longest := 0
	run := 0
	var prev Date
	for i, d := range sorted {
		if i > 0 && prev.AddDays(1) == d {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	return longest
}

// CalendarHighlightDates returns every day on which any habit has a completion, ascending.
func CalendarHighlightDates(habits []Habit) []Date {
	days := completionDays(habits)
	out := make([]Date, 0, len(days))
	for d := range days {
		out = append(out, d)
	}
	sortDates(out)
	return out
}

// HabitStreak is one habit's run of done days ending on a given day.
type HabitStreak struct {
	HabitID string `json:"habitId"`
	Name    string `json:"name"`
	Streak  int    `json:"streak"`
}

// MonthDay is one row of the monthly streak matrix.
type MonthDay struct {
	Date    Date          `json:"date"`
	Label   string        `json:"label"`
	Streaks []HabitStreak `json:"streaks"`
}

// MonthlyStreakMatrix returns, for each day of the month containing ref and
// each habit, the number of consecutive done days ending on that day.
//
// Each habit is walked once: the run ending the day before the month starts
// is found by walking backward, then carried forward day by day.
func MonthlyStreakMatrix(habits []Habit, ref Date) []MonthDay {
	days := MonthDays(ref)
	out := make([]MonthDay, len(days))
	for i, d := range days {
		out[i] = MonthDay{
			Date:    d,
			Label:   d.Time().Format("2"),
			Streaks: make([]HabitStreak, len(habits)),
		}
	}

	for hi, h := range habits {
		run := runEndingAt(h, days[0].AddDays(-1))
		for di, d := range days {
			if IsDoneOnDate(h, d) {
				run++
			} else {
				run = 0
			}
			out[di].Streaks[hi] = HabitStreak{HabitID: h.ID, Name: h.Name, Streak: run}
		}
	}
	return out
}

func runEndingAt(h Habit, d Date) int {
	n := 0
	for IsDoneOnDate(h, d) {
		n++
		d = d.AddDays(-1)
	}
	return n
}
