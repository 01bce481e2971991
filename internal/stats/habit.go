package stats

import (
	"fmt"
	"sort"
	"strings"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	f := Frequency(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}

// Ledger maps a day to the number of completions recorded that day.
// A missing key means zero.
type Ledger map[Date]int

// ParseLedger builds a Ledger from raw date keys. Malformed keys and
// non-positive counts are skipped rather than failing the whole ledger.
func ParseLedger(raw map[string]int) Ledger {
	out := make(Ledger, len(raw))
	for k, n := range raw {
		if n <= 0 {
			continue
		}
		d, err := ParseDate(k)
		if err != nil {
			continue
		}
		out[d] = n
	}
	return out
}

// FromCompletedDates adapts the legacy "set of completed dates" shape:
// every listed day becomes a single completion.
func FromCompletedDates(dates []string) Ledger {
	out := make(Ledger, len(dates))
	for _, s := range dates {
		d, err := ParseDate(s)
		if err != nil {
			continue
		}
		out[d] = 1
	}
	return out
}

// Raw returns the ledger keyed by YYYY-MM-DD strings.
func (l Ledger) Raw() map[string]int {
	out := make(map[string]int, len(l))
	for d, n := range l {
		if n > 0 {
			out[d.String()] = n
		}
	}
	return out
}

// Dates returns the days with a non-zero count, ascending.
func (l Ledger) Dates() []Date {
	out := make([]Date, 0, len(l))
	for d, n := range l {
		if n > 0 {
			out = append(out, d)
		}
	}
	sortDates(out)
	return out
}

type Habit struct {
	ID                string
	Name              string
	Frequency         Frequency
	Completions       Ledger
	TargetCompletions int // 0 means the default of 1
	ReminderTime      string
	Icon              string
}

// Target returns the number of same-day completions needed to count the day as done.
func (h Habit) Target() int {
	if h.TargetCompletions < 1 {
		return 1
	}
	return h.TargetCompletions
}

func (h Habit) Count(d Date) int {
	return h.Completions[d]
}

func sortDates(ds []Date) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
}
