package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Habit Studio theme (CLI + TUI).
// Kept small: reusable styles and a few emojis.

const (
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTodo     = "⬜"
	IconTrophy   = "🏆"
	IconLocked   = "🔒"
	IconFire     = "🔥"
	IconCalendar = "📅"
	IconChart    = "📊"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconBell     = "🔔"
)

// habitIcons maps the stored icon names to terminal emojis.
var habitIcons = map[string]string{
	"BookOpen":     "📖",
	"Dumbbell":     "🏋️",
	"Leaf":         "🌿",
	"Target":       "🎯",
	"BrainCircuit": "🧠",
	"Coffee":       "☕",
}

// achievementIcons maps achievement icon names to emojis.
var achievementIcons = map[string]string{
	"Award":        "🥇",
	"Trophy":       "🏆",
	"TrendingUp":   "📈",
	"CalendarDays": "📅",
	"BrainCircuit": "🧠",
	"Target":       "🎯",
}

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Highlight  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(cGood)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// HabitIcon returns the emoji for a stored habit icon name.
func HabitIcon(name string) string {
	if e, ok := habitIcons[name]; ok {
		return e
	}
	return habitIcons["Target"]
}

func AchievementIcon(name string, unlocked bool) string {
	if !unlocked {
		return IconLocked
	}
	if e, ok := achievementIcons[name]; ok {
		return e
	}
	return IconTrophy
}

// CountText renders "count/target", green once the target is met.
func CountText(count, target int) string {
	s := fmt.Sprintf("%d/%d", count, target)
	switch {
	case count >= target:
		return Good.Render(s)
	case count > 0:
		return Warn.Render(s)
	default:
		return Muted.Render(s)
	}
}

// ProgressBar draws a fixed-width [####----] bar for value out of total.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// BarChart renders one horizontal bar per label, scaled to the largest value.
func BarChart(labels []string, values []int, width int) string {
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	var b strings.Builder
	for i, label := range labels {
		v := 0
		if i < len(values) {
			v = values[i]
		}
		n := 0
		if max > 0 {
			n = v * width / max
		}
		fmt.Fprintf(&b, "%s %s %d\n", Key.Render(fmt.Sprintf("%-3s", label)), Good.Render(strings.Repeat("█", n)), v)
	}
	return strings.TrimRight(b.String(), "\n")
}
