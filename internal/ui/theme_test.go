package ui

import (
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	cases := []struct {
		value, total, width int
		want                string
	}{
		{0, 4, 4, "[----]"},
		{2, 4, 4, "[##--]"},
		{9, 4, 4, "[####]"},
		{1, 0, 2, "[###]"},
	}
	for _, c := range cases {
		if got := ProgressBar(c.value, c.total, c.width); got != c.want {
			t.Fatalf("ProgressBar(%d,%d,%d)=%q, want %q", c.value, c.total, c.width, got, c.want)
		}
	}
}

func TestBarChartHasOneLinePerLabel(t *testing.T) {
	out := BarChart([]string{"Mon", "Tue", "Wed"}, []int{0, 3, 1}, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d, want 3:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[1], " 3") {
		t.Fatalf("tuesday line=%q", lines[1])
	}
}

func TestIconsFallBack(t *testing.T) {
	if HabitIcon("Nope") != HabitIcon("Target") {
		t.Fatalf("unknown icon should fall back to Target")
	}
	if AchievementIcon("Trophy", false) != IconLocked {
		t.Fatalf("locked achievement should show the lock")
	}
}
