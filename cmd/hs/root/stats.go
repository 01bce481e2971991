package root

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/stats"
	"github.com/Rizwanrichu87/studio/internal/ui"
)

// dayCommand builds a command that opens the service, resolves --date and
// hands both to run.
func dayCommand(use, short string, run func(ctx context.Context, svc *engine.Service, day stats.Date, out io.Writer) error) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := parseDay(svc, date)
			if err != nil {
				return err
			}
			return run(ctx, svc, day, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Reference day (YYYY-MM-DD, default today)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return dayCommand("stats", "Show streaks and completion statistics", func(ctx context.Context, svc *engine.Service, day stats.Date, out io.Writer) error {
		dash, err := svc.Dashboard(ctx, day)
		if err != nil {
			return err
		}
		s := dash.Summary
		fmt.Fprintln(out, ui.Heading(ui.IconChart, "Statistics for "+day.String()))
		fmt.Fprintln(out, ui.LabelValue(ui.IconFire+" Current streak", fmt.Sprintf("%d days", s.CurrentStreak)))
		fmt.Fprintln(out, ui.LabelValue(ui.IconTrophy+" Longest streak", fmt.Sprintf("%d days", s.LongestStreak)))
		fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d/%d %s %d%%", s.Today.Completed, s.Today.Target, ui.ProgressBar(s.Today.Completed, s.Today.Target, 20), s.Today.Percent)))
		fmt.Fprintln(out, ui.LabelValue("Total completions", s.TotalCompletions))
		fmt.Fprintln(out, ui.LabelValue("Missed days", fmt.Sprintf("%d (last %d days)", s.MissedDays, svc.Window())))
		fmt.Fprintln(out, ui.LabelValue("Completion rate", fmt.Sprintf("%.1f%%", s.CompletionRate)))
		fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", dash.Unlocked, len(dash.Achievements))))
		return nil
	})
}

func newWeekCmd() *cobra.Command {
	return dayCommand("week", "Show completions per day for the week (Mon-Sun)", func(ctx context.Context, svc *engine.Service, day stats.Date, out io.Writer) error {
		habits, err := svc.ListHabits(ctx)
		if err != nil {
			return err
		}
		week := stats.WeeklyAggregate(habits, day)
		labels := make([]string, 0, len(week))
		values := make([]int, 0, len(week))
		for _, d := range week {
			labels = append(labels, d.Label)
			values = append(values, d.Completed)
		}
		fmt.Fprintln(out, ui.Heading(ui.IconChart, fmt.Sprintf("Week of %s", week[0].Date)))
		fmt.Fprintln(out, ui.BarChart(labels, values, 30))
		return nil
	})
}

func newMonthCmd() *cobra.Command {
	return dayCommand("month", "Show each habit's streak for every day of the month", func(ctx context.Context, svc *engine.Service, day stats.Date, out io.Writer) error {
		matrix, err := svc.Month(ctx, day)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Heading(ui.IconCalendar, day.Time().Format("January 2006")+" streaks"))
		if len(matrix) == 0 || len(matrix[0].Streaks) == 0 {
			fmt.Fprintln(out, ui.Muted.Render("No habits yet."))
			return nil
		}

		var header strings.Builder
		header.WriteString("      ")
		for _, hs := range matrix[0].Streaks {
			fmt.Fprintf(&header, " %-8s", truncate(hs.Name, 8))
		}
		fmt.Fprintln(out, ui.Key.Render(header.String()))
		for _, row := range matrix {
			var line strings.Builder
			fmt.Fprintf(&line, "%-6s", row.Label)
			for _, hs := range row.Streaks {
				cell := fmt.Sprintf(" %-8d", hs.Streak)
				if hs.Streak > 0 {
					cell = ui.Good.Render(cell)
				} else {
					cell = ui.Muted.Render(cell)
				}
				line.WriteString(cell)
			}
			fmt.Fprintln(out, line.String())
		}
		return nil
	})
}

func newCalendarCmd() *cobra.Command {
	return dayCommand("calendar", "Show a month calendar with completed days highlighted", func(ctx context.Context, svc *engine.Service, day stats.Date, out io.Writer) error {
		habits, err := svc.ListHabits(ctx)
		if err != nil {
			return err
		}
		marked := map[stats.Date]bool{}
		for _, d := range stats.CalendarHighlightDates(habits) {
			marked[d] = true
		}
		fmt.Fprint(out, renderCalendar(day, marked))
		return nil
	})
}

// renderCalendar draws a Monday-first month grid.
func renderCalendar(ref stats.Date, marked map[stats.Date]bool) string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconCalendar, ref.Time().Format("January 2006")) + "\n")
	b.WriteString(ui.Key.Render("Mo Tu We Th Fr Sa Su") + "\n")

	days := stats.MonthDays(ref)
	lead := (int(days[0].Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", lead))
	for _, d := range days {
		cell := fmt.Sprintf("%2d", d.Day)
		if marked[d] {
			cell = ui.Highlight.Render(cell)
		}
		b.WriteString(cell)
		if d.Weekday() == time.Sunday {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func newAchievementsCmd() *cobra.Command {
	return dayCommand("achievements", "List achievements and which are unlocked", func(ctx context.Context, svc *engine.Service, day stats.Date, out io.Writer) error {
		list, err := svc.Achievements(ctx, day)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
		for _, a := range list {
			name := ui.Muted.Render(a.Name)
			if a.Unlocked {
				name = ui.Gold.Render(a.Name)
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.AchievementIcon(a.Icon, a.Unlocked), name, ui.Muted.Render(a.Description))
		}
		return nil
	})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
