package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rizwanrichu87/studio/internal/ui"
)

func newListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with the day's progress",
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
			dash, err := svc.Dashboard(ctx, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, "Habits for "+day.String()))
			if len(dash.Habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits yet. Add one with: hs add <name>"))
				return nil
			}
			for _, row := range dash.Habits {
				mark := ui.IconTodo
				if row.Done {
					mark = ui.IconDone
				}
				line := fmt.Sprintf("%s %s %s %s %s", mark, ui.HabitIcon(row.Habit.Icon), row.Habit.Name,
					ui.CountText(row.Count, row.Target), ui.Muted.Render(string(row.Habit.Frequency)+" · "+shortID(row.Habit.ID)))
				if row.Habit.ReminderTime != "" {
					line += " " + ui.Muted.Render(ui.IconBell+" "+row.Habit.ReminderTime)
				}
				fmt.Fprintln(out, line)
			}
			p := dash.Summary.Today
			fmt.Fprintf(out, "\n%s %s %d%%\n", ui.Key.Render("Today:"), ui.ProgressBar(p.Completed, p.Target, 20), p.Percent)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	return cmd
}
