package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rizwanrichu87/studio/internal/reminder"
	"github.com/Rizwanrichu87/studio/internal/ui"
)

func newRemindCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Wait for today's habit reminders and print them as they fire",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			habits, err := a.svc.ListHabits(ctx)
			if err != nil {
				return err
			}
			plan := reminder.Plan(habits, time.Now())
			if list {
				if len(plan) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No reminders left today."))
				}
				for _, r := range plan {
					fmt.Fprintf(out, "%s %s %s\n", ui.IconBell, r.FireAt.Format("15:04"), r.Name)
				}
				return nil
			}

			due := make(chan reminder.Due)
			errCh := make(chan error, 1)
			sched := reminder.NewScheduler(reminder.WithLogger(a.logger))
			go func() {
				errCh <- sched.RunDaily(ctx, a.svc.ListHabits, due)
			}()
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d reminders pending today; Ctrl+C to stop.", len(plan))))
			for {
				select {
				case d := <-due:
					fmt.Fprintf(out, "%s %s %s\n", ui.Warn.Render(ui.IconBell+" "+d.FireAt.Format("15:04")), d.Name, ui.Muted.Render("hs do "+shortID(d.HabitID)))
				case err := <-errCh:
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
			}
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Print today's remaining reminders and exit")
	return cmd
}
