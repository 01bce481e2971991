package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/stats"
	"github.com/Rizwanrichu87/studio/internal/ui"
)

func newDoCmd() *cobra.Command {
	return newAdjustCmd("do <habit>", "Record a completion (up to the habit's target)", 1)
}

func newUndoCmd() *cobra.Command {
	return newAdjustCmd("undo <habit>", "Remove a completion", -1)
}

func newAdjustCmd(use, short string, delta int) *cobra.Command {
	var date string
	var count int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
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
			h, err := resolveHabit(ctx, svc, args[0])
			if err != nil {
				return err
			}

			dir := delta
			var res *engine.CompletionResult
			switch {
			case cmd.Flags().Changed("count"):
				res, err = svc.SetCount(ctx, h.ID, day, count)
				if err == nil && res.Changed && res.After < res.Before {
					dir = -1
				}
			case delta > 0:
				res, err = svc.Increment(ctx, h.ID, day)
			default:
				res, err = svc.Decrement(ctx, h.ID, day)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case !res.Changed && dir > 0:
				fmt.Fprintf(out, "%s %s already at %s on %s\n", ui.Muted.Render(ui.IconInfo), h.Name, ui.CountText(res.After, res.Target), day)
				return nil
			case !res.Changed:
				fmt.Fprintf(out, "%s nothing to undo for %s on %s\n", ui.Muted.Render(ui.IconInfo), h.Name, day)
				return nil
			}

			label := ui.Warn.Render("Undone")
			if dir > 0 {
				label = ui.Good.Render(ui.IconDone + " Done")
			}
			fmt.Fprintf(out, "%s %s %s %s\n", label, ui.HabitIcon(h.Icon), h.Name, ui.CountText(res.After, res.Target))

			habits, err := svc.ListHabits(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %d days\n", ui.IconFire, ui.Key.Render("Streak:"), stats.CurrentStreak(habits, day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to record (YYYY-MM-DD, default today)")
	if delta > 0 {
		cmd.Flags().IntVar(&count, "count", 0, "Set the day's count directly (clamped to 0..target)")
	}
	return cmd
}
