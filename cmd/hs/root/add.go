package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		in     engine.CreateHabitInput
		target int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in.Name = strings.Join(args, " ")
			in.TargetCompletions = &target
			h, err := svc.CreateHabit(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.HabitIcon(h.Icon), h.Name,
				ui.Muted.Render(fmt.Sprintf("(%s, target %d, id %s)", h.Frequency, h.Target(), shortID(h.ID))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Frequency, "frequency", "f", "daily", "Frequency (daily|weekly|monthly)")
	cmd.Flags().IntVarP(&target, "target", "t", 1, "Completions per day needed to count the day as done")
	cmd.Flags().StringVarP(&in.ReminderTime, "remind", "r", "", "Reminder time (HH:MM)")
	cmd.Flags().StringVarP(&in.Icon, "icon", "i", engine.DefaultIcon, "Icon ("+strings.Join(engine.HabitIcons, "|")+")")

	return cmd
}

func newEditCmd() *cobra.Command {
	var (
		name, frequency, remind, icon string
		target                        int
	)

	cmd := &cobra.Command{
		Use:   "edit <habit>",
		Short: "Edit a habit's name, frequency, target, reminder or icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := resolveHabit(ctx, svc, args[0])
			if err != nil {
				return err
			}

			var upd engine.UpdateHabitInput
			flags := cmd.Flags()
			if flags.Changed("name") {
				upd.Name = &name
			}
			if flags.Changed("frequency") {
				upd.Frequency = &frequency
			}
			if flags.Changed("target") {
				upd.TargetCompletions = &target
			}
			if flags.Changed("remind") {
				upd.ReminderTime = &remind
			}
			if flags.Changed("icon") {
				upd.Icon = &icon
			}
			if upd == (engine.UpdateHabitInput{}) {
				return errors.New("nothing to change; pass at least one flag")
			}

			updated, err := svc.UpdateHabit(ctx, h.ID, upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconDone+" Updated"), ui.HabitIcon(updated.Icon), updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "Frequency (daily|weekly|monthly)")
	cmd.Flags().IntVarP(&target, "target", "t", 1, "Target completions per day")
	cmd.Flags().StringVarP(&remind, "remind", "r", "", "Reminder time (HH:MM, empty to clear)")
	cmd.Flags().StringVarP(&icon, "icon", "i", "", "Icon")

	return cmd
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <habit>",
		Aliases: []string{"delete"},
		Short:   "Delete a habit and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := resolveHabit(ctx, svc, args[0])
			if err != nil {
				return err
			}
			if err := svc.DeleteHabit(ctx, h.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Deleted"), h.Name)
			return nil
		},
	}
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
