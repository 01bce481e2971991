package root

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rizwanrichu87/studio/internal/reminder"
	"github.com/Rizwanrichu87/studio/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string
	var noReminders bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API (and the reminder scheduler)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			opts := []web.Option{web.WithLogger(a.logger)}
			in, err := a.insights(ctx)
			if err != nil {
				a.logger.Warn("AI insights disabled", zap.Error(err))
			} else if in != nil {
				opts = append(opts, web.WithInsights(in))
			}
			srv := web.NewServer(a.svc, opts...)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx, addr)
			})
			if !noReminders {
				due := make(chan reminder.Due)
				sched := reminder.NewScheduler(reminder.WithLogger(a.logger))
				g.Go(func() error {
					err := sched.RunDaily(gctx, a.svc.ListHabits, due)
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				})
				g.Go(func() error {
					for {
						select {
						case <-gctx.Done():
							return nil
						case d := <-due:
							a.logger.Warn("habit reminder", zap.String("habit", d.Name), zap.Time("at", d.FireAt))
						}
					}
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")
	cmd.Flags().BoolVar(&noReminders, "no-reminders", false, "Do not run the reminder scheduler")
	return cmd
}
