package root

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rizwanrichu87/studio/internal/ai"
	"github.com/Rizwanrichu87/studio/internal/config"
	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/logging"
	"github.com/Rizwanrichu87/studio/internal/stats"
	"github.com/Rizwanrichu87/studio/internal/storage"
)

// app is everything a command needs once config, logging and the DB are up.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sql.DB
	svc    *engine.Service
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DB.Path = dbPathFlag
	}
	return cfg, nil
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DB.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	svc := engine.NewService(db, engine.WithLogger(logger), engine.WithWindow(cfg.Stats.WindowDays))
	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return &app{cfg: cfg, logger: logger, db: db, svc: svc}, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.svc, cleanup, nil
}

// insights builds the AI coach, or nil when no API key is configured.
func (a *app) insights(ctx context.Context) (*engine.Insights, error) {
	if a.cfg.AI.APIKey == "" {
		return nil, nil
	}
	gen, err := ai.NewGeminiGenerator(ctx, a.cfg.AI.APIKey, a.cfg.AI.Model, a.logger)
	if err != nil {
		return nil, err
	}
	return engine.NewInsights(a.svc, ai.NewCoach(gen)), nil
}

// resolveHabit finds a habit by exact ID, unique ID prefix, or name (case-insensitive).
func resolveHabit(ctx context.Context, svc *engine.Service, ref string) (*stats.Habit, error) {
	habits, err := svc.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	ref = strings.TrimSpace(ref)
	var byPrefix, byName []int
	for i := range habits {
		if habits[i].ID == ref {
			return &habits[i], nil
		}
		if strings.HasPrefix(habits[i].ID, ref) {
			byPrefix = append(byPrefix, i)
		}
		if strings.EqualFold(habits[i].Name, ref) {
			byName = append(byName, i)
		}
	}
	switch {
	case len(byName) == 1:
		return &habits[byName[0]], nil
	case len(byPrefix) == 1:
		return &habits[byPrefix[0]], nil
	case len(byName) > 1 || len(byPrefix) > 1:
		return nil, fmt.Errorf("%q matches more than one habit; use the id", ref)
	}
	return nil, engine.NotFoundError{Kind: "habit", ID: ref}
}

// parseDay reads a --date flag value, defaulting to today.
func parseDay(svc *engine.Service, raw string) (stats.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return svc.Today(), nil
	}
	d, err := stats.ParseDate(raw)
	if err != nil {
		return stats.Date{}, fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
	}
	return d, nil
}

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the database path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.DB.Path)
			return nil
		},
	})
	return cmd
}
