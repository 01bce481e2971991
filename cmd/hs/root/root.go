package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rizwanrichu87/studio/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	dbPathFlag string
)

var rootCmd = &cobra.Command{
	Use:           "hs",
	Short:         "Habit Studio: local-first habit tracker",
	Long:          "Habit Studio tracks daily habits with multi-completion targets, streaks, weekly charts and optional AI coaching.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.habitstudio/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "SQLite database path (overrides db.path)")

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newRmCmd(),
		newListCmd(),
		newDoCmd(),
		newUndoCmd(),
		newStatsCmd(),
		newWeekCmd(),
		newMonthCmd(),
		newCalendarCmd(),
		newAchievementsCmd(),
		newInsightsCmd(),
		newImportCmd(),
		newExportCmd(),
		newBoardCmd(),
		newServeCmd(),
		newRemindCmd(),
		newDBCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
