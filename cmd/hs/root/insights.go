package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Rizwanrichu87/studio/internal/ai"
	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/stats"
)

var errNoAIKey = errors.New("AI insights need an API key: set ai.api_key in the config or GEMINI_API_KEY")

func newInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "AI coaching from your habit data",
	}
	cmd.AddCommand(
		insightCmd("motivate", "A motivational tip and an insight from your stats", false,
			func(ctx context.Context, in *engine.Insights, day stats.Date, goals string) (string, error) {
				m, err := in.Motivate(ctx, day)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("## Tip\n\n%s\n\n## Insight\n\n%s\n", m.MotivationalTip, m.Insight), nil
			}),
		insightCmd("recommend <goals>", "Recommendations toward your goals", true,
			func(ctx context.Context, in *engine.Insights, day stats.Date, goals string) (string, error) {
				r, err := in.Recommend(ctx, day, goals)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("## Recommendations\n\n%s\n\n## Patterns\n\n%s\n\n## Best time\n\n%s\n",
					r.Recommendations, r.PatternDetection, r.OptimalTimeSuggestion), nil
			}),
		insightCmd("predict <goals>", "Estimate your chance of reaching your goals", true,
			func(ctx context.Context, in *engine.Insights, day stats.Date, goals string) (string, error) {
				p, err := in.Predict(ctx, day, goals)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("## Success probability: %.0f%%\n\n%s\n", p.SuccessProbability, p.PredictionReason), nil
			}),
		insightCmd("collisions", "Find habits that compete for the same time or energy", false,
			func(ctx context.Context, in *engine.Insights, day stats.Date, goals string) (string, error) {
				c, err := in.DetectCollisions(ctx, day)
				if err != nil {
					return "", err
				}
				if len(c.Collisions) == 0 {
					return "## No collisions\n\nYour habits fit together well.\n", nil
				}
				var b strings.Builder
				b.WriteString("## Collisions\n\n")
				for _, col := range c.Collisions {
					fmt.Fprintf(&b, "- **%s** vs **%s**: %s\n", col.HabitA, col.HabitB, col.Reason)
				}
				return b.String(), nil
			}),
	)
	return cmd
}

type insightFunc func(ctx context.Context, in *engine.Insights, day stats.Date, goals string) (string, error)

func insightCmd(use, short string, needsGoals bool, fn insightFunc) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals := strings.Join(args, " ")
			if needsGoals && strings.TrimSpace(goals) == "" {
				return ai.ErrNoGoals
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in, err := a.insights(ctx)
			if err != nil {
				return err
			}
			if in == nil {
				return errNoAIKey
			}
			day, err := parseDay(a.svc, date)
			if err != nil {
				return err
			}

			md, err := fn(ctx, in, day, goals)
			if err != nil {
				return err
			}
			renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			rendered, err := renderer.Render(md)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Reference day (YYYY-MM-DD, default today)")
	return cmd
}
