package benchmarks

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/mountaincar"
	"github.com/rlbook/tabular-rl/policies"
	"github.com/rlbook/tabular-rl/types"
)

func MountainCarCommand() *cobra.Command {
	var bins int

	cmd := &cobra.Command{
		Use:   "mountaincar",
		Short: "Q-learning on the binned mountain car",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			c := types.NewComparison(&types.ComparisonConfig{
				Runs:         runs,
				Episodes:     episodes,
				Horizon:      horizon,
				RecordPath:   saveFile,
				RecordPolicy: true,
			})
			c.AddAnalysis("Steps", types.NewStepsAnalyzer(), types.LinePlotComparator(saveFile, "Mountain car", "Steps"))
			c.AddAnalysis("Coverage", types.NewCoverageAnalyzer(), types.SummaryComparator("coverage"))

			c.AddExperiment(types.NewExperiment(
				"QLearning",
				policies.NewQLearning(policies.QLearningConfig{
					Alpha:   cfg.alphaOr(0.3),
					Gamma:   cfg.gammaOr(1),
					Epsilon: cfg.epsilonOr(0.1),
					Seed:    seed,
				}),
				mountaincar.NewEnvironment(
					mountaincar.WithBins(bins),
					mountaincar.WithRandomStart(seed),
				),
			))
			c.AddExperiment(types.NewExperiment(
				"Random",
				types.NewRandomPolicy(seed),
				mountaincar.NewEnvironment(
					mountaincar.WithBins(bins),
					mountaincar.WithRandomStart(seed+1),
				),
			))

			return c.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&bins, "bins", mountaincar.DefaultBins, "Buckets per state coordinate")
	return cmd
}
