package benchmarks

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/gridenv"
	"github.com/rlbook/tabular-rl/maze"
	"github.com/rlbook/tabular-rl/policies"
	"github.com/rlbook/tabular-rl/types"
)

func MazeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "maze",
		Short: "Q-learning on the obstacle maze",
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
			c.AddAnalysis("Steps", types.NewStepsAnalyzer(), types.LinePlotComparator(saveFile, "Maze", "Steps"))
			c.AddAnalysis("Coverage", types.NewCoverageAnalyzer(), types.SummaryComparator("coverage"))
			c.AddAnalysis("Visits", gridenv.NewVisitAnalyzer(), gridenv.VisitDumpComparator(saveFile))
			c.AddAnalysis("Graph", types.NewGraphAnalyzer(), types.GraphDumpComparator(saveFile))

			c.AddExperiment(types.NewExperiment(
				"QLearning",
				policies.NewQLearning(policies.QLearningConfig{
					Alpha:        cfg.alphaOr(0.1),
					Gamma:        cfg.gammaOr(0.95),
					Epsilon:      cfg.epsilonOr(0.3),
					EpsilonDecay: 0.999,
					EpsilonMin:   0.05,
					Seed:         seed,
				}),
				maze.NewEnvironment(),
			))
			c.AddExperiment(types.NewExperiment(
				"QLearning-VisitAlpha",
				policies.NewQLearning(policies.QLearningConfig{
					// Alpha 0 selects the 1/N(s,a) schedule
					Gamma:   cfg.gammaOr(0.95),
					Epsilon: cfg.epsilonOr(0.3),
					Seed:    seed,
				}),
				maze.NewEnvironment(),
			))
			c.AddExperiment(types.NewExperiment(
				"Random",
				types.NewRandomPolicy(seed),
				maze.NewEnvironment(),
			))

			return c.Run(ctx)
		},
	}
}
