package benchmarks

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/cliff"
	"github.com/rlbook/tabular-rl/dp"
	"github.com/rlbook/tabular-rl/gridenv"
	"github.com/rlbook/tabular-rl/policies"
	"github.com/rlbook/tabular-rl/store"
	"github.com/rlbook/tabular-rl/types"
)

func CliffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cliff",
		Short: "Q-learning on the cliff walk, compared against a random walker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			learner := policies.NewQLearning(policies.QLearningConfig{
				Alpha:   cfg.alphaOr(0.5),
				Gamma:   cfg.gammaOr(1),
				Epsilon: cfg.epsilonOr(0.1),
				Seed:    seed,
			})

			c := types.NewComparison(&types.ComparisonConfig{
				Runs:         runs,
				Episodes:     episodes,
				Horizon:      horizon,
				RecordPath:   saveFile,
				RecordPolicy: true,
			})
			c.AddAnalysis("Returns", types.NewReturnAnalyzer(), types.LinePlotComparator(saveFile, "Cliff walking", "Return"))
			c.AddAnalysis("Visits", gridenv.NewVisitAnalyzer(), gridenv.VisitDumpComparator(saveFile))

			c.AddExperiment(types.NewExperiment("QLearning", learner, cliff.NewEnvironment()))
			c.AddExperiment(types.NewExperiment("Random", types.NewRandomPolicy(seed), cliff.NewEnvironment()))

			if err := c.Run(ctx); err != nil {
				return err
			}

			// retrain once outside the comparison to keep a table for the
			// greedy rollout and the store
			env := cliff.NewEnvironment()
			agent := types.NewAgent(&types.AgentConfig{
				Episodes: episodes,
				Horizon:  horizon,
				Policy:   learner,
				Model:    env,
			})
			if err := agent.Run(); err != nil {
				return err
			}

			greedy := dp.GreedyFromQ(env, learner.Table())
			tables, err := store.NewFileStore(saveFile)
			if err != nil {
				return err
			}
			if err := tables.Save(ctx, "cliff_qtable", learner.Table()); err != nil {
				return err
			}
			return tables.Save(ctx, "cliff_greedy_policy", greedy)
		},
	}
}
