package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/bandit"
	"github.com/rlbook/tabular-rl/policies"
	"github.com/rlbook/tabular-rl/types"
)

func BanditCommand() *cobra.Command {
	var arms int
	var epsilons []float64

	cmd := &cobra.Command{
		Use:   "bandit",
		Short: "Epsilon-greedy sample averaging on the k-armed testbed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			env := bandit.NewEnvironment(arms, seed)
			fmt.Printf("best arm: %s\n", env.BestArm().Hash())

			c := types.NewComparison(&types.ComparisonConfig{
				Runs:       runs,
				Episodes:   episodes,
				Horizon:    horizon,
				RecordPath: saveFile,
			})
			c.AddAnalysis("Returns", types.NewReturnAnalyzer(), types.LinePlotComparator(saveFile, "Bandit testbed", "Return"))

			for i, epsilon := range epsilons {
				c.AddExperiment(types.NewExperiment(
					fmt.Sprintf("EpsGreedy(%g)", epsilon),
					policies.NewQLearning(policies.QLearningConfig{
						Gamma:   0,
						Epsilon: epsilon,
						Seed:    seed + uint64(i),
					}),
					env,
				))
			}
			c.AddExperiment(types.NewExperiment("Random", types.NewRandomPolicy(seed), env))

			return c.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&arms, "arms", bandit.DefaultArms, "Number of arms")
	cmd.Flags().Float64SliceVar(&epsilons, "epsilons", []float64{0.01, 0.1}, "Exploration rates to compare")
	return cmd
}
