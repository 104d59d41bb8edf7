package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/corridor"
	"github.com/rlbook/tabular-rl/policies"
	"github.com/rlbook/tabular-rl/types"
)

func CorridorCommand() *cobra.Command {
	var alphas []float64

	cmd := &cobra.Command{
		Use:   "corridor",
		Short: "REINFORCE on the switched short corridor",
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
			c.AddAnalysis("Returns", types.NewReturnAnalyzer(), types.LinePlotComparator(saveFile, "Short corridor", "Return"))

			for _, alpha := range alphas {
				learner := policies.NewReinforce(policies.ReinforceConfig{
					Alpha:   alpha,
					Gamma:   cfg.gammaOr(1),
					Actions: len(corridor.Directions),
					Seed:    seed,
				})
				name := fmt.Sprintf("Reinforce(%g)", alpha)
				c.AddExperiment(types.NewExperiment(name, learner, corridor.NewEnvironment()))
			}

			if err := c.Run(ctx); err != nil {
				return err
			}

			// one more training pass outside the comparison, which resets its
			// policies, to show the learned distribution
			learner := policies.NewReinforce(policies.ReinforceConfig{
				Alpha:   alphas[0],
				Gamma:   cfg.gammaOr(1),
				Actions: len(corridor.Directions),
				Seed:    seed,
			})
			agent := types.NewAgent(&types.AgentConfig{
				Episodes: episodes,
				Horizon:  horizon,
				Policy:   learner,
				Model:    corridor.NewEnvironment(),
			})
			if err := agent.Run(); err != nil {
				return err
			}
			probs := learner.ActionProbs()
			fmt.Printf("Reinforce(%g): P(Left)=%.3f P(Right)=%.3f\n", alphas[0], probs[0], probs[1])
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&alphas, "alphas", []float64{0.002, 0.00005}, "Gradient step sizes to compare")
	return cmd
}
