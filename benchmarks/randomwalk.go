package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/dp"
	"github.com/rlbook/tabular-rl/policies"
	"github.com/rlbook/tabular-rl/randomwalk"
	"github.com/rlbook/tabular-rl/types"
)

func RandomWalkCommand() *cobra.Command {
	var states int
	var lambdas []float64

	cmd := &cobra.Command{
		Use:   "randomwalk",
		Short: "TD(lambda) prediction on the 19-state random walk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			env := randomwalk.NewEnvironment(states)
			truth := env.TrueValues()

			c := types.NewComparison(&types.ComparisonConfig{
				Runs:       runs,
				Episodes:   episodes,
				Horizon:    horizon,
				RecordPath: saveFile,
			})

			for _, lambda := range lambdas {
				learner := policies.NewTDLambda(policies.TDLambdaConfig{
					Alpha:  cfg.alphaOr(0.1),
					Gamma:  cfg.gammaOr(1),
					Lambda: lambda,
					Seed:   seed,
				})
				name := fmt.Sprintf("TD(%g)", lambda)
				c.AddAnalysis(
					name+"-RMS",
					types.NewRMSErrorAnalyzer(name, learner.Values, truth),
					types.LinePlotComparator(saveFile, "Random walk", name+" RMS error"),
				)
				c.AddExperiment(types.NewExperiment(name, learner, env))
			}

			if err := c.Run(ctx); err != nil {
				return err
			}

			// the DP answer for reference
			value, sweeps, err := dp.Evaluate(env, dp.Uniform(), dp.DefaultConfig(cfg.gammaOr(1)))
			if err != nil {
				return err
			}
			fmt.Printf("DP evaluation converged in %d sweeps\n", sweeps)
			for i := 1; i <= env.N(); i++ {
				hash := randomwalk.WalkState(i).Hash()
				fmt.Printf("state %s: dp=%.4f true=%.4f\n", hash, value.Get(hash, 0), truth[hash])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&states, "states", randomwalk.DefaultStates, "Number of non-terminal states")
	cmd.Flags().Float64SliceVar(&lambdas, "lambdas", []float64{0, 0.4, 0.8}, "Trace decay values to compare")
	return cmd
}
