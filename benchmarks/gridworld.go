package benchmarks

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/dp"
	"github.com/rlbook/tabular-rl/gridenv"
	"github.com/rlbook/tabular-rl/gridworld"
	"github.com/rlbook/tabular-rl/store"
	"github.com/rlbook/tabular-rl/types"
)

func GridworldCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gridworld",
		Short: "Policy evaluation and value iteration on the 5x5 teleport grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gamma := cfg.gammaOr(gridworld.Discount)

			env := gridworld.NewEnvironment()
			dpCfg := dp.DefaultConfig(gamma)

			uniform, sweeps, err := dp.Evaluate(env, dp.Uniform(), dpCfg)
			if err != nil {
				var nc *types.NonConvergenceError
				if !errors.As(err, &nc) {
					return err
				}
				fmt.Printf("uniform policy evaluation: %s\n", nc.Error())
			} else {
				fmt.Printf("Uniform policy value (converged in %d sweeps):\n", sweeps)
			}
			printGrid(uniform, gridworld.Size, gridworld.Size)

			optimal, sweeps, err := dp.ValueIteration(env, dpCfg)
			if err != nil {
				var nc *types.NonConvergenceError
				if !errors.As(err, &nc) {
					return err
				}
				fmt.Printf("value iteration: %s\n", nc.Error())
			} else {
				fmt.Printf("Optimal value (converged in %d sweeps):\n", sweeps)
			}
			printGrid(optimal, gridworld.Size, gridworld.Size)

			policy, err := dp.GreedyPolicy(env, optimal, gamma)
			if err != nil {
				return err
			}

			tables, err := store.NewFileStore(saveFile)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := tables.Save(ctx, "gridworld_uniform_values", uniform); err != nil {
				return err
			}
			if err := tables.Save(ctx, "gridworld_optimal_values", optimal); err != nil {
				return err
			}
			return tables.Save(ctx, "gridworld_greedy_policy", policy)
		},
	}
}

func printGrid(values *types.ValueTable, height, width int) {
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			cell := &gridenv.Cell{Row: i, Col: j}
			fmt.Printf("%7.2f", values.Get(cell.Hash(), 0))
		}
		fmt.Println("")
	}
}
