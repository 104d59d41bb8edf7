package benchmarks

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/policies"
	"github.com/rlbook/tabular-rl/store"
	"github.com/rlbook/tabular-rl/tictactoe"
	"github.com/rlbook/tabular-rl/types"
)

func TicTacToeCommand() *cobra.Command {
	var evalGames int

	cmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Self-play value learning, then evaluation games",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			enum := tictactoe.Enumerate()
			alpha := cfg.alphaOr(0.1)
			epsilon := cfg.epsilonOr(0.01)

			cross := tictactoe.NewValuePlayer(tictactoe.Cross, enum, alpha, epsilon, seed)
			nought := tictactoe.NewValuePlayer(tictactoe.Nought, enum, alpha, epsilon, seed+1)
			judger := tictactoe.NewJudger(cross, nought)

			crossWins, noughtWins := 0, 0
			for game := 1; game <= episodes; game++ {
				switch judger.Play() {
				case tictactoe.Cross:
					crossWins++
				case tictactoe.Nought:
					noughtWins++
				}
				if game%500 == 0 {
					fmt.Printf("game %d: cross %.3f, nought %.3f\n",
						game, float64(crossWins)/float64(game), float64(noughtWins)/float64(game))
				}
			}

			// greedy play from here on
			cross.SetEpsilon(0)
			nought.SetEpsilon(0)

			ties := 0
			judger = tictactoe.NewJudger(cross, nought)
			for game := 0; game < evalGames; game++ {
				if judger.Play() == tictactoe.Empty {
					ties++
				}
			}
			fmt.Printf("self-play evaluation: %d/%d ties\n", ties, evalGames)

			// a trained player should never lose to a random one
			losses := 0
			judger = tictactoe.NewJudger(cross, tictactoe.NewRandomPlayer(seed+2))
			for game := 0; game < evalGames; game++ {
				if judger.Play() == tictactoe.Nought {
					losses++
				}
			}
			fmt.Printf("versus random: %d/%d losses\n", losses, evalGames)

			// the same game through the model contract: Q-learning as Cross
			// against a random opponent
			learner := policies.NewQLearning(policies.QLearningConfig{
				Alpha:   alpha,
				Gamma:   1,
				Epsilon: 0.1,
				Seed:    seed + 3,
			})
			agent := types.NewAgent(&types.AgentConfig{
				Episodes: episodes,
				Horizon:  9,
				Policy:   learner,
				Model:    tictactoe.NewEnvironment(tictactoe.NewRandomPlayer(seed+4), enum),
			})
			if err := agent.Run(); err != nil {
				return err
			}
			wins := 0
			for _, trace := range agent.Traces() {
				if _, _, reward, _, ok := trace.Last(); ok && reward == 1 {
					wins++
				}
			}
			fmt.Printf("q-learning versus random: %d/%d wins\n", wins, episodes)

			tables, err := store.NewFileStore(saveFile)
			if err != nil {
				return err
			}
			if err := tables.Save(context.Background(), "tictactoe_qtable", learner.Table()); err != nil {
				return err
			}
			if err := cross.SavePolicy(path.Join(saveFile, "tictactoe_cross.json")); err != nil {
				return err
			}
			if err := nought.SavePolicy(path.Join(saveFile, "tictactoe_nought.json")); err != nil {
				return err
			}
			return tables.Save(context.Background(), "tictactoe_estimations", cross.Estimations())
		},
	}
	cmd.Flags().IntVar(&evalGames, "eval-games", 1000, "Greedy evaluation games after training")
	return cmd
}
