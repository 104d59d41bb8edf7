// Package benchmarks wires the exercise environments, solvers and learners
// into runnable commands. Every command shares the episode/horizon/save flags
// and optionally loads overrides from a YAML config file.
package benchmarks

import "github.com/spf13/cobra"

var (
	episodes   int
	horizon    int
	saveFile   string
	runs       int
	seed       uint64
	configFile string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use: "tabular-rl",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 10000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 100, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 1, "Seed for every pseudo-random draw")
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file overriding the flags")
	// adding the subcommands here
	rootCommand.AddCommand(BanditCommand())
	rootCommand.AddCommand(GridworldCommand())
	rootCommand.AddCommand(CliffCommand())
	rootCommand.AddCommand(MazeCommand())
	rootCommand.AddCommand(RandomWalkCommand())
	rootCommand.AddCommand(MountainCarCommand())
	rootCommand.AddCommand(TicTacToeCommand())
	rootCommand.AddCommand(CorridorCommand())
	rootCommand.AddCommand(BairdCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
