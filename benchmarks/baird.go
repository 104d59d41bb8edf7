package benchmarks

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/baird"
	"github.com/rlbook/tabular-rl/store"
	"github.com/rlbook/tabular-rl/util"
)

func BairdCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "baird",
		Short: "Off-policy divergence on the star counterexample",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			learnerCfg := baird.DefaultConfig(seed)
			learnerCfg.Alpha = cfg.alphaOr(learnerCfg.Alpha)
			learnerCfg.Gamma = cfg.gammaOr(learnerCfg.Gamma)
			learner := baird.NewLearner(learnerCfg)

			norms := learner.Run(steps)
			stride := steps / 10
			if stride == 0 {
				stride = 1
			}
			for i := 0; i < steps; i += stride {
				fmt.Printf("step %d: |theta| = %g\n", i, norms[i])
			}
			fmt.Printf("final theta: %v\n", learner.Theta())

			if _, err := store.NewFileStore(saveFile); err != nil {
				return err
			}
			bs, err := json.Marshal(norms)
			if err != nil {
				return err
			}
			return util.WriteToFile(path.Join(saveFile, "baird_norms.json"), string(bs))
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 10000, "Behavior transitions to sample")
	return cmd
}
