package main

import (
	"fmt"
	"os"

	"github.com/rlbook/tabular-rl/benchmarks"
)

func main() {
	if err := benchmarks.GetRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
