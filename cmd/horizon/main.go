package main

import (
	"fmt"
	"os"

	"github.com/comitanigiacomo/habit-horizon/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "horizon: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
