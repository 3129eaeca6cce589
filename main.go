// Command vinom-pathfinding serves steppable pathfinding boards over HTTP
// and runs searches headless from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-pathfinding/logging"
	"github.com/spf13/cobra"
)

var appLogger = logging.Log()

// newRootCmd builds the command tree. Output goes to the command's writer so
// tests can capture it.
func newRootCmd() *cobra.Command {
	var verbose int
	root := &cobra.Command{
		Use:           "vinom-pathfinding",
		Short:         "Steppable grid pathfinding engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Init(verbose) // After flags are parsed
		},
	}
	root.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0, "Verbosity for logging")

	root.AddCommand(newServeCmd(), newRunCmd(), newAlgorithmsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
