package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "ticktail",
	Short:   "A cycle-counter tail-latency measurement harness",
	Version: version,
	Long: `Ticktail times individual short operations with the hardware cycle
counter and summarizes the sample population with exact nearest-rank
percentiles and top-K outliers, filtering out samples contaminated by
core migration or scheduler interruption.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(calibrateCmd)
	RootCmd.AddCommand(infoCmd)
}
