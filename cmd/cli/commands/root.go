package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	dataPath string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "healthcenter",
	Short: "Query and check the health center dataset from the command line",
	Long: `healthcenter runs the same lookup pipeline as the chat API against a
local dataset file. Use "ask" to answer one message and "check" to audit the
dataset for dropped rows and near-duplicate center names.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "dataset CSV (overrides data.path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
