// Package cli implements the ece command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ece",
	Short: "Evidence coverage evaluator for RAG answers",
	Long: `ece measures how well a generated answer is grounded in its retrieved
passages.

It splits the answer into atomic claims, retrieves candidate evidence for
each claim, judges entailment with either a local NLI model or a generative
judge, checks inline citations against the evidence that actually supports
each claim, and aggregates everything into a coverage score with
actionable feedback.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ece v" + version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "evaluator config file (default: configs/evaluator.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig points the config loader at the chosen file and reads in
// environment variables matching ECE_*
func initConfig() {
	if cfgFile != "" {
		os.Setenv("EVALUATOR_CONFIG_PATH", cfgFile)
	}

	viper.SetEnvPrefix("ECE")
	viper.AutomaticEnv()
}
