package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel     string // Log verbosity level
	scenarioPath string // Optional YAML scenario file
	seed         int64  // Seed for the run (or master seed for sweeps)
	outputFormat string // yaml, json or summary
	traceLevel   string // none or events
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "stochsim",
	Short: "Discrete-event and Monte-Carlo simulations of small service systems",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario reads --config and applies the persistent flags that were set explicitly.
func loadScenario(cmd *cobra.Command) *Scenario {
	sc, err := LoadScenario(scenarioPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if cmd.Flags().Changed("seed") {
		s := seed
		sc.Seed = &s
	}
	if cmd.Flags().Changed("trace") {
		sc.Trace = traceLevel
	}
	return sc
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "config", "", "Path to a YAML scenario file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for the generator; unset means non-reproducible (sweeps default to 42)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "summary", "Output format (yaml, json, summary)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "none", "Event trace level (none, events)")
}
