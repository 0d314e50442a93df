package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zmasarw3h/munero-deploycheck/pkg/logging"
)

var (
	version   string
	commit    string
	buildDate string
)

func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

var rootCmd = &cobra.Command{
	Use:   "deploycheck",
	Short: "Deployment verification pipeline for the Munero platform",
	Long: `Verifies a platform deployment end to end: preflight confirms the
target VM is reachable and correctly configured, bootstrap installs the
container runtime, and smoke exercises the deployed service's endpoints.
Each stage runs once, to completion or first failure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logging.SetLevel("debug")
		} else {
			logging.SetLevel(os.Getenv("LOG_LEVEL"))
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(preflightCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(smokeCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
}

// usageError prints usage for the command before returning the error, so
// missing-input failures always show the operator what was expected.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(os.Stderr, cmd.UsageString())
	return err
}
