package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zmasarw3h/munero-deploycheck/pkg/config"
	"github.com/zmasarw3h/munero-deploycheck/pkg/output"
	"github.com/zmasarw3h/munero-deploycheck/pkg/preflight"
	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Verify the target VM is ready for deployment",
	Long: `Resolves the target domain through the available lookup tools and,
when EXPECTED_IP is set, requires an exact match. Container runtime
presence and sensitive listening ports are reported for operator review
but never affect the outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		config.BindFlags(v, cmd.Flags())

		debug, _ := cmd.Flags().GetBool("debug")
		format, _ := cmd.Flags().GetString("output")

		summary, err := preflight.Run(cmd.Context(), preflight.Options{
			Target: config.TargetFrom(v),
			Debug:  debug,
		})

		if summary != nil {
			if perr := output.PrintSummary(summary, format); perr != nil && err == nil {
				err = perr
			}
		}

		var ce *types.ConfigError
		if errors.As(err, &ce) {
			return usageError(cmd, err)
		}
		return err
	},
}

func init() {
	preflightCmd.Flags().String("domain", "", "Target domain name (env DEMO_DOMAIN)")
	preflightCmd.Flags().String("expected-ip", "", "Expected IPv4 address (env EXPECTED_IP)")
}
