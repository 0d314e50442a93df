package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zmasarw3h/munero-deploycheck/pkg/config"
	"github.com/zmasarw3h/munero-deploycheck/pkg/output"
	"github.com/zmasarw3h/munero-deploycheck/pkg/smoke"
	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Exercise the deployed service's endpoints over authenticated HTTPS",
	Long: `Issues authenticated GET requests against /health and the API test
endpoints in order, stopping at the first transport failure or non-2xx
response. The base URL defaults to https://<DEMO_DOMAIN> unless BASE_URL
is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		config.BindFlags(v, cmd.Flags())

		format, _ := cmd.Flags().GetString("output")

		runner := smoke.NewRunner(config.TargetFrom(v), config.CredentialsFrom(v))
		summary, err := runner.Run(cmd.Context())

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
	smokeCmd.Flags().String("domain", "", "Target domain name (env DEMO_DOMAIN)")
	smokeCmd.Flags().String("base-url", "", "Explicit base URL override (env BASE_URL)")
	smokeCmd.Flags().String("user", "", "Basic-auth username (env BASIC_AUTH_USER)")
	smokeCmd.Flags().String("password", "", "Basic-auth password (env BASIC_AUTH_PASSWORD)")
	smokeCmd.Flags().Bool("insecure", false, "Skip TLS certificate verification (env INSECURE_TLS)")
}
