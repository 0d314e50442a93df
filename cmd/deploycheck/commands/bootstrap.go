package commands

import (
	"github.com/spf13/cobra"

	"github.com/zmasarw3h/munero-deploycheck/pkg/bootstrap"
	"github.com/zmasarw3h/munero-deploycheck/pkg/util"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Install and enable the Docker engine on this machine",
	Long: `Idempotently installs the Docker engine, CLI, containerd and the
buildx/compose plugins from the vendor repository, enables the service
and grants the invoking user runtime access. Re-execs itself under sudo
when not already root. Safe to re-run; nothing is ever rolled back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootstrap.EnsureRoot(); err != nil {
			return err
		}

		installer := bootstrap.NewInstaller(util.ExecRunner{})
		return installer.Run(cmd.Context())
	},
}
