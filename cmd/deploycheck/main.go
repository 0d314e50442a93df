package main

import (
	"fmt"
	"os"

	"github.com/zmasarw3h/munero-deploycheck/cmd/deploycheck/commands"
	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

// Version information (set via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, buildDate)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(types.ExitCode(err))
	}
}
