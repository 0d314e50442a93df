package checks

import (
	"context"
	"fmt"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
	"github.com/zmasarw3h/munero-deploycheck/pkg/util"
)

// RuntimeCheck reports whether the container runtime and its compose
// subsystem are installed on this machine. Advisory: a bare machine is a
// valid preflight target, the operator just wants to know.
type RuntimeCheck struct {
	Runner util.Runner
}

func NewRuntimeCheck(runner util.Runner) *RuntimeCheck {
	return &RuntimeCheck{Runner: runner}
}

func (c *RuntimeCheck) Name() string {
	return "runtime"
}

func (c *RuntimeCheck) Run(ctx context.Context, target string) (*types.CheckResult, error) {
	result := &types.CheckResult{
		Check:    c.Name(),
		Target:   "localhost",
		Status:   types.StatusPass,
		Advisory: true,
		Details:  make(map[string]interface{}),
	}

	details := types.RuntimeDetails{}

	version, err := c.Runner.Output(ctx, "docker", "--version")
	if err != nil {
		result.Status = types.StatusSkipped
		result.Error = "docker not installed"
		result.Details["runtime"] = details
		return result, nil
	}
	details.Installed = true
	details.Version = version

	compose, err := c.Runner.Output(ctx, "docker", "compose", "version")
	if err != nil {
		result.Error = "compose plugin not installed"
	} else {
		details.ComposeVersion = compose
	}

	result.Details["runtime"] = details
	return result, nil
}

func (c *RuntimeCheck) Advisory() bool {
	return true
}

func (c *RuntimeCheck) FormatSummary(details map[string]interface{}, debug bool) string {
	var installed bool
	var version, compose string

	switch rt := details["runtime"].(type) {
	case types.RuntimeDetails:
		installed, version, compose = rt.Installed, rt.Version, rt.ComposeVersion
	case map[string]interface{}:
		installed, _ = rt["installed"].(bool)
		version, _ = rt["version"].(string)
		compose, _ = rt["compose_version"].(string)
	default:
		return ""
	}

	if !installed {
		return "docker not installed"
	}
	if compose == "" {
		return fmt.Sprintf("%s (compose plugin missing)", version)
	}
	if debug {
		return fmt.Sprintf("%s | %s", version, compose)
	}
	return version
}
