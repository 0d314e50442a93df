package checks

import (
	"context"
	"time"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

const (
	// DefaultCheckTimeout is the default timeout for most checks
	DefaultCheckTimeout = 5 * time.Second

	// DefaultPingTimeout is the default timeout for the reachability probe
	DefaultPingTimeout = 10 * time.Second
)

type Check interface {
	Name() string
	Run(ctx context.Context, target string) (*types.CheckResult, error)

	// Advisory returns true for checks whose outcome is informational
	// only and must never change the stage exit code.
	Advisory() bool

	// FormatSummary formats the details for the table output Details column.
	FormatSummary(details map[string]interface{}, debug bool) string
}

// RunWithTimeout runs a check under its own deadline and folds any
// returned error into the result so callers always get a printable result.
func RunWithTimeout(check Check, target string, timeout time.Duration) *types.CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	startTime := time.Now()
	result, err := check.Run(ctx, target)
	endTime := time.Now()

	if result == nil {
		result = &types.CheckResult{
			Check:    check.Name(),
			Target:   target,
			Advisory: check.Advisory(),
		}
	}

	result.StartTime = startTime
	result.EndTime = endTime
	result.Duration = endTime.Sub(startTime)

	if err != nil {
		result.Status = types.StatusFail
		if ctx.Err() == context.DeadlineExceeded {
			result.Error = "timeout after " + timeout.String()
		} else {
			result.Error = err.Error()
		}
	}

	return result
}
