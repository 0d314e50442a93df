// Package preflight answers "is this machine ready to receive or already
// serving the expected deployment?" at the DNS level, with advisory
// runtime and port visibility for the operator.
package preflight

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zmasarw3h/munero-deploycheck/pkg/checks"
	"github.com/zmasarw3h/munero-deploycheck/pkg/logging"
	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
	"github.com/zmasarw3h/munero-deploycheck/pkg/util"
)

type Options struct {
	Target types.Target
	Runner util.Runner
	Debug  bool

	// Chain overrides the resolver fallback chain, used by tests.
	Chain []checks.Resolver
}

// Run executes the preflight stage: the required DNS check first, then the
// advisory checks. The returned summary always contains every result that
// was produced, including the failing one.
func Run(ctx context.Context, opts Options) (*types.RunSummary, error) {
	if opts.Target.Domain == "" {
		return nil, types.NewConfigError("domain is required (set DEMO_DOMAIN or --domain)")
	}

	runner := opts.Runner
	if runner == nil {
		runner = util.ExecRunner{}
	}
	chain := opts.Chain
	if chain == nil {
		chain = checks.DefaultResolverChain(runner)
	}

	summary := &types.RunSummary{
		RunID:     uuid.New().String(),
		Stage:     "preflight",
		StartTime: time.Now(),
	}
	log := logging.L.WithFields(logrus.Fields{
		"run_id": summary.RunID,
		"stage":  summary.Stage,
		"domain": opts.Target.Domain,
	})

	dns := checks.NewDNSCheck(chain, opts.Target.ExpectedIP)
	dnsCtx, cancel := context.WithTimeout(ctx, checks.DefaultCheckTimeout)
	result, err := dns.Run(dnsCtx, opts.Target.Domain)
	cancel()
	finish(summary, result)

	if err != nil {
		log.WithField("check", dns.Name()).Error(result.Error)
		closeSummary(summary)
		return summary, err
	}

	resolvedIP := resolvedFrom(result)
	log.Infof("DNS OK: %s resolves to %s", opts.Target.Domain, resolvedIP)

	// Everything past this point is operator visibility only and must not
	// change the exit code.
	advisory := []struct {
		check  checks.Check
		target string
	}{
		{checks.NewPingCheck(0), resolvedIP},
		{checks.NewRuntimeCheck(runner), "localhost"},
		{checks.NewListenPortsCheck(runner, nil), "localhost"},
	}

	for _, a := range advisory {
		res := checks.RunWithTimeout(a.check, a.target, checks.DefaultPingTimeout)
		summary.Add(res)

		checkLog := log.WithField("check", a.check.Name())
		if res.Status == types.StatusPass {
			if detail := a.check.FormatSummary(res.Details, opts.Debug); detail != "" {
				checkLog.Info(detail)
			}
		} else {
			checkLog.Warnf("advisory check did not pass: %s", res.Error)
		}
	}

	closeSummary(summary)
	return summary, nil
}

func finish(summary *types.RunSummary, result *types.CheckResult) {
	if result.StartTime.IsZero() {
		result.StartTime = summary.StartTime
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
	}
	summary.Add(result)
}

func closeSummary(summary *types.RunSummary) {
	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)
}

func resolvedFrom(result *types.CheckResult) string {
	dns, ok := result.Details["dns"].(types.DNSDetails)
	if !ok {
		return ""
	}
	return dns.ResolvedIP
}
