package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

// DNSCheck resolves the target domain through the resolver chain and,
// when an expected IP is configured, requires an exact match.
type DNSCheck struct {
	Chain      []Resolver
	ExpectedIP string
}

func NewDNSCheck(chain []Resolver, expectedIP string) *DNSCheck {
	return &DNSCheck{Chain: chain, ExpectedIP: expectedIP}
}

func (c *DNSCheck) Name() string {
	return "dns"
}

func (c *DNSCheck) Run(ctx context.Context, target string) (*types.CheckResult, error) {
	result := &types.CheckResult{
		Check:   c.Name(),
		Target:  target,
		Status:  types.StatusPass,
		Details: make(map[string]interface{}),
	}

	details := types.DNSDetails{
		Query:      target,
		ExpectedIP: c.ExpectedIP,
	}

	start := time.Now()
	ip, resolverName, err := ResolveIPv4(ctx, c.Chain, target)
	details.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		result.Status = types.StatusFail
		result.Error = err.Error()
		result.Details["dns"] = details
		return result, err
	}

	details.Resolver = resolverName
	details.ResolvedIP = ip
	result.Details["dns"] = details

	if c.ExpectedIP != "" && ip != c.ExpectedIP {
		result.Status = types.StatusFail
		verr := types.NewVerifyError("dns", c.ExpectedIP, ip)
		result.Error = verr.Error()
		return result, verr
	}

	return result, nil
}

func (c *DNSCheck) Advisory() bool {
	return false
}

func (c *DNSCheck) FormatSummary(details map[string]interface{}, debug bool) string {
	var resolved, resolver, expected string
	var latency float64

	switch dns := details["dns"].(type) {
	case types.DNSDetails:
		resolved, resolver, expected, latency = dns.ResolvedIP, dns.Resolver, dns.ExpectedIP, dns.LatencyMS
	case map[string]interface{}:
		resolved, _ = dns["resolved_ip"].(string)
		resolver, _ = dns["resolver"].(string)
		expected, _ = dns["expected_ip"].(string)
		latency, _ = dns["latency_ms"].(float64)
	default:
		return ""
	}

	summary := fmt.Sprintf("resolved %s via %s", resolved, resolver)
	if expected != "" {
		summary += fmt.Sprintf(", expected %s", expected)
	}
	if debug {
		summary += fmt.Sprintf(" (%.2fms)", latency)
	}
	return summary
}
