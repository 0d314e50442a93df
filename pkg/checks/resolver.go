package checks

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
	"github.com/zmasarw3h/munero-deploycheck/pkg/util"
)

// Resolver resolves a domain name to a single IPv4 address. Implementations
// form a fallback chain tried in priority order, so a machine missing one
// lookup tool still resolves through the next.
type Resolver interface {
	Name() string
	Available() bool
	LookupIPv4(ctx context.Context, domain string) (string, error)
}

// DigResolver shells out to dig, the preferred tool when present.
type DigResolver struct {
	Runner util.Runner
}

func (r *DigResolver) Name() string {
	return "dig"
}

func (r *DigResolver) Available() bool {
	return util.HasCommand("dig")
}

func (r *DigResolver) LookupIPv4(ctx context.Context, domain string) (string, error) {
	out, err := r.Runner.Output(ctx, "dig", "+short", "A", domain)
	if err != nil {
		return "", fmt.Errorf("dig failed: %w", err)
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if ip := net.ParseIP(line); ip != nil && ip.To4() != nil {
			return line, nil
		}
	}
	return "", fmt.Errorf("dig returned no A record for %s", domain)
}

// SystemResolver uses the process's own resolver library binding.
type SystemResolver struct {
	Resolver *net.Resolver
}

func (r *SystemResolver) Name() string {
	return "system"
}

func (r *SystemResolver) Available() bool {
	return true
}

func (r *SystemResolver) LookupIPv4(ctx context.Context, domain string) (string, error) {
	resolver := r.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	ips, err := resolver.LookupIP(ctx, "ip4", domain)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("no IPv4 address for %s", domain)
	}
	return ips[0].String(), nil
}

var hostAddressRe = regexp.MustCompile(`has address (\d+\.\d+\.\d+\.\d+)`)

// HostResolver shells out to the generic host lookup tool, the last fallback.
type HostResolver struct {
	Runner util.Runner
}

func (r *HostResolver) Name() string {
	return "host"
}

func (r *HostResolver) Available() bool {
	return util.HasCommand("host")
}

func (r *HostResolver) LookupIPv4(ctx context.Context, domain string) (string, error) {
	out, err := r.Runner.Output(ctx, "host", "-t", "A", domain)
	if err != nil {
		return "", fmt.Errorf("host failed: %w", err)
	}
	matches := hostAddressRe.FindStringSubmatch(out)
	if len(matches) < 2 {
		return "", fmt.Errorf("host returned no A record for %s", domain)
	}
	return matches[1], nil
}

// DefaultResolverChain returns the resolution fallback chain in priority
// order: dig, then the system resolver, then host.
func DefaultResolverChain(runner util.Runner) []Resolver {
	return []Resolver{
		&DigResolver{Runner: runner},
		&SystemResolver{},
		&HostResolver{Runner: runner},
	}
}

// ResolveIPv4 walks the chain until one resolver succeeds. It returns the
// resolved address and the name of the resolver that produced it.
func ResolveIPv4(ctx context.Context, chain []Resolver, domain string) (string, string, error) {
	var attempts []string
	available := 0

	for _, resolver := range chain {
		if !resolver.Available() {
			continue
		}
		available++

		ip, err := resolver.LookupIPv4(ctx, domain)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", resolver.Name(), err))
			continue
		}
		return ip, resolver.Name(), nil
	}

	if available == 0 {
		return "", "", types.NewDependencyError("dns lookup tool", fmt.Errorf("no resolver available for %s", domain))
	}
	return "", "", fmt.Errorf("could not resolve %s: %s", domain, strings.Join(attempts, "; "))
}
