package checks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

type fakeResolver struct {
	name      string
	available bool
	ip        string
	err       error
	calls     int
}

func (f *fakeResolver) Name() string {
	return f.name
}

func (f *fakeResolver) Available() bool {
	return f.available
}

func (f *fakeResolver) LookupIPv4(ctx context.Context, domain string) (string, error) {
	f.calls++
	return f.ip, f.err
}

func TestResolveIPv4_FirstAvailableWins(t *testing.T) {
	first := &fakeResolver{name: "dig", available: true, ip: "203.0.113.5"}
	second := &fakeResolver{name: "system", available: true, ip: "203.0.113.9"}

	ip, via, err := ResolveIPv4(context.Background(), []Resolver{first, second}, "demo.example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ip != "203.0.113.5" {
		t.Errorf("expected first resolver's answer, got %s", ip)
	}
	if via != "dig" {
		t.Errorf("expected resolver name dig, got %s", via)
	}
	if second.calls != 0 {
		t.Errorf("second resolver should not have been tried, got %d calls", second.calls)
	}
}

func TestResolveIPv4_FallsThroughChain(t *testing.T) {
	unavailable := &fakeResolver{name: "dig", available: false}
	failing := &fakeResolver{name: "system", available: true, err: errors.New("no such host")}
	last := &fakeResolver{name: "host", available: true, ip: "198.51.100.7"}

	ip, via, err := ResolveIPv4(context.Background(), []Resolver{unavailable, failing, last}, "demo.example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ip != "198.51.100.7" || via != "host" {
		t.Errorf("expected fallback answer from host, got %s via %s", ip, via)
	}
	if unavailable.calls != 0 {
		t.Error("unavailable resolver must be skipped without a lookup")
	}
}

func TestResolveIPv4_AllFail(t *testing.T) {
	a := &fakeResolver{name: "dig", available: true, err: errors.New("SERVFAIL")}
	b := &fakeResolver{name: "system", available: true, err: errors.New("no such host")}

	_, _, err := ResolveIPv4(context.Background(), []Resolver{a, b}, "demo.example.com")
	if err == nil {
		t.Fatal("expected error when every resolver fails")
	}
	for _, want := range []string{"dig", "SERVFAIL", "system", "no such host"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestResolveIPv4_NoToolAvailable(t *testing.T) {
	a := &fakeResolver{name: "dig", available: false}

	_, _, err := ResolveIPv4(context.Background(), []Resolver{a}, "demo.example.com")
	var depErr *types.DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected DependencyError, got %T: %v", err, err)
	}
	if types.ExitCode(err) != types.ExitFailure {
		t.Errorf("expected exit code %d, got %d", types.ExitFailure, types.ExitCode(err))
	}
}
