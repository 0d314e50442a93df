package checks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

func TestDNSCheck_PassWithoutExpectedIP(t *testing.T) {
	chain := []Resolver{&fakeResolver{name: "dig", available: true, ip: "203.0.113.5"}}
	check := NewDNSCheck(chain, "")

	result, err := check.Run(context.Background(), "demo.example.com")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Status != types.StatusPass {
		t.Errorf("expected pass, got %s", result.Status)
	}

	details := result.Details["dns"].(types.DNSDetails)
	if details.ResolvedIP != "203.0.113.5" {
		t.Errorf("expected resolved IP in details, got %q", details.ResolvedIP)
	}
}

func TestDNSCheck_ExpectedIPMatch(t *testing.T) {
	chain := []Resolver{&fakeResolver{name: "dig", available: true, ip: "203.0.113.5"}}
	check := NewDNSCheck(chain, "203.0.113.5")

	result, err := check.Run(context.Background(), "demo.example.com")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Status != types.StatusPass {
		t.Errorf("expected pass on exact match, got %s", result.Status)
	}
}

func TestDNSCheck_MismatchCitesBothIPs(t *testing.T) {
	chain := []Resolver{&fakeResolver{name: "dig", available: true, ip: "203.0.113.9"}}
	check := NewDNSCheck(chain, "203.0.113.5")

	result, err := check.Run(context.Background(), "demo.example.com")
	if err == nil {
		t.Fatal("expected error on IP mismatch")
	}

	var verr *types.VerifyError
	if !errors.As(err, &verr) {
		t.Fatalf("expected VerifyError, got %T", err)
	}
	if result.Status != types.StatusFail {
		t.Errorf("expected fail status, got %s", result.Status)
	}
	if !strings.Contains(result.Error, "203.0.113.5") || !strings.Contains(result.Error, "203.0.113.9") {
		t.Errorf("mismatch message must cite both IPs, got: %s", result.Error)
	}
	if types.ExitCode(err) != types.ExitFailure {
		t.Errorf("mismatch must map to exit %d", types.ExitFailure)
	}
}

func TestDNSCheck_ResolutionFailure(t *testing.T) {
	chain := []Resolver{&fakeResolver{name: "dig", available: true, err: errors.New("NXDOMAIN")}}
	check := NewDNSCheck(chain, "")

	result, err := check.Run(context.Background(), "missing.example.com")
	if err == nil {
		t.Fatal("expected error when resolution fails")
	}
	if result.Status != types.StatusFail {
		t.Errorf("expected fail status, got %s", result.Status)
	}
}
