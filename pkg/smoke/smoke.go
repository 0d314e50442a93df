// Package smoke exercises the deployed service's externally visible
// endpoints over authenticated HTTPS and fails fast on the first problem.
package smoke

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/zmasarw3h/munero-deploycheck/pkg/logging"
	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

const (
	ConnectTimeout = 5 * time.Second
	TotalTimeout   = 30 * time.Second
)

// DefaultEndpoints are probed in order. Ordering matters for diagnostic
// value: a dead /health is reported before the API endpoints are touched.
var DefaultEndpoints = []string{
	"/health",
	"/api/dashboard/test",
	"/api/chat/test",
}

type Runner struct {
	Target    types.Target
	Creds     types.Credentials
	Endpoints []string
	Client    *resty.Client
}

func NewRunner(target types.Target, creds types.Credentials) *Runner {
	return &Runner{
		Target:    target,
		Creds:     creds,
		Endpoints: DefaultEndpoints,
		Client:    NewClient(target.InsecureTLS),
	}
}

// NewClient builds the HTTP client: bounded connect and total timeouts,
// TLS 1.2 floor, certificate verification skipped only when asked.
func NewClient(insecure bool) *resty.Client {
	dialer := &net.Dialer{Timeout: ConnectTimeout}
	transport := &http.Transport{
		DialContext: dialer.DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, // #nosec G402 -- explicit operator opt-in for self-signed staging certs
		},
	}

	c := resty.New()
	c.SetTransport(transport)
	c.SetTimeout(TotalTimeout)
	return c
}

// Run validates inputs before any network activity, then probes each
// endpoint in order. The first failure aborts the remaining probes.
func (r *Runner) Run(ctx context.Context) (*types.RunSummary, error) {
	if !r.Creds.Complete() {
		return nil, types.NewConfigError("basic-auth credentials are required (set BASIC_AUTH_USER and BASIC_AUTH_PASSWORD)")
	}
	base := r.Target.ResolveBaseURL()
	if base == "" {
		return nil, types.NewConfigError("target is required (set BASE_URL or DEMO_DOMAIN)")
	}

	summary := &types.RunSummary{
		RunID:     uuid.New().String(),
		Stage:     "smoke",
		StartTime: time.Now(),
	}
	log := logging.L.WithFields(logrus.Fields{
		"run_id": summary.RunID,
		"stage":  summary.Stage,
		"base":   base,
	})

	for _, path := range r.Endpoints {
		result, err := r.probe(ctx, base, path)
		summary.Add(result)

		if err != nil {
			log.WithField("path", path).Error(result.Error)
			summary.EndTime = time.Now()
			summary.Duration = summary.EndTime.Sub(summary.StartTime)
			return summary, err
		}
		log.WithField("path", path).Info("ok")
	}

	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)
	return summary, nil
}

func (r *Runner) probe(ctx context.Context, base, path string) (*types.CheckResult, error) {
	url := base + path
	result := &types.CheckResult{
		Check:     "endpoint " + path,
		Target:    url,
		Status:    types.StatusPass,
		Details:   make(map[string]interface{}),
		StartTime: time.Now(),
	}
	details := types.EndpointDetails{URL: url}

	resp, err := r.Client.R().
		SetContext(ctx).
		SetBasicAuth(r.Creds.Username, r.Creds.Password).
		Get(url)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	details.LatencyMS = float64(result.Duration.Microseconds()) / 1000.0

	if err != nil {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("%s unreachable: %v", path, err)
		result.Details["endpoint"] = details
		return result, types.NewDependencyError("endpoint "+path, err)
	}

	details.StatusCode = resp.StatusCode()
	if path == "/health" {
		if status := gjson.GetBytes(resp.Body(), "status"); status.Exists() {
			details.ReportedStatus = status.String()
		}
	}
	result.Details["endpoint"] = details

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("%s returned %d", path, resp.StatusCode())
		return result, types.NewVerifyError("endpoint "+path, "2xx status", fmt.Sprintf("%d", resp.StatusCode()))
	}

	return result, nil
}
