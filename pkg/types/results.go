package types

import "time"

type CheckResult struct {
	Check     string                 `json:"check"`
	Target    string                 `json:"target,omitempty"`
	Status    CheckStatus            `json:"status"`
	Advisory  bool                   `json:"advisory,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Duration  time.Duration          `json:"duration"`
}

type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusFail    CheckStatus = "fail"
	StatusSkipped CheckStatus = "skipped"
)

// RunSummary aggregates the ordered results of one stage invocation.
// Advisory results count toward the totals but never toward the exit code.
type RunSummary struct {
	RunID     string        `json:"run_id"`
	Stage     string        `json:"stage"`
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Results   []CheckResult `json:"results"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Add appends a result and updates the counters.
func (s *RunSummary) Add(result *CheckResult) {
	s.Results = append(s.Results, *result)
	s.Total++
	switch result.Status {
	case StatusFail:
		s.Failed++
	case StatusSkipped:
		s.Skipped++
	default:
		s.Passed++
	}
}

type DNSDetails struct {
	Resolver   string  `json:"resolver"`
	Query      string  `json:"query"`
	ResolvedIP string  `json:"resolved_ip,omitempty"`
	ExpectedIP string  `json:"expected_ip,omitempty"`
	LatencyMS  float64 `json:"latency_ms"`
}

type PingDetails struct {
	PacketsSent     int     `json:"packets_sent"`
	PacketsReceived int     `json:"packets_received"`
	PacketLoss      float64 `json:"packet_loss_percent"`
	AvgLatencyMS    float64 `json:"avg_latency_ms"`
}

type RuntimeDetails struct {
	Installed      bool   `json:"installed"`
	Version        string `json:"version,omitempty"`
	ComposeVersion string `json:"compose_version,omitempty"`
}

type EndpointDetails struct {
	URL            string  `json:"url"`
	StatusCode     int     `json:"status_code,omitempty"`
	ReportedStatus string  `json:"reported_status,omitempty"`
	LatencyMS      float64 `json:"latency_ms"`
}
