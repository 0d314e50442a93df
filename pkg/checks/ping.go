package checks

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

// DefaultPingCount is the number of probe packets per reachability check.
const DefaultPingCount = 3

// PingCheck is an advisory ICMP reachability probe of the resolved address.
// It runs unprivileged (UDP sockets) so preflight works without CAP_NET_RAW.
type PingCheck struct {
	Count int
}

func NewPingCheck(count int) *PingCheck {
	if count == 0 {
		count = DefaultPingCount
	}
	return &PingCheck{Count: count}
}

func (c *PingCheck) Name() string {
	return "reachability"
}

func (c *PingCheck) Run(ctx context.Context, target string) (*types.CheckResult, error) {
	result := &types.CheckResult{
		Check:    c.Name(),
		Target:   target,
		Status:   types.StatusPass,
		Advisory: true,
	}

	pinger, err := probing.NewPinger(target)
	if err != nil {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("failed to create pinger: %v", err)
		return result, nil
	}

	pinger.SetPrivileged(false)
	pinger.Count = c.Count
	pinger.Timeout = time.Duration(c.Count) * 2 * time.Second
	pinger.Interval = 200 * time.Millisecond

	if err := pinger.RunWithContext(ctx); err != nil {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("ping failed: %v", err)
		return result, nil
	}

	stats := pinger.Statistics()
	details := types.PingDetails{
		PacketsSent:     stats.PacketsSent,
		PacketsReceived: stats.PacketsRecv,
		PacketLoss:      stats.PacketLoss,
		AvgLatencyMS:    float64(stats.AvgRtt.Microseconds()) / 1000.0,
	}

	if details.PacketsReceived == 0 {
		result.Status = types.StatusFail
		result.Error = "no ping replies received"
	}

	result.Details = map[string]interface{}{"ping": details}
	return result, nil
}

func (c *PingCheck) Advisory() bool {
	return true
}

func (c *PingCheck) FormatSummary(details map[string]interface{}, debug bool) string {
	switch ping := details["ping"].(type) {
	case types.PingDetails:
		return fmt.Sprintf("%d sent, %d received, %.1f%% loss, avg %.2fms",
			ping.PacketsSent, ping.PacketsReceived, ping.PacketLoss, ping.AvgLatencyMS)
	case map[string]interface{}:
		sent, _ := ping["packets_sent"].(float64)
		received, _ := ping["packets_received"].(float64)
		loss, _ := ping["packet_loss_percent"].(float64)
		avg, _ := ping["avg_latency_ms"].(float64)
		return fmt.Sprintf("%.0f sent, %.0f received, %.1f%% loss, avg %.2fms", sent, received, loss, avg)
	}
	return ""
}
