package checks

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
	"github.com/zmasarw3h/munero-deploycheck/pkg/util"
)

// ListenPortsCheck snapshots local listening sockets on the sensitive port
// set for operator review. Advisory: nothing is validated against a policy.
type ListenPortsCheck struct {
	Runner util.Runner
	Ports  []types.SensitivePort
}

func NewListenPortsCheck(runner util.Runner, ports []types.SensitivePort) *ListenPortsCheck {
	if len(ports) == 0 {
		ports = types.SensitivePorts()
	}
	return &ListenPortsCheck{Runner: runner, Ports: ports}
}

func (c *ListenPortsCheck) Name() string {
	return "listen-ports"
}

func (c *ListenPortsCheck) Run(ctx context.Context, target string) (*types.CheckResult, error) {
	result := &types.CheckResult{
		Check:    c.Name(),
		Target:   "localhost",
		Status:   types.StatusPass,
		Advisory: true,
		Details:  make(map[string]interface{}),
	}

	sockets, tool, err := c.snapshot(ctx)
	if err != nil {
		result.Status = types.StatusSkipped
		result.Error = err.Error()
		return result, nil
	}

	sensitive := types.FilterSensitive(sockets, c.Ports)
	result.Details["sockets"] = sensitive
	result.Details["tool"] = tool
	return result, nil
}

// snapshot tries ss first and falls back to lsof, mirroring the resolver
// chain approach for differently equipped machines.
func (c *ListenPortsCheck) snapshot(ctx context.Context) ([]types.ListenSocket, string, error) {
	if util.HasCommand("ss") {
		out, err := c.Runner.Output(ctx, "ss", "-ltnp")
		if err == nil {
			return ParseSSOutput(out), "ss", nil
		}
	}
	if util.HasCommand("lsof") {
		out, err := c.Runner.Output(ctx, "lsof", "-nP", "-iTCP", "-sTCP:LISTEN")
		if err == nil {
			return ParseLsofOutput(out), "lsof", nil
		}
	}
	return nil, "", fmt.Errorf("neither ss nor lsof produced a socket listing")
}

var ssProcessRe = regexp.MustCompile(`\(\("([^"]+)"`)

// ParseSSOutput parses `ss -ltnp` listing lines into listen sockets.
func ParseSSOutput(out string) []types.ListenSocket {
	var sockets []types.ListenSocket

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] != "LISTEN" {
			continue
		}

		port, ok := portFromAddr(fields[3])
		if !ok {
			continue
		}

		socket := types.ListenSocket{Port: port, Proto: "tcp"}
		if matches := ssProcessRe.FindStringSubmatch(line); len(matches) == 2 {
			socket.Process = matches[1]
		}
		sockets = append(sockets, socket)
	}
	return sockets
}

// ParseLsofOutput parses `lsof -nP -iTCP -sTCP:LISTEN` lines into listen sockets.
func ParseLsofOutput(out string) []types.ListenSocket {
	var sockets []types.ListenSocket

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 9 || fields[0] == "COMMAND" {
			continue
		}

		port, ok := portFromAddr(fields[8])
		if !ok {
			continue
		}
		sockets = append(sockets, types.ListenSocket{
			Port:    port,
			Proto:   "tcp",
			Process: fields[0],
		})
	}
	return sockets
}

// portFromAddr extracts the port from addresses like 0.0.0.0:22, [::]:443 or *:80.
func portFromAddr(addr string) (int, bool) {
	idx := strings.LastIndex(addr, ":")
	if idx < 0 || idx == len(addr)-1 {
		return 0, false
	}
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil {
		return 0, false
	}
	return port, true
}

func (c *ListenPortsCheck) Advisory() bool {
	return true
}

func (c *ListenPortsCheck) FormatSummary(details map[string]interface{}, debug bool) string {
	socketsRaw, ok := details["sockets"].([]interface{})
	if !ok {
		if sockets, ok := details["sockets"].([]types.ListenSocket); ok {
			return formatSockets(sockets)
		}
		return "no sensitive ports in use"
	}

	var sockets []types.ListenSocket
	for _, raw := range socketsRaw {
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		port, _ := m["port"].(float64)
		process, _ := m["process"].(string)
		sockets = append(sockets, types.ListenSocket{Port: int(port), Process: process})
	}
	return formatSockets(sockets)
}

func formatSockets(sockets []types.ListenSocket) string {
	if len(sockets) == 0 {
		return "no sensitive ports in use"
	}

	parts := make([]string, 0, len(sockets))
	for _, s := range sockets {
		if s.Process != "" {
			parts = append(parts, fmt.Sprintf("%d(%s)", s.Port, s.Process))
		} else {
			parts = append(parts, strconv.Itoa(s.Port))
		}
	}
	return "listening: " + strings.Join(parts, ", ")
}
