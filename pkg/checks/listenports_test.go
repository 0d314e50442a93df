package checks

import (
	"testing"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

const ssFixture = `State   Recv-Q  Send-Q  Local Address:Port  Peer Address:Port  Process
LISTEN  0       4096    0.0.0.0:22          0.0.0.0:*          users:(("sshd",pid=812,fd=3))
LISTEN  0       511     0.0.0.0:443         0.0.0.0:*          users:(("nginx",pid=1201,fd=6))
LISTEN  0       4096    127.0.0.1:5432      0.0.0.0:*          users:(("postgres",pid=990,fd=5))
LISTEN  0       4096    [::]:8000           [::]:*             users:(("uvicorn",pid=1500,fd=8))
ESTAB   0       0       10.0.0.5:22         10.0.0.9:51234     users:(("sshd",pid=2001,fd=4))`

const lsofFixture = `COMMAND   PID     USER   FD   TYPE DEVICE SIZE/OFF NODE NAME
sshd      812     root    3u  IPv4  20001      0t0  TCP *:22 (LISTEN)
nginx     1201    www     6u  IPv4  20002      0t0  TCP *:443 (LISTEN)
ollama    1900    ollama  3u  IPv6  20003      0t0  TCP [::1]:11434 (LISTEN)`

func TestParseSSOutput(t *testing.T) {
	sockets := ParseSSOutput(ssFixture)
	if len(sockets) != 4 {
		t.Fatalf("expected 4 listening sockets, got %d", len(sockets))
	}

	byPort := make(map[int]types.ListenSocket)
	for _, s := range sockets {
		byPort[s.Port] = s
	}

	if byPort[22].Process != "sshd" {
		t.Errorf("expected sshd on 22, got %q", byPort[22].Process)
	}
	if byPort[8000].Process != "uvicorn" {
		t.Errorf("expected uvicorn on 8000, got %q", byPort[8000].Process)
	}
	if _, ok := byPort[51234]; ok {
		t.Error("established connections must not be reported as listeners")
	}
}

func TestParseLsofOutput(t *testing.T) {
	sockets := ParseLsofOutput(lsofFixture)
	if len(sockets) != 3 {
		t.Fatalf("expected 3 listening sockets, got %d", len(sockets))
	}
	if sockets[2].Port != 11434 || sockets[2].Process != "ollama" {
		t.Errorf("expected ollama on 11434, got %+v", sockets[2])
	}
}

func TestFilterSensitive(t *testing.T) {
	sockets := ParseSSOutput(ssFixture)
	sensitive := types.FilterSensitive(sockets, types.SensitivePorts())

	ports := make(map[int]bool)
	for _, s := range sensitive {
		ports[s.Port] = true
	}

	for _, want := range []int{22, 443, 8000} {
		if !ports[want] {
			t.Errorf("expected sensitive port %d in snapshot", want)
		}
	}
	if ports[5432] {
		t.Error("5432 is not in the sensitive set and must be filtered out")
	}
}

func TestListenPortsCheck_IsAdvisory(t *testing.T) {
	check := NewListenPortsCheck(nil, nil)
	if !check.Advisory() {
		t.Error("listen-ports must be advisory")
	}
}
