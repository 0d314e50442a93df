package types

// SensitivePort is a well-known local port worth surfacing to the operator
// before a deployment. The set is fixed and purely informational.
type SensitivePort struct {
	Port int    `json:"port"`
	Name string `json:"name"`
}

// ListenSocket is one observed local listening socket.
type ListenSocket struct {
	Port    int    `json:"port"`
	Proto   string `json:"proto"`
	Process string `json:"process,omitempty"`
}

func SensitivePorts() []SensitivePort {
	return []SensitivePort{
		{Port: 22, Name: "ssh"},
		{Port: 80, Name: "http"},
		{Port: 443, Name: "https"},
		{Port: 3000, Name: "frontend"},
		{Port: 8000, Name: "backend-api"},
		{Port: 11434, Name: "ollama"},
	}
}

// FilterSensitive keeps only the sockets listening on a sensitive port.
func FilterSensitive(sockets []ListenSocket, sensitive []SensitivePort) []ListenSocket {
	byPort := make(map[int]struct{}, len(sensitive))
	for _, p := range sensitive {
		byPort[p.Port] = struct{}{}
	}

	var filtered []ListenSocket
	for _, s := range sockets {
		if _, ok := byPort[s.Port]; ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
