package types

import "strings"

// Target describes the machine and service under verification.
// It is immutable for the duration of one pipeline run and is never persisted.
type Target struct {
	Domain      string `json:"domain"`
	ExpectedIP  string `json:"expected_ip,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`
	InsecureTLS bool   `json:"insecure_tls,omitempty"`
}

// ResolveBaseURL returns the explicit base URL override when set,
// otherwise https://<domain>. Empty when neither input was supplied.
func (t Target) ResolveBaseURL() string {
	if u := strings.TrimRight(strings.TrimSpace(t.BaseURL), "/"); u != "" {
		return u
	}
	if t.Domain == "" {
		return ""
	}
	return "https://" + t.Domain
}

// Credentials carry the basic-auth pair for the smoke test runner.
// They are transport-layer only: never logged, never persisted.
type Credentials struct {
	Username string
	Password string
}

// String keeps credentials out of accidental %v/%s formatting.
func (c Credentials) String() string {
	return "credentials{***}"
}

// Complete reports whether both halves of the pair are present.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}
