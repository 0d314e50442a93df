package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
	"github.com/zmasarw3h/munero-deploycheck/pkg/util"
)

const DefaultOSReleasePath = "/etc/os-release"

// ParseOSRelease parses os-release KEY=value content, stripping quotes.
func ParseOSRelease(content string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = strings.Trim(value, `"'`)
	}
	return values
}

// SupportedPlatform reports whether the identification metadata matches
// the debian family the installer targets.
func SupportedPlatform(osRelease map[string]string) bool {
	id := strings.ToLower(osRelease["ID"])
	if id == "debian" || id == "ubuntu" {
		return true
	}
	return strings.Contains(strings.ToLower(osRelease["ID_LIKE"]), "debian")
}

// CodenameProbe detects the OS release codename. Like the DNS resolvers,
// probes form a fallback chain tried in priority order.
type CodenameProbe interface {
	Name() string
	Codename(ctx context.Context) (string, error)
}

// LSBReleaseProbe shells out to lsb_release, the preferred source.
type LSBReleaseProbe struct {
	Runner util.Runner
}

func (p *LSBReleaseProbe) Name() string {
	return "lsb_release"
}

func (p *LSBReleaseProbe) Codename(ctx context.Context) (string, error) {
	if !util.HasCommand("lsb_release") {
		return "", fmt.Errorf("lsb_release not installed")
	}
	out, err := p.Runner.Output(ctx, "lsb_release", "-cs")
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("lsb_release returned no codename")
	}
	return out, nil
}

// OSReleaseProbe reads VERSION_CODENAME from the release metadata file.
type OSReleaseProbe struct {
	Path string
}

func (p *OSReleaseProbe) Name() string {
	return "os-release"
}

func (p *OSReleaseProbe) Codename(ctx context.Context) (string, error) {
	path := p.Path
	if path == "" {
		path = DefaultOSReleasePath
	}
	content, err := util.ReadTrimmed(path)
	if err != nil {
		return "", err
	}

	values := ParseOSRelease(content)
	if codename := values["VERSION_CODENAME"]; codename != "" {
		return codename, nil
	}
	if codename := values["UBUNTU_CODENAME"]; codename != "" {
		return codename, nil
	}
	return "", fmt.Errorf("no VERSION_CODENAME in %s", path)
}

// DetectCodename walks the probe chain; all probes failing is terminal
// because the package repository cannot be registered without a codename.
func DetectCodename(ctx context.Context, probes []CodenameProbe) (string, error) {
	var attempts []string
	for _, probe := range probes {
		codename, err := probe.Codename(ctx)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", probe.Name(), err))
			continue
		}
		return codename, nil
	}
	return "", types.NewDependencyError("release codename",
		fmt.Errorf("all probes failed: %s", strings.Join(attempts, "; ")))
}
