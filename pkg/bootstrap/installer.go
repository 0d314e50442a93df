// Package bootstrap turns a bare machine into one with a running, enabled
// Docker engine and compose plugin. Every step is idempotent: the installer
// is designed to be re-run to completion, never rolled back.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/zmasarw3h/munero-deploycheck/pkg/logging"
	"github.com/zmasarw3h/munero-deploycheck/pkg/util"
)

const (
	dockerKeyURL   = "https://download.docker.com/linux/ubuntu/gpg"
	dockerRepoBase = "https://download.docker.com/linux/ubuntu"
)

var enginePackages = []string{
	"docker-ce", "docker-ce-cli", "containerd.io",
	"docker-buildx-plugin", "docker-compose-plugin",
}

type Installer struct {
	Runner util.Runner
	HTTP   *resty.Client
	Log    *logrus.Entry

	OSReleasePath string
	KeyringDir    string
	KeyringPath   string
	RepoListPath  string

	// arch and codename are probed once at the start of a run and carried
	// through rather than re-queried per step.
	arch     string
	codename string
}

func NewInstaller(runner util.Runner) *Installer {
	return &Installer{
		Runner:        runner,
		HTTP:          resty.New().SetTimeout(30 * time.Second),
		Log:           logging.L.WithField("stage", "bootstrap"),
		OSReleasePath: DefaultOSReleasePath,
		KeyringDir:    "/etc/apt/keyrings",
		KeyringPath:   "/etc/apt/keyrings/docker.gpg",
		RepoListPath:  "/etc/apt/sources.list.d/docker.list",
	}
}

// Run executes the installation sequence. The first failing step aborts
// the run; re-running is always safe.
func (in *Installer) Run(ctx context.Context) error {
	in.checkPlatform()

	// apt must not stop to ask questions on a headless machine
	if err := os.Setenv("DEBIAN_FRONTEND", "noninteractive"); err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"refresh package index", in.aptUpdate},
		{"install prerequisites", in.installPrereqs},
		{"import signing key", in.importSigningKey},
		{"detect architecture and codename", in.detectPlatformFacts},
		{"register docker repository", in.registerRepo},
		{"install docker engine", in.installEngine},
		{"enable docker service", in.enableService},
		{"grant group access", in.grantGroupAccess},
		{"verify installation", in.verify},
	}

	for _, step := range steps {
		in.Log.WithField("step", step.name).Info("running")
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("step %q failed: %w", step.name, err)
		}
	}

	in.Log.Info("bootstrap complete")
	return nil
}

// checkPlatform warns on non-debian machines but does not stop: the
// operator may know better than the metadata.
func (in *Installer) checkPlatform() {
	content, err := util.ReadTrimmed(in.OSReleasePath)
	if err != nil {
		in.Log.Warnf("could not read %s: %v, proceeding anyway", in.OSReleasePath, err)
		return
	}
	osRelease := ParseOSRelease(content)
	if !SupportedPlatform(osRelease) {
		in.Log.Warnf("platform %q is not a supported debian family, proceeding anyway", osRelease["ID"])
	}
}

func (in *Installer) aptUpdate(ctx context.Context) error {
	return in.Runner.Run(ctx, "apt-get", "update")
}

func (in *Installer) installPrereqs(ctx context.Context) error {
	return in.Runner.Run(ctx, "apt-get", "install", "-y", "ca-certificates", "curl", "gnupg")
}

// importSigningKey downloads and dearmors the vendor key only when it is
// not already on disk.
func (in *Installer) importSigningKey(ctx context.Context) error {
	if err := os.MkdirAll(in.KeyringDir, 0o755); err != nil {
		return err
	}

	if _, err := os.Stat(in.KeyringPath); err == nil {
		in.Log.WithField("path", in.KeyringPath).Info("signing key already present, skipping import")
		return nil
	}

	resp, err := in.HTTP.R().SetContext(ctx).Get(dockerKeyURL)
	if err != nil {
		return fmt.Errorf("download signing key: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("download signing key: unexpected status %d", resp.StatusCode())
	}

	if err := in.Runner.RunInput(ctx, resp.Body(), "gpg", "--dearmor", "-o", in.KeyringPath); err != nil {
		return fmt.Errorf("dearmor signing key: %w", err)
	}
	return os.Chmod(in.KeyringPath, 0o644)
}

func (in *Installer) detectPlatformFacts(ctx context.Context) error {
	arch, err := in.Runner.Output(ctx, "dpkg", "--print-architecture")
	if err != nil {
		return fmt.Errorf("detect architecture: %w", err)
	}
	in.arch = arch

	codename, err := DetectCodename(ctx, []CodenameProbe{
		&LSBReleaseProbe{Runner: in.Runner},
		&OSReleaseProbe{Path: in.OSReleasePath},
	})
	if err != nil {
		return err
	}
	in.codename = codename

	in.Log.WithFields(logrus.Fields{"arch": arch, "codename": codename}).Info("platform facts")
	return nil
}

// registerRepo writes the apt source entry. Rewriting the same content is
// a no-op, which keeps re-runs safe.
func (in *Installer) registerRepo(ctx context.Context) error {
	if in.arch == "" || in.codename == "" {
		return fmt.Errorf("platform facts not detected")
	}

	entry := fmt.Sprintf("deb [arch=%s signed-by=%s] %s %s stable\n",
		in.arch, in.KeyringPath, dockerRepoBase, in.codename)

	if current, err := os.ReadFile(in.RepoListPath); err == nil && string(current) == entry {
		in.Log.WithField("path", in.RepoListPath).Info("repository already registered")
		return in.aptUpdate(ctx)
	}

	if err := os.MkdirAll(filepath.Dir(in.RepoListPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(in.RepoListPath, []byte(entry), 0o644); err != nil {
		return fmt.Errorf("write repo list: %w", err)
	}
	return in.aptUpdate(ctx)
}

func (in *Installer) installEngine(ctx context.Context) error {
	args := append([]string{"install", "-y"}, enginePackages...)
	return in.Runner.Run(ctx, "apt-get", args...)
}

func (in *Installer) enableService(ctx context.Context) error {
	return in.Runner.Run(ctx, "systemctl", "enable", "--now", "docker")
}

// grantGroupAccess ensures the docker group exists and adds the
// pre-escalation user so future runs need no sudo. Root needs no grant.
func (in *Installer) grantGroupAccess(ctx context.Context) error {
	if err := in.Runner.Run(ctx, "groupadd", "-f", "docker"); err != nil {
		return err
	}

	user := InvokingUser()
	if user == "" || user == "root" {
		return nil
	}

	groups, err := in.Runner.Output(ctx, "id", "-nG", user)
	if err == nil {
		for _, g := range strings.Fields(groups) {
			if g == "docker" {
				in.Log.WithField("user", user).Info("user already in docker group")
				return nil
			}
		}
	}

	if err := in.Runner.Run(ctx, "usermod", "-aG", "docker", user); err != nil {
		return err
	}
	in.Log.WithField("user", user).Info("added user to docker group, re-login required")
	return nil
}
