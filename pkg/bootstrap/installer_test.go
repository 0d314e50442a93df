package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) key(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	key := f.key(name, args...)
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	key := f.key(name, args...)
	f.calls = append(f.calls, key)
	return f.errs[key]
}

func (f *fakeRunner) RunInput(ctx context.Context, input []byte, name string, args ...string) error {
	return f.Run(ctx, name, args...)
}

func (f *fakeRunner) called(prefix string) bool {
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func testInstaller(t *testing.T, runner *fakeRunner) *Installer {
	t.Helper()
	dir := t.TempDir()

	in := NewInstaller(runner)
	in.Log = logrus.New().WithField("test", t.Name())
	in.KeyringDir = filepath.Join(dir, "keyrings")
	in.KeyringPath = filepath.Join(dir, "keyrings", "docker.gpg")
	in.RepoListPath = filepath.Join(dir, "sources.list.d", "docker.list")
	return in
}

func TestImportSigningKey_SkipsWhenPresent(t *testing.T) {
	runner := &fakeRunner{}
	in := testInstaller(t, runner)

	if err := os.MkdirAll(in.KeyringDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(in.KeyringPath, []byte("existing key"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := in.importSigningKey(context.Background()); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if runner.called("gpg") {
		t.Error("existing key must not be re-imported")
	}

	data, err := os.ReadFile(in.KeyringPath)
	if err != nil || string(data) != "existing key" {
		t.Error("existing key file must be left untouched")
	}
}

func TestRegisterRepo_WritesScopedEntry(t *testing.T) {
	runner := &fakeRunner{}
	in := testInstaller(t, runner)
	in.arch = "amd64"
	in.codename = "noble"

	if err := in.registerRepo(context.Background()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	data, err := os.ReadFile(in.RepoListPath)
	if err != nil {
		t.Fatalf("repo list not written: %v", err)
	}
	entry := string(data)
	for _, want := range []string{"arch=amd64", "noble stable", "signed-by=" + in.KeyringPath, "download.docker.com"} {
		if !strings.Contains(entry, want) {
			t.Errorf("repo entry missing %q: %s", want, entry)
		}
	}
	if !runner.called("apt-get update") {
		t.Error("package index must be refreshed after registering the repo")
	}
}

func TestRegisterRepo_RerunIsIdempotent(t *testing.T) {
	runner := &fakeRunner{}
	in := testInstaller(t, runner)
	in.arch = "arm64"
	in.codename = "bookworm"

	if err := in.registerRepo(context.Background()); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(in.RepoListPath)

	if err := in.registerRepo(context.Background()); err != nil {
		t.Fatalf("re-run failed: %v", err)
	}
	second, _ := os.ReadFile(in.RepoListPath)

	if string(first) != string(second) {
		t.Error("re-running must not change the repo entry")
	}
}

func TestRegisterRepo_RequiresPlatformFacts(t *testing.T) {
	in := testInstaller(t, &fakeRunner{})
	if err := in.registerRepo(context.Background()); err == nil {
		t.Error("expected error when arch/codename were not detected")
	}
}

func TestGrantGroupAccess_MemberIsNoop(t *testing.T) {
	t.Setenv("SUDO_USER", "alice")
	runner := &fakeRunner{outputs: map[string]string{
		"id -nG alice": "alice docker users",
	}}
	in := testInstaller(t, runner)

	if err := in.grantGroupAccess(context.Background()); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !runner.called("groupadd -f docker") {
		t.Error("docker group must be ensured")
	}
	if runner.called("usermod") {
		t.Error("existing member must not be re-added")
	}
}

func TestGrantGroupAccess_AddsMissingUser(t *testing.T) {
	t.Setenv("SUDO_USER", "alice")
	runner := &fakeRunner{outputs: map[string]string{
		"id -nG alice": "alice users",
	}}
	in := testInstaller(t, runner)

	if err := in.grantGroupAccess(context.Background()); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !runner.called("usermod -aG docker alice") {
		t.Errorf("expected usermod call, got %v", runner.calls)
	}
}

func TestGrantGroupAccess_RootNeedsNoGrant(t *testing.T) {
	t.Setenv("SUDO_USER", "root")
	runner := &fakeRunner{}
	in := testInstaller(t, runner)

	if err := in.grantGroupAccess(context.Background()); err != nil {
		t.Fatal(err)
	}
	if runner.called("usermod") {
		t.Error("root must not be added to the docker group")
	}
}

func TestDetectPlatformFacts(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"dpkg --print-architecture": "amd64",
		"lsb_release -cs":           "noble",
	}}
	in := testInstaller(t, runner)

	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(ubuntuOSRelease), 0o644); err != nil {
		t.Fatal(err)
	}
	in.OSReleasePath = path

	if err := in.detectPlatformFacts(context.Background()); err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if in.arch != "amd64" {
		t.Errorf("expected arch amd64, got %q", in.arch)
	}
	// codename resolves via lsb_release when present, os-release otherwise;
	// either way the fixture yields noble
	if in.codename != "noble" {
		t.Errorf("expected codename noble, got %q", in.codename)
	}
}
