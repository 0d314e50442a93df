package bootstrap

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

// EnsureRoot re-executes the current process under sudo when it is not
// already running as root, preserving arguments and environment. On
// success the call never returns. Returns nil when already root.
func EnsureRoot() error {
	if os.Geteuid() == 0 {
		return nil
	}

	sudoPath, err := exec.LookPath("sudo")
	if err != nil {
		return types.NewDependencyError("sudo", fmt.Errorf("not running as root and no escalation mechanism found"))
	}

	argv := append([]string{"sudo", "-E"}, os.Args...)
	if err := syscall.Exec(sudoPath, argv, os.Environ()); err != nil {
		return types.NewDependencyError("sudo", err)
	}
	return nil
}

// InvokingUser returns the pre-escalation user name, empty when the
// process was started as root directly.
func InvokingUser() string {
	return os.Getenv("SUDO_USER")
}
