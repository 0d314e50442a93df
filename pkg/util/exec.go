package util

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. The indirection exists so tests can
// substitute recorded output for real subprocesses.
type Runner interface {
	// Output runs the command and returns its combined output, trimmed.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// Run runs the command with output streamed to the current process.
	Run(ctx context.Context, name string, args ...string) error

	// RunInput runs the command with the given bytes piped to stdin.
	RunInput(ctx context.Context, input []byte, name string, args ...string) error
}

type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (ExecRunner) RunInput(ctx context.Context, input []byte, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// HasCommand reports whether a binary is present on PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
