// Package git adapts the developer's local repository for the resolution
// pipeline: configured remotes, branches, object existence, merge bases, and
// subprocess execution. All git semantics are delegated to the git binary;
// this package only decides which commands to run.
package git

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	prqerrors "prq.dev/prq/pkg/errors"
)

// CommandRunner abstracts subprocess execution so repository operations can be
// tested without a real git binary.
type CommandRunner interface {
	// Run executes a command in dir, discarding output. A non-zero exit is an error.
	Run(dir, name string, args ...string) error

	// Output executes a command in dir and returns its standard output.
	Output(dir, name string, args ...string) ([]byte, error)

	// RunAttached executes a command in dir with the parent's terminal attached
	// (stdin, stdout, stderr inherited), waits for it, and returns its exit code.
	// An error is returned only when the command could not be started.
	RunAttached(dir, name string, args ...string) (int, error)
}

// RealCommandRunner executes commands via os/exec.
type RealCommandRunner struct {
	Verbose bool
}

// Run executes a command, discarding output.
func (r *RealCommandRunner) Run(dir, name string, args ...string) error {
	r.logDebug(dir, name, args)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return prqerrors.NewGitErrorWithCause("Run",
			fmt.Sprintf("%s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(stderr.String())), err)
	}
	return nil
}

// Output executes a command and returns its standard output.
func (r *RealCommandRunner) Output(dir, name string, args ...string) ([]byte, error) {
	r.logDebug(dir, name, args)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return output, nil
}

// RunAttached executes a command with the controlling terminal inherited, so
// interactive pagers, editors, and color detection behave exactly as a direct
// invocation would. It blocks until the child exits and returns the exit code.
func (r *RealCommandRunner) RunAttached(dir, name string, args ...string) (int, error) {
	r.logDebug(dir, name, args)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if prqerrors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, prqerrors.NewGitErrorWithCause("RunAttached",
			fmt.Sprintf("failed to start %s", name), err)
	}
	return 0, nil
}

func (r *RealCommandRunner) logDebug(dir, name string, args []string) {
	if r.Verbose {
		slog.Debug("exec", "dir", dir, "cmd", name, "args", strings.Join(args, " "))
	}
}
