// Package ui holds the interactive surfaces: the fzf-backed pull request
// picker and the terminal checks that gate it.
package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/term"

	"prq.dev/prq/pkg/github"
)

var (
	// ErrCancelled is returned when the user cancels the selection
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoPullRequests is returned when there are no pull requests to select from
	ErrNoPullRequests = errors.New("no open pull requests")
)

// Interactive reports whether both ends of the terminal are attached, so a
// picker can actually be driven. Piped or redirected invocations get the
// non-interactive error paths instead.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// SelectPullRequest prompts the user to pick one open pull request using fzf.
func SelectPullRequest(pulls []github.PullRequest) (*github.PullRequest, error) {
	if len(pulls) == 0 {
		return nil, ErrNoPullRequests
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return nil, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	var input bytes.Buffer
	for _, p := range pulls {
		input.WriteString(formatLine(&p))
		input.WriteByte('\n')
	}

	// #nosec G204 - fzf binary is looked up in PATH, no user-controlled arguments are passed directly
	cmd := exec.Command(fzfPath,
		"--height=40%",
		"--layout=reverse",
		"--delimiter=\t",
		"--with-nth=1,2,3",
		"--cycle",
	)
	cmd.Stdin = &input
	cmd.Stderr = os.Stderr // fzf uses stderr for UI rendering
	var output bytes.Buffer
	cmd.Stdout = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// fzf returns 130 on cancellation (ESC, Ctrl-C, Ctrl-G)
			if exitErr.ExitCode() == 130 {
				return nil, ErrCancelled
			}
		}
		return nil, fmt.Errorf("fzf failed: %w", err)
	}

	selectedLine := strings.TrimSpace(output.String())
	if selectedLine == "" {
		return nil, ErrCancelled
	}

	number, err := parseLine(selectedLine)
	if err != nil {
		return nil, err
	}
	for i := range pulls {
		if pulls[i].Number == number {
			return &pulls[i], nil
		}
	}
	return nil, fmt.Errorf("selected pull request #%d not found in original list", number)
}

// formatLine renders one picker row: number, title, author, tab-separated
// so fzf can search fields independently.
func formatLine(p *github.PullRequest) string {
	return fmt.Sprintf("#%d\t%s\t%s", p.Number, p.Title, p.Author)
}

func parseLine(line string) (int, error) {
	field, _, ok := strings.Cut(line, "\t")
	if !ok {
		return 0, fmt.Errorf("invalid selection output: %q", line)
	}
	number, err := strconv.Atoi(strings.TrimPrefix(field, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid selection output: %q", line)
	}
	return number, nil
}
