package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"prq.dev/prq/pkg/git"
	"prq.dev/prq/pkg/github"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestDisplayPullRequests(t *testing.T) {
	pulls := []github.PullRequest{
		{
			Number: 42,
			Title:  "Add widget support",
			Author: "bob",
			Head:   github.Ref{Branch: "feature-x", Project: git.Project{Owner: "bob", Name: "widgets"}},
		},
		{
			Number: 7,
			Title:  strings.Repeat("long title ", 10),
			Author: "carol",
			Head:   github.Ref{Branch: "chore", Project: git.Project{Owner: "carol", Name: "widgets"}},
		},
	}

	output := captureStdout(t, func() {
		displayPullRequests("acme/widgets", pulls)
	})

	for _, want := range []string{"acme/widgets", "#42", "Add widget support", "bob", "feature-x", "#7", "Total: 2 PR(s)"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got:\n%s", want, output)
		}
	}

	// Long titles are truncated
	if !strings.Contains(output, "...") {
		t.Error("long titles should be truncated with ellipsis")
	}
}

func TestListCommandRegistered(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "list" {
			if cmd.RunE == nil {
				t.Error("list command should have RunE set")
			}
			return
		}
	}
	t.Error("list command should be registered with rootCmd")
}
