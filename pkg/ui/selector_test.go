package ui

import (
	"testing"

	"prq.dev/prq/pkg/github"
)

func TestFormatAndParseLine(t *testing.T) {
	tests := []struct {
		name string
		pull github.PullRequest
		want int
	}{
		{
			name: "simple",
			pull: github.PullRequest{Number: 42, Title: "Add widget support", Author: "bob"},
			want: 42,
		},
		{
			name: "title containing hash",
			pull: github.PullRequest{Number: 7, Title: "Fix #3 regression", Author: "carol"},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(formatLine(&tt.pull))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected number %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseLineInvalid(t *testing.T) {
	for _, line := range []string{"", "no tabs here", "#notanumber\ttitle\tauthor"} {
		if _, err := parseLine(line); err == nil {
			t.Errorf("expected error for %q", line)
		}
	}
}

func TestSelectPullRequestEmpty(t *testing.T) {
	if _, err := SelectPullRequest(nil); err != ErrNoPullRequests {
		t.Errorf("expected ErrNoPullRequests, got %v", err)
	}
}
