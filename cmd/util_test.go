package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"prq.dev/prq/pkg/git"
	"prq.dev/prq/pkg/github"
)

func TestSplitDashArgs(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantIdentifier string
		wantExtra      string
	}{
		{
			name: "no args",
			args: []string{},
		},
		{
			name:           "identifier only",
			args:           []string{"123"},
			wantIdentifier: "123",
		},
		{
			name:           "identifier and dash args",
			args:           []string{"123", "--", "--stat", "--color"},
			wantIdentifier: "123",
			wantExtra:      "--stat --color",
		},
		{
			name:      "dash args only",
			args:      []string{"--", "--stat"},
			wantExtra: "--stat",
		},
		{
			name:           "branch identifier",
			args:           []string{"feature-x"},
			wantIdentifier: "feature-x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test", Args: cobra.ArbitraryArgs, Run: func(*cobra.Command, []string) {}}

			var identifier, extra string
			cmd.Run = func(c *cobra.Command, args []string) {
				identifier, extra = splitDashArgs(c, args)
			}
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if identifier != tt.wantIdentifier {
				t.Errorf("identifier = %q, want %q", identifier, tt.wantIdentifier)
			}
			if extra != tt.wantExtra {
				t.Errorf("extraArgs = %q, want %q", extra, tt.wantExtra)
			}
		})
	}
}

func TestMergeMessage(t *testing.T) {
	pull := &github.PullRequest{
		Number: 42,
		Head: github.Ref{
			Branch:  "feature-x",
			Project: git.Project{Owner: "bob", Name: "widgets"},
		},
	}

	got := mergeMessage(pull)
	want := "Merge pull request #42 from bob/feature-x"
	if got != want {
		t.Errorf("mergeMessage = %q, want %q", got, want)
	}
}
