package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	prqerrors "prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/github"
)

// listCmd lists open pull requests.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open pull requests",
	Long: `List the open pull requests for the resolved project.

Examples:
  prq list                  # List open PRs for the resolved project
  prq list -p upstream      # List open PRs for the upstream remote's project
  prq list -p acme/widgets  # List open PRs for an explicit project`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		return runList(context.Background(), p)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(ctx context.Context, p *pipeline) error {
	pulls, err := p.client.ListPullRequests(ctx, p.project)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}

	if len(pulls) == 0 {
		fmt.Printf("No open pull requests for %s.\n", p.project.String())
		return nil
	}

	displayPullRequests(p.project.String(), pulls)
	return nil
}

// displayPullRequests formats and prints a list of PRs.
func displayPullRequests(project string, pulls []github.PullRequest) {
	maxNumWidth := 5
	maxTitleWidth := 50

	fmt.Printf("\nOpen pull requests for %s:\n\n", project)
	fmt.Printf("%-*s  %-*s  %-16s  %s\n",
		maxNumWidth, "#",
		maxTitleWidth, "TITLE",
		"AUTHOR",
		"BRANCH",
	)
	fmt.Println(strings.Repeat("-", 100))

	for _, pull := range pulls {
		title := pull.Title
		if len(title) > maxTitleWidth {
			title = title[:maxTitleWidth-3] + "..."
		}

		fmt.Printf("#%-*d  %-*s  %-16s  %s\n",
			maxNumWidth-1, pull.Number,
			maxTitleWidth, title,
			pull.Author,
			pull.Head.Branch,
		)
	}

	fmt.Printf("\nTotal: %d PR(s)\n", len(pulls))
}
