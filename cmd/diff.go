package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"prq.dev/prq/pkg/resolve"
)

// diffCmd shows a pull request's changes against its merge base.
var diffCmd = &cobra.Command{
	Use:   "diff [number|branch] [-- git-diff-args...]",
	Short: "Diff a pull request against its merge base",
	Long: `Show the changes a pull request would introduce.

The diff baseline is the merge base of the source and target branches,
not the target tip, so the output reflects only the pull request's own
commits even when the target branch has moved on.

If no number or branch is given, the pull request for the current branch
is used. Arguments after -- are passed to git diff verbatim.

Examples:
  prq diff                  # Diff PR for current branch
  prq diff 123              # Diff PR #123
  prq diff feature-x        # Diff PR whose source branch is feature-x
  prq diff 123 -- --stat    # Pass --stat through to git diff`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, extraArgs := splitDashArgs(cmd, args)
		p, err := newPipeline()
		if err != nil {
			return err
		}
		return p.runDiffKind(context.Background(), resolve.KindDiff, identifier, extraArgs)
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
