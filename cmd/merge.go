package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"prq.dev/prq/pkg/resolve"
)

// mergeCmd merges a pull request's source branch locally.
var mergeCmd = &cobra.Command{
	Use:   "merge [number|branch] [-- git-merge-args...]",
	Short: "Merge a pull request locally",
	Long: `Merge a pull request's source branch into the current branch.

The merge is always --no-ff with a message naming the pull request, so
the merge commit records which PR it came from. Remotes for the source
fork are created and fetched as needed.

If no number or branch is given, the pull request for the current branch
is used. Arguments after -- are passed to git merge verbatim.

Examples:
  prq merge 123             # Merge PR #123
  prq merge feature-x       # Merge PR whose source branch is feature-x
  prq merge 123 -- --log    # Pass --log through to git merge`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, extraArgs := splitDashArgs(cmd, args)
		p, err := newPipeline()
		if err != nil {
			return err
		}
		return p.runDiffKind(context.Background(), resolve.KindMerge, identifier, extraArgs)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
