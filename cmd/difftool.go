package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"prq.dev/prq/pkg/resolve"
)

// difftoolCmd opens a pull request's changes in the configured difftool.
var difftoolCmd = &cobra.Command{
	Use:   "difftool [number|branch] [-- git-difftool-args...]",
	Short: "View a pull request in your difftool",
	Long: `Open a pull request's changes in git's configured difftool.

Uses the same merge-base baseline as prq diff. Arguments after -- are
passed to git difftool verbatim.

Examples:
  prq difftool                     # Difftool for current branch's PR
  prq difftool 123                 # Difftool for PR #123
  prq difftool 123 -- --tool=meld  # Pick a specific tool`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, extraArgs := splitDashArgs(cmd, args)
		p, err := newPipeline()
		if err != nil {
			return err
		}
		return p.runDiffKind(context.Background(), resolve.KindDifftool, identifier, extraArgs)
	},
}

func init() {
	rootCmd.AddCommand(difftoolCmd)
}
