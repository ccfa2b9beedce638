package cmd

import (
	"context"
	"fmt"

	"github.com/cli/browser"
	"github.com/spf13/cobra"

	prqerrors "prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/resolve"
)

var openPrintOnly bool

// openCmd opens a pull request's web page, or the comparison page for
// creating one.
var openCmd = &cobra.Command{
	Use:   "open [number|branch]",
	Short: "Open a pull request in the browser",
	Long: `Open a pull request's web page in the default browser.

If no open pull request matches, and the branch has been pushed to a
hosted remote, the host's comparison page is opened instead so a pull
request can be created from it. The project's default branch has nothing
to compare against and is rejected.

Examples:
  prq open             # Open the PR for the current branch
  prq open 123         # Open PR #123
  prq open hotfix      # Open the PR for hotfix, or the compare page
  prq open --print     # Print the URL instead of opening it`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var identifier string
		if len(args) > 0 {
			identifier = args[0]
		}
		p, err := newPipeline()
		if err != nil {
			return err
		}
		return runOpen(context.Background(), p, identifier)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().BoolVar(&openPrintOnly, "print", false, "Print the URL instead of opening the browser")
}

func runOpen(ctx context.Context, p *pipeline, identifier string) error {
	locator := resolve.NewLocator(p.client, p.repo)
	target, err := locator.Locate(ctx, p.project, identifier)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}

	opener := resolve.NewOpener(p.client, p.repo)
	url, err := opener.PageURL(ctx, p.project, target)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}

	if openPrintOnly {
		fmt.Println(url)
		return nil
	}

	fmt.Printf("Opening %s\n", url)
	return browser.OpenURL(url)
}
