package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"prq.dev/prq/pkg/config"
	prqerrors "prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
	"prq.dev/prq/pkg/github"
	"prq.dev/prq/pkg/resolve"
	"prq.dev/prq/pkg/ui"
)

// pipeline bundles the collaborators every PR command needs: configuration,
// the hosted API client, the local repository, and the resolved project.
type pipeline struct {
	cfg     *config.Config
	client  github.Client
	repo    *git.Repository
	project git.Project
}

// newPipeline wires the shared front half of every command: load config,
// open the repository we are standing in, create the API client, and resolve
// the target project. Project resolution runs before any network call so a
// bad -p value or missing remote fails fast.
func newPipeline() (*pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current directory")
	}
	repo, err := git.Open(cwd, verbose)
	if err != nil {
		return nil, err
	}

	project, err := resolve.ResolveProject(repo, projectFlag, cfg.Git.DefaultRemotes)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return nil, err
	}

	client, err := github.NewClient(&cfg.GitHub, verbose)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return nil, err
	}

	return &pipeline{cfg: cfg, client: client, repo: repo, project: project}, nil
}

// locate finds the pull request named by the positional argument, falling
// back to an interactive picker when nothing matches and a terminal is
// attached.
func (p *pipeline) locate(ctx context.Context, identifier string) (*github.PullRequest, error) {
	locator := resolve.NewLocator(p.client, p.repo)
	target, err := locator.Locate(ctx, p.project, identifier)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return nil, err
	}
	if target.PR != nil {
		return target.PR, nil
	}

	if !ui.Interactive() {
		pull, err := target.RequirePR(p.project)
		if err != nil {
			fmt.Println(prqerrors.FormatUserError(err))
		}
		return pull, err
	}

	pulls, err := p.client.ListPullRequests(ctx, p.project)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return nil, err
	}
	selected, err := ui.SelectPullRequest(pulls)
	if err != nil {
		if errors.Is(err, ui.ErrNoPullRequests) {
			return nil, prqerrors.NewPullRequestError(p.project.String(), 0, "no open pull requests")
		}
		return nil, err
	}
	return selected, nil
}

// runDiffKind is the back half of diff, difftool, and merge: reconcile
// remotes, fetch what is missing, build the request, and hand the terminal
// to git. The child's exit code becomes our own.
func (p *pipeline) runDiffKind(ctx context.Context, kind resolve.Kind, identifier, extraArgs string) error {
	pull, err := p.locate(ctx, identifier)
	if err != nil {
		return err
	}

	reconciler := resolve.NewReconciler(p.repo, p.cfg.Git.RemoteProtocol)
	sourceRemote, targetRemote, err := reconciler.EnsureRemotes(pull)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}
	if err := reconciler.FetchIfNeeded(sourceRemote, pull.Head.SHA); err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}
	if err := reconciler.FetchIfNeeded(targetRemote, pull.Base.SHA); err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}

	message := mergeMessage(pull)
	req, err := resolve.NewDiffRequest(p.repo, kind,
		sourceRemote, pull.Head.Branch,
		targetRemote, pull.Base.Branch,
		pull.Head.SHA, pull.Base.SHA,
		message, extraArgs)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}

	code, err := req.Run(p.repo)
	if err != nil {
		fmt.Println(prqerrors.FormatUserError(err))
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func mergeMessage(pull *github.PullRequest) string {
	return fmt.Sprintf("Merge pull request #%d from %s/%s",
		pull.Number, pull.Head.Project.Owner, pull.Head.Branch)
}

// splitDashArgs separates the identifier positional from the pass-through
// arguments after "--". Everything after the dash goes to git verbatim.
func splitDashArgs(cmd *cobra.Command, args []string) (identifier, extraArgs string) {
	at := cmd.ArgsLenAtDash()
	if at < 0 {
		at = len(args)
	}
	if at > 0 {
		identifier = args[0]
	}
	return identifier, strings.Join(args[at:], " ")
}
