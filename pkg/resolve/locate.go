package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
	"prq.dev/prq/pkg/github"
)

// Target is the outcome of locating a pull request. PR is nil when no open
// pull request matches the identifier; Branch then carries the local branch
// the identifier named so callers can fall back to branch-based flows.
type Target struct {
	PR     *github.PullRequest
	Branch string
}

// Locator finds the pull request a command should act on.
type Locator struct {
	client github.Client
	repo   LocalRepo
}

func NewLocator(client github.Client, repo LocalRepo) *Locator {
	return &Locator{client: client, repo: repo}
}

// Locate resolves identifier against the project's open pull requests.
//
// A numeric identifier is fetched directly; the hosted API's not-found is
// command-terminating. A branch name (or the current branch, when identifier
// is empty) must exist locally, then is matched against the open PRs by
// source branch or stringified number. No match is not an error: the caller
// decides whether to fall back to a branch flow or an interactive menu.
func (l *Locator) Locate(ctx context.Context, project git.Project, identifier string) (*Target, error) {
	if number, err := strconv.Atoi(identifier); err == nil && number > 0 {
		pull, err := l.client.GetPullRequest(ctx, project, number)
		if err != nil {
			return nil, err
		}
		slog.Debug("located pull request by number", "number", number, "project", project.String())
		return &Target{PR: pull}, nil
	}

	branch := identifier
	if branch == "" {
		current, err := l.repo.CurrentBranch()
		if err != nil {
			return nil, err
		}
		branch = current
		slog.Debug("defaulting to current branch", "branch", branch)
	}

	local, err := l.repo.LocalBranches()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(local, branch) {
		return nil, errors.NewBranchError(branch, errors.ReasonUnknownBranch)
	}

	pulls, err := l.client.ListPullRequests(ctx, project)
	if err != nil {
		return nil, err
	}
	for i := range pulls {
		pull := &pulls[i]
		if pull.Head.Branch == branch || strconv.Itoa(pull.Number) == branch {
			slog.Debug("located pull request by branch",
				"number", pull.Number, "branch", branch)
			return &Target{PR: pull, Branch: branch}, nil
		}
	}

	slog.Debug("no open pull request for branch", "branch", branch)
	return &Target{Branch: branch}, nil
}

// RequirePR converts a PR-less target into the error shown when a command
// cannot proceed without one and no interactive fallback is available.
func (t *Target) RequirePR(project git.Project) (*github.PullRequest, error) {
	if t.PR != nil {
		return t.PR, nil
	}
	return nil, errors.NewPullRequestError(project.String(), 0,
		fmt.Sprintf("no open pull request for branch %q", t.Branch))
}
