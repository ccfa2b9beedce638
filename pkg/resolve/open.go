package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
	"prq.dev/prq/pkg/github"
)

// Opener decides which web page "open" should visit: an existing pull
// request's page, or a comparison page for creating one.
type Opener struct {
	client github.Client
	repo   LocalRepo
}

func NewOpener(client github.Client, repo LocalRepo) *Opener {
	return &Opener{client: client, repo: repo}
}

// PageURL maps a located target to a browser URL.
//
// A located pull request opens its own page. Without one, the branch must
// be something a pull request could be created from: not the project's
// default branch, and already pushed to a hosted remote. The result is the
// host's comparison page, pre-filled from the target project's default
// branch to the pushed branch.
func (o *Opener) PageURL(ctx context.Context, project git.Project, target *Target) (string, error) {
	if target.PR != nil {
		return target.PR.URL, nil
	}

	repository, err := o.client.GetRepository(ctx, project)
	if err != nil {
		return "", err
	}
	if target.Branch == repository.DefaultBranch {
		return "", errors.NewBranchError(target.Branch, errors.ReasonDefaultBranch)
	}

	source, err := o.pushedProject(target.Branch)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://github.com/%s/%s/compare/%s:%s...%s:%s?expand=1",
		project.Owner, project.Name,
		project.Owner, repository.DefaultBranch,
		source.Owner, target.Branch)
	slog.Debug("built comparison URL", "url", url)
	return url, nil
}

// pushedProject finds the hosted project the branch has been pushed to, by
// scanning remote-tracking branches and resolving their remotes.
func (o *Opener) pushedProject(branch string) (git.Project, error) {
	tracked, err := o.repo.RemoteBranches()
	if err != nil {
		return git.Project{}, err
	}
	for _, rb := range tracked {
		if rb.Branch != branch {
			continue
		}
		project, err := o.repo.ProjectForRemote(rb.Remote)
		if err != nil {
			slog.Debug("remote-tracking branch on non-hosted remote, skipping",
				"remote", rb.Remote, "branch", branch)
			continue
		}
		return project, nil
	}
	return git.Project{}, errors.NewBranchError(branch, errors.ReasonNeverPushed)
}
