package resolve

import (
	"context"
	"fmt"

	"prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
	"prq.dev/prq/pkg/github"
)

// fakeRepo is an in-memory LocalRepo. Remotes map name to URL; Objects
// lists commit ids present locally. AddRemote and Fetch record their
// calls so tests can assert side effects and their absence.
type fakeRepo struct {
	Branch   string
	Branches []string
	Tracked  []git.RemoteBranch
	Remote   map[string]string
	Objects  map[string]bool
	Base     string

	AddedRemotes []string
	Fetched      []string
	GitCalls     [][]string
	GitExitCode  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		Branch:  "main",
		Remote:  map[string]string{},
		Objects: map[string]bool{},
	}
}

func (f *fakeRepo) CurrentBranch() (string, error) { return f.Branch, nil }

func (f *fakeRepo) LocalBranches() ([]string, error) { return f.Branches, nil }

func (f *fakeRepo) RemoteBranches() ([]git.RemoteBranch, error) { return f.Tracked, nil }

func (f *fakeRepo) Remotes() ([]git.Remote, error) {
	var remotes []git.Remote
	for name, url := range f.Remote {
		remotes = append(remotes, git.Remote{Name: name, URL: url})
	}
	return remotes, nil
}

func (f *fakeRepo) ProjectForRemote(name string) (git.Project, error) {
	url, ok := f.Remote[name]
	if !ok {
		return git.Project{}, git.ErrRemoteNotFound
	}
	return git.ParseRemoteURL(url)
}

func (f *fakeRepo) RemoteForProject(project git.Project) (*git.Remote, error) {
	for name, url := range f.Remote {
		parsed, err := git.ParseRemoteURL(url)
		if err != nil {
			continue
		}
		if parsed == project {
			return &git.Remote{Name: name, URL: url}, nil
		}
	}
	return nil, git.ErrNoRemoteForProject
}

func (f *fakeRepo) HasObject(commitID string) bool { return f.Objects[commitID] }

func (f *fakeRepo) MergeBase(a, b string) (string, error) {
	if f.Base == "" {
		return "", errors.NewGitError("merge-base", fmt.Sprintf("no common ancestor of %s and %s", a, b))
	}
	return f.Base, nil
}

func (f *fakeRepo) AddRemote(name, url string) error {
	f.Remote[name] = url
	f.AddedRemotes = append(f.AddedRemotes, name)
	return nil
}

func (f *fakeRepo) Fetch(name string) error {
	f.Fetched = append(f.Fetched, name)
	return nil
}

func (f *fakeRepo) GitAttached(args ...string) (int, error) {
	f.GitCalls = append(f.GitCalls, args)
	return f.GitExitCode, nil
}

// fakeClient serves canned API responses keyed by project string.
type fakeClient struct {
	Pulls    map[string][]github.PullRequest
	Repos    map[string]*github.Repository
	ListErr  error
	GetCalls int
}

func (f *fakeClient) IsAuthenticated() bool { return true }

func (f *fakeClient) ListPullRequests(_ context.Context, project git.Project) ([]github.PullRequest, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Pulls[project.String()], nil
}

func (f *fakeClient) GetPullRequest(_ context.Context, project git.Project, number int) (*github.PullRequest, error) {
	f.GetCalls++
	for _, pull := range f.Pulls[project.String()] {
		if pull.Number == number {
			return &pull, nil
		}
	}
	return nil, errors.NewPullRequestError(project.String(), number, "pull request not found")
}

func (f *fakeClient) GetRepository(_ context.Context, project git.Project) (*github.Repository, error) {
	repo, ok := f.Repos[project.String()]
	if !ok {
		return nil, errors.NewGitHubErrorWithStatus("get repository", 404, "repository not found")
	}
	return repo, nil
}

func pullRequest(number int, headProject, headBranch, headSHA, baseProject, baseBranch, baseSHA string) github.PullRequest {
	head := mustProject(headProject)
	base := mustProject(baseProject)
	return github.PullRequest{
		Number: number,
		Title:  fmt.Sprintf("PR %d", number),
		Author: head.Owner,
		State:  "open",
		URL:    fmt.Sprintf("https://github.com/%s/pull/%d", baseProject, number),
		Head:   github.Ref{Branch: headBranch, SHA: headSHA, Project: head},
		Base:   github.Ref{Branch: baseBranch, SHA: baseSHA, Project: base},
	}
}

func mustProject(s string) git.Project {
	project, err := git.ParseProject(s)
	if err != nil {
		panic(err)
	}
	return project
}
