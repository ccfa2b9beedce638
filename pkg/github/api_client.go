package github

import (
	"context"
	"log/slog"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	prqerrors "prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
)

// APIClient implements Client using the GitHub REST API.
type APIClient struct {
	client  *gh.Client
	verbose bool
	logger  *slog.Logger
}

// APIClientOption is a functional option for configuring APIClient.
type APIClientOption func(*APIClient)

// WithAPILogger sets a custom logger for the API client.
func WithAPILogger(logger *slog.Logger) APIClientOption {
	return func(c *APIClient) {
		c.logger = logger
	}
}

// NewAPIClient creates a GitHub API client. An empty token yields an
// unauthenticated client, limited to public repositories.
func NewAPIClient(token string, verbose bool, opts ...APIClientOption) *APIClient {
	var ghc *gh.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ghc = gh.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		ghc = gh.NewClient(nil)
	}

	client := &APIClient{
		client:  ghc,
		verbose: verbose,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// IsAuthenticated checks if the client is authenticated with GitHub.
func (c *APIClient) IsAuthenticated() bool {
	ctx := context.Background()
	_, _, err := c.client.Users.Get(ctx, "")
	return err == nil
}

// ListPullRequests lists the open pull requests for a project.
func (c *APIClient) ListPullRequests(ctx context.Context, project git.Project) ([]PullRequest, error) {
	c.logDebug("listing pull requests", "project", project.String())

	opts := &gh.PullRequestListOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var result []PullRequest
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, project.Owner, project.Name, opts)
		if err != nil {
			return nil, toGitHubError("ListPullRequests", resp, err)
		}

		for _, pr := range prs {
			info, err := pullRequestFromAPI(pr)
			if err != nil {
				return nil, err
			}
			result = append(result, *info)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// GetPullRequest retrieves a pull request by number.
func (c *APIClient) GetPullRequest(ctx context.Context, project git.Project, number int) (*PullRequest, error) {
	c.logDebug("getting pull request", "project", project.String(), "number", number)

	pr, resp, err := c.client.PullRequests.Get(ctx, project.Owner, project.Name, number)
	if err != nil {
		if resp != nil && resp.Response != nil && resp.StatusCode == 404 {
			return nil, prqerrors.NewPullRequestErrorWithCause(project.String(), number,
				"no such pull request", err)
		}
		return nil, toGitHubError("GetPullRequest", resp, err)
	}

	return pullRequestFromAPI(pr)
}

// GetRepository retrieves repository metadata.
func (c *APIClient) GetRepository(ctx context.Context, project git.Project) (*Repository, error) {
	c.logDebug("getting repository", "project", project.String())

	repo, resp, err := c.client.Repositories.Get(ctx, project.Owner, project.Name)
	if err != nil {
		return nil, toGitHubError("GetRepository", resp, err)
	}

	if repo.GetDefaultBranch() == "" {
		return nil, prqerrors.NewGitHubError("GetRepository",
			"repository response is missing the default branch")
	}

	return &Repository{
		Project:       project,
		DefaultBranch: repo.GetDefaultBranch(),
	}, nil
}

func (c *APIClient) logDebug(msg string, args ...any) {
	if c.verbose {
		c.logger.Debug(msg, args...)
	}
}

// pullRequestFromAPI converts an API pull request into the typed record,
// failing fast when required fields are missing (e.g. a deleted fork leaves
// the head repository empty, which makes the PR impossible to fetch).
func pullRequestFromAPI(pr *gh.PullRequest) (*PullRequest, error) {
	if pr.GetNumber() == 0 {
		return nil, prqerrors.NewGitHubError("DecodePullRequest", "response is missing the PR number")
	}

	head, err := refFromAPI(pr.GetHead(), pr.GetNumber(), "head")
	if err != nil {
		return nil, err
	}
	base, err := refFromAPI(pr.GetBase(), pr.GetNumber(), "base")
	if err != nil {
		return nil, err
	}

	return &PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Author:    pr.GetUser().GetLogin(),
		State:     pr.GetState(),
		URL:       pr.GetHTMLURL(),
		Head:      *head,
		Base:      *base,
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
	}, nil
}

func refFromAPI(branch *gh.PullRequestBranch, number int, side string) (*Ref, error) {
	if branch == nil || branch.GetRef() == "" {
		return nil, prqerrors.Newf("pull request #%d has no %s ref", number, side)
	}
	repo := branch.GetRepo()
	if repo.GetName() == "" || repo.GetOwner().GetLogin() == "" {
		return nil, prqerrors.Newf("pull request #%d %s repository is gone (deleted fork?)", number, side)
	}

	return &Ref{
		Branch: branch.GetRef(),
		SHA:    branch.GetSHA(),
		Project: git.Project{
			Owner: repo.GetOwner().GetLogin(),
			Name:  repo.GetName(),
		},
	}, nil
}

func toGitHubError(operation string, resp *gh.Response, err error) error {
	if resp != nil && resp.Response != nil && resp.StatusCode > 0 {
		return prqerrors.NewGitHubErrorWithStatus(operation, resp.StatusCode, err.Error())
	}
	return prqerrors.NewGitHubErrorWithCause(operation, "API request failed", err)
}
