package resolve

import (
	"context"
	"testing"

	"prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/github"
)

func locatorFixture() (*Locator, *fakeRepo, *fakeClient) {
	repo := newFakeRepo()
	repo.Branch = "feature-x"
	repo.Branches = []string{"main", "feature-x", "hotfix"}

	client := &fakeClient{
		Pulls: map[string][]github.PullRequest{
			"acme/widgets": {
				pullRequest(42, "bob/widgets", "feature-x", "aaa111", "acme/widgets", "main", "bbb222"),
				pullRequest(7, "acme/widgets", "chore", "ccc333", "acme/widgets", "main", "bbb222"),
			},
		},
	}
	return NewLocator(client, repo), repo, client
}

func TestLocateByNumber(t *testing.T) {
	locator, _, client := locatorFixture()

	target, err := locator.Locate(context.Background(), mustProject("acme/widgets"), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.PR == nil || target.PR.Number != 42 {
		t.Fatalf("expected PR 42, got %+v", target.PR)
	}
	if client.GetCalls != 1 {
		t.Errorf("expected one direct fetch, got %d", client.GetCalls)
	}
}

func TestLocateByNumberNotFound(t *testing.T) {
	locator, repo, _ := locatorFixture()

	_, err := locator.Locate(context.Background(), mustProject("acme/widgets"), "99")
	if !errors.IsPullRequestError(err) {
		t.Fatalf("expected PullRequestError, got %T: %v", err, err)
	}
	if len(repo.AddedRemotes) != 0 || len(repo.Fetched) != 0 {
		t.Errorf("locate must not touch remotes: added=%v fetched=%v", repo.AddedRemotes, repo.Fetched)
	}
}

func TestLocateByBranch(t *testing.T) {
	locator, _, _ := locatorFixture()

	target, err := locator.Locate(context.Background(), mustProject("acme/widgets"), "feature-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.PR == nil || target.PR.Number != 42 {
		t.Fatalf("expected PR 42 for branch feature-x, got %+v", target.PR)
	}
}

func TestLocateDefaultsToCurrentBranch(t *testing.T) {
	locator, repo, _ := locatorFixture()
	repo.Branch = "feature-x"

	target, err := locator.Locate(context.Background(), mustProject("acme/widgets"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.PR == nil || target.PR.Number != 42 {
		t.Fatalf("expected PR 42 for current branch, got %+v", target.PR)
	}
}

func TestLocateUnknownBranch(t *testing.T) {
	locator, _, _ := locatorFixture()

	_, err := locator.Locate(context.Background(), mustProject("acme/widgets"), "no-such-branch")
	if !errors.IsBranchError(err, errors.ReasonUnknownBranch) {
		t.Fatalf("expected unknown-branch error, got %T: %v", err, err)
	}
}

func TestLocateNoMatchIsNotAnError(t *testing.T) {
	locator, _, _ := locatorFixture()

	target, err := locator.Locate(context.Background(), mustProject("acme/widgets"), "hotfix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.PR != nil {
		t.Fatalf("expected no PR, got #%d", target.PR.Number)
	}
	if target.Branch != "hotfix" {
		t.Errorf("expected branch hotfix carried through, got %q", target.Branch)
	}

	_, err = target.RequirePR(mustProject("acme/widgets"))
	if !errors.IsPullRequestError(err) {
		t.Errorf("RequirePR on empty target should be a PullRequestError, got %T: %v", err, err)
	}
}
