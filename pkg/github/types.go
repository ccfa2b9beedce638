// Package github provides the hosted-API client for pull request resolution.
//
// The Client interface exposes the three calls the pipeline needs: listing
// open PRs, fetching one by number, and reading repository metadata. The
// implementation uses the GitHub REST API via google/go-github; loosely
// structured API responses are decoded into the typed records below with a
// validating step that fails fast on missing required fields.
package github

import (
	"time"

	"prq.dev/prq/pkg/git"
)

// Ref is one side of a pull request: a branch in its owning project.
type Ref struct {
	Branch  string      // Branch name within the owning project
	SHA     string      // Commit id of the ref tip at fetch time
	Project git.Project // Owning repository (the fork, for cross-repo PRs)
}

// PullRequest is an immutable snapshot of a hosted pull request, fetched
// fresh per invocation and never cached across runs.
type PullRequest struct {
	Number    int
	Title     string
	Author    string
	State     string // "open", "closed"
	URL       string // Browser URL of the PR page
	Head      Ref    // Source: the branch being merged
	Base      Ref    // Target: the branch being merged into
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository is hosted repository metadata.
type Repository struct {
	Project       git.Project
	DefaultBranch string
}
