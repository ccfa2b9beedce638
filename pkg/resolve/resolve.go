// Package resolve reconciles a hosted pull request's view (source ref,
// target ref, owning fork) against the developer's local repository and
// produces the minimal sequence of git operations to diff, merge, or open it.
//
// The pipeline is linear and synchronous: project resolution → PR location →
// remote reconciliation → diff/merge orchestration. Resolution failures are
// detected as early as possible so no side effects occur before a usable
// target is confirmed; the only side effects (remote creation, fetch) are
// idempotent.
package resolve

import "prq.dev/prq/pkg/git"

// LocalRepo is the slice of the local repository the pipeline depends on.
// *git.Repository satisfies it; tests substitute a fake.
type LocalRepo interface {
	CurrentBranch() (string, error)
	LocalBranches() ([]string, error)
	RemoteBranches() ([]git.RemoteBranch, error)
	Remotes() ([]git.Remote, error)
	ProjectForRemote(name string) (git.Project, error)
	RemoteForProject(project git.Project) (*git.Remote, error)
	HasObject(commitID string) bool
	MergeBase(a, b string) (string, error)
	AddRemote(name, url string) error
	Fetch(name string) error
	GitAttached(args ...string) (int, error)
}

// Compile-time check that the git adapter satisfies LocalRepo.
var _ LocalRepo = (*git.Repository)(nil)
