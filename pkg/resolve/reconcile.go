package resolve

import (
	"fmt"
	"log/slog"

	"prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
	"prq.dev/prq/pkg/github"
)

// Reconciler makes sure the local repository has remotes for a pull
// request's source and target projects, and fetches only what is missing.
// Both operations are idempotent: existing remotes are reused, present
// objects are never re-fetched.
type Reconciler struct {
	repo     LocalRepo
	protocol string // "ssh" or "https", for remotes we create
}

func NewReconciler(repo LocalRepo, protocol string) *Reconciler {
	return &Reconciler{repo: repo, protocol: protocol}
}

// EnsureRemotes returns the names of local remotes pointing at the pull
// request's source and target projects, creating them when absent.
func (r *Reconciler) EnsureRemotes(pull *github.PullRequest) (source, target string, err error) {
	source, err = r.ensureRemote(pull.Head.Project)
	if err != nil {
		return "", "", err
	}
	target, err = r.ensureRemote(pull.Base.Project)
	if err != nil {
		return "", "", err
	}
	return source, target, nil
}

func (r *Reconciler) ensureRemote(project git.Project) (string, error) {
	remote, err := r.repo.RemoteForProject(project)
	if err == nil {
		slog.Debug("reusing remote", "remote", remote.Name, "project", project.String())
		return remote.Name, nil
	}

	name, err := r.availableName(project)
	if err != nil {
		return "", err
	}
	if err := r.repo.AddRemote(name, r.remoteURL(project)); err != nil {
		return "", err
	}
	slog.Debug("created remote", "remote", name, "project", project.String())
	return name, nil
}

// availableName derives a remote name from the owning account, falling back
// to owner-name when a remote by that name already points elsewhere.
func (r *Reconciler) availableName(project git.Project) (string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(remotes))
	for _, remote := range remotes {
		taken[remote.Name] = true
	}
	if !taken[project.Owner] {
		return project.Owner, nil
	}
	fallback := fmt.Sprintf("%s-%s", project.Owner, project.Name)
	if !taken[fallback] {
		return fallback, nil
	}
	return "", errors.Newf("no available remote name for %s: %q and %q are taken",
		project.String(), project.Owner, fallback)
}

func (r *Reconciler) remoteURL(project git.Project) string {
	if r.protocol == "https" {
		return project.HTTPSURL()
	}
	return project.SSHURL()
}

// FetchIfNeeded fetches remote only when commitID is absent from the local
// object store. Network fetches are the slow path; anything answerable from
// local state stays local.
func (r *Reconciler) FetchIfNeeded(remote, commitID string) error {
	if commitID != "" && r.repo.HasObject(commitID) {
		slog.Debug("commit already present, skipping fetch", "remote", remote, "commit", commitID)
		return nil
	}
	slog.Debug("fetching remote", "remote", remote, "commit", commitID)
	return r.repo.Fetch(remote)
}
