package git

import (
	"os"
	"path/filepath"
	"strings"

	prqerrors "prq.dev/prq/pkg/errors"
)

// Remote is a named pointer to another repository location.
type Remote struct {
	Name string
	URL  string
}

// RemoteBranch is a remote-tracking branch known to the local repository.
type RemoteBranch struct {
	Remote string
	Branch string
}

// Sentinel errors for registry lookups. Callers use these for flow control:
// a miss is often not fatal (e.g. a remote gets created instead).
var (
	// ErrRemoteNotFound is returned when no remote with the given name exists.
	ErrRemoteNotFound = prqerrors.New("remote not found")
	// ErrNoRemoteForProject is returned when no configured remote points at a project.
	ErrNoRemoteForProject = prqerrors.New("no remote points at project")
)

// Repository is the developer's working clone. All operations shell out to
// git through a CommandRunner; the Repository itself holds no state beyond
// the working directory.
type Repository struct {
	Dir     string
	Verbose bool
	runner  CommandRunner
}

// Open opens the git repository containing dir.
func Open(dir string, verbose bool) (*Repository, error) {
	if !isGitWorkTree(dir) {
		return nil, prqerrors.Newf("%s is not inside a git repository", dir)
	}
	return &Repository{
		Dir:     dir,
		Verbose: verbose,
		runner:  &RealCommandRunner{Verbose: verbose},
	}, nil
}

// NewRepositoryWithRunner creates a Repository with a custom CommandRunner (for testing).
func NewRepositoryWithRunner(dir string, verbose bool, runner CommandRunner) *Repository {
	return &Repository{Dir: dir, Verbose: verbose, runner: runner}
}

// isGitWorkTree checks whether path is inside a git work tree by walking up
// to a .git directory (or file, for worktrees).
func isGitWorkTree(path string) bool {
	dir, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for {
		gitPath := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// CurrentBranch returns the checked-out branch name.
// Detached HEAD is an error: there is no branch to locate a PR for.
func (r *Repository) CurrentBranch() (string, error) {
	output, err := r.runner.Output(r.Dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", prqerrors.NewGitErrorWithCause("CurrentBranch", "failed to read HEAD", err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" || branch == "HEAD" {
		return "", prqerrors.NewGitError("CurrentBranch", "not on a branch (detached HEAD state)")
	}
	return branch, nil
}

// LocalBranches returns the names of all local branches.
func (r *Repository) LocalBranches() ([]string, error) {
	output, err := r.runner.Output(r.Dir, "git", "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, prqerrors.NewGitErrorWithCause("LocalBranches", "failed to list branches", err)
	}
	return splitLines(output), nil
}

// RemoteBranches returns all remote-tracking branches as (remote, branch) pairs.
func (r *Repository) RemoteBranches() ([]RemoteBranch, error) {
	output, err := r.runner.Output(r.Dir, "git", "for-each-ref", "--format=%(refname:short)", "refs/remotes")
	if err != nil {
		return nil, prqerrors.NewGitErrorWithCause("RemoteBranches", "failed to list remote branches", err)
	}

	var branches []RemoteBranch
	for _, ref := range splitLines(output) {
		remote, branch, ok := strings.Cut(ref, "/")
		if !ok || branch == "HEAD" {
			continue
		}
		branches = append(branches, RemoteBranch{Remote: remote, Branch: branch})
	}
	return branches, nil
}

// Remotes returns the configured remotes with their fetch URLs.
func (r *Repository) Remotes() ([]Remote, error) {
	output, err := r.runner.Output(r.Dir, "git", "remote", "-v")
	if err != nil {
		return nil, prqerrors.NewGitErrorWithCause("Remotes", "failed to list remotes", err)
	}

	var remotes []Remote
	for _, line := range splitLines(output) {
		// Format: <name>\t<url> (fetch|push)
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[2] != "(fetch)" {
			continue
		}
		remotes = append(remotes, Remote{Name: fields[0], URL: fields[1]})
	}
	return remotes, nil
}

// Remote returns the named remote, or ErrRemoteNotFound.
func (r *Repository) Remote(name string) (*Remote, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return nil, err
	}
	for i := range remotes {
		if remotes[i].Name == name {
			return &remotes[i], nil
		}
	}
	return nil, prqerrors.Wrapf(ErrRemoteNotFound, "remote %q", name)
}

// ProjectForRemote maps a remote name to its hosted project by parsing the
// remote's fetch URL. A remote whose URL is not a recognized GitHub form
// yields an error.
func (r *Repository) ProjectForRemote(name string) (Project, error) {
	remote, err := r.Remote(name)
	if err != nil {
		return Project{}, err
	}
	return ParseRemoteURL(remote.URL)
}

// RemoteForProject finds a configured remote pointing at the given project,
// or ErrNoRemoteForProject. The inverse of ProjectForRemote.
func (r *Repository) RemoteForProject(project Project) (*Remote, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return nil, err
	}
	for i := range remotes {
		p, err := ParseRemoteURL(remotes[i].URL)
		if err != nil {
			continue // non-hosted remote, skip
		}
		if p == project {
			return &remotes[i], nil
		}
	}
	return nil, prqerrors.Wrapf(ErrNoRemoteForProject, "project %s", project)
}

// HasObject reports whether the given commit exists in the local object store.
// This is the cheap local check that lets the reconciler skip network fetches.
func (r *Repository) HasObject(commitID string) bool {
	if commitID == "" {
		return false
	}
	err := r.runner.Run(r.Dir, "git", "cat-file", "-e", commitID+"^{commit}")
	return err == nil
}

// MergeBase returns the most recent common ancestor of two revisions.
// For identical revisions it is the revision itself.
func (r *Repository) MergeBase(a, b string) (string, error) {
	output, err := r.runner.Output(r.Dir, "git", "merge-base", a, b)
	if err != nil {
		return "", prqerrors.NewGitErrorWithCause("MergeBase",
			"no merge base for "+a+" and "+b, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// AddRemote registers a new remote. The repository never deletes remotes,
// only creates missing ones.
func (r *Repository) AddRemote(name, url string) error {
	if err := r.runner.Run(r.Dir, "git", "remote", "add", name, url); err != nil {
		return prqerrors.NewGitErrorWithCause("AddRemote", "failed to add remote "+name, err)
	}
	return nil
}

// Fetch fetches from the named remote.
func (r *Repository) Fetch(name string) error {
	if err := r.runner.Run(r.Dir, "git", "fetch", name); err != nil {
		return prqerrors.NewGitErrorWithCause("Fetch", "failed to fetch "+name, err)
	}
	return nil
}

// GitAttached runs a git command with the controlling terminal attached and
// returns its exit code. Used for diff/difftool/merge so pagers and editors
// work exactly as with a direct git invocation.
func (r *Repository) GitAttached(args ...string) (int, error) {
	return r.runner.RunAttached(r.Dir, "git", args...)
}

func splitLines(output []byte) []string {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}
