package git

import (
	"fmt"
	"regexp"
	"strings"

	prqerrors "prq.dev/prq/pkg/errors"
)

// Project identifies a hosted repository as (owner, name). Its canonical
// string form "owner/name" is the key used against the hosted API.
type Project struct {
	Owner string
	Name  string
}

// String returns the canonical owner/name form.
func (p Project) String() string {
	return p.Owner + "/" + p.Name
}

// IsZero reports whether the project is unset.
func (p Project) IsZero() bool {
	return p.Owner == "" && p.Name == ""
}

// SSHURL returns the SSH clone URL for the project.
func (p Project) SSHURL() string {
	return fmt.Sprintf("git@github.com:%s/%s.git", p.Owner, p.Name)
}

// HTTPSURL returns the HTTPS clone URL for the project.
func (p Project) HTTPSURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", p.Owner, p.Name)
}

// WebURL returns the browser URL for the project.
func (p Project) WebURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", p.Owner, p.Name)
}

// Remote URL patterns for GitHub-hosted repositories. Any URL that matches
// none of these does not map to a hosted project.
var (
	// SSH format: git@github.com:owner/repo.git or git@github.com:owner/repo
	sshURLRegex = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?$`)

	// HTTPS format: https://github.com/owner/repo or https://github.com/owner/repo.git
	httpsURLRegex = regexp.MustCompile(`^https?://github\.com/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?/?$`)

	// owner/name form used by the -p flag
	projectRegex = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+)$`)
)

// ParseRemoteURL extracts the hosted project from a remote URL. It recognizes
// the SSH and HTTPS GitHub URL forms; any other URL yields an error rather
// than a silently empty project.
func ParseRemoteURL(url string) (Project, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Project{}, prqerrors.New("empty remote URL")
	}

	if matches := sshURLRegex.FindStringSubmatch(url); len(matches) == 3 {
		return Project{Owner: matches[1], Name: matches[2]}, nil
	}

	if matches := httpsURLRegex.FindStringSubmatch(url); len(matches) == 3 {
		return Project{Owner: matches[1], Name: matches[2]}, nil
	}

	return Project{}, prqerrors.Newf("remote URL %q is not a GitHub repository URL", url)
}

// ParseProject parses an explicit owner/name string, as given to -p.
// The shape is validated eagerly so a malformed project string fails before
// any network call is made.
func ParseProject(s string) (Project, error) {
	s = strings.TrimSpace(s)
	if matches := projectRegex.FindStringSubmatch(s); len(matches) == 3 {
		return Project{Owner: matches[1], Name: matches[2]}, nil
	}
	return Project{}, prqerrors.Newf("invalid project %q: expected owner/name", s)
}
