package resolve

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
)

// ResolveProject determines which hosted project a command operates on.
//
// When override is non-empty it is tried first as a configured remote name;
// if no remote by that name exists, it must parse as a literal "owner/name"
// spec, which is validated eagerly so typos fail before any network call.
//
// With no override, the remotes in searchOrder are consulted in order and
// the first one pointing at a hosted project wins. Remotes that exist but
// point elsewhere (local paths, other forges) are skipped.
func ResolveProject(repo LocalRepo, override string, searchOrder []string) (git.Project, error) {
	if override != "" {
		return resolveOverride(repo, override)
	}

	for _, name := range searchOrder {
		project, err := repo.ProjectForRemote(name)
		if err != nil {
			if stderrors.Is(err, git.ErrRemoteNotFound) {
				slog.Debug("remote not configured, trying next", "remote", name)
				continue
			}
			slog.Debug("remote is not a hosted project, trying next", "remote", name)
			continue
		}
		slog.Debug("resolved project from remote", "remote", name, "project", project.String())
		return project, nil
	}

	return git.Project{}, errors.NewProjectSearchError(searchOrder,
		"no remote points at a hosted project")
}

func resolveOverride(repo LocalRepo, override string) (git.Project, error) {
	project, err := repo.ProjectForRemote(override)
	if err == nil {
		slog.Debug("resolved project from remote override", "remote", override, "project", project.String())
		return project, nil
	}
	if !stderrors.Is(err, git.ErrRemoteNotFound) {
		return git.Project{}, errors.NewProjectError(override,
			fmt.Sprintf("remote %q does not point at a hosted project", override))
	}

	project, perr := git.ParseProject(override)
	if perr != nil {
		return git.Project{}, errors.NewProjectError(override,
			"not a configured remote and not a valid owner/name spec")
	}
	slog.Debug("resolved project from literal spec", "project", project.String())
	return project, nil
}
