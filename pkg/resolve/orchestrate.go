package resolve

import (
	"fmt"
	"log/slog"
	"strings"

	"prq.dev/prq/pkg/errors"
)

// Kind selects the git operation a DiffRequest performs.
type Kind string

const (
	KindDiff     Kind = "diff"
	KindDifftool Kind = "difftool"
	KindMerge    Kind = "merge"
)

// DiffRequest is the fully resolved plan for one diff, difftool, or merge
// invocation. It is constructed once per run, after remotes and objects are
// confirmed, and never mutated.
type DiffRequest struct {
	Kind         Kind
	SourceRemote string
	SourceBranch string
	TargetRemote string
	TargetBranch string
	MergeBase    string
	Message      string // merge commit message, KindMerge only
	ExtraArgs    []string
}

// NewDiffRequest validates that both sides of the pull request are present
// locally and computes the merge base between them. The diff baseline is the
// merge base, not the target tip, so the result reflects only the pull
// request's own commits even when the target branch has advanced.
//
// extraArgs is the raw pass-through string after the CLI separator; it is
// split on whitespace so redundant spacing collapses.
func NewDiffRequest(repo LocalRepo, kind Kind, sourceRemote, sourceBranch, targetRemote, targetBranch, headSHA, baseSHA, message, extraArgs string) (*DiffRequest, error) {
	if headSHA != "" && !repo.HasObject(headSHA) {
		return nil, errors.NewGitError("cat-file",
			fmt.Sprintf("source commit %s not present locally after fetch of %s", headSHA, sourceRemote))
	}
	if baseSHA != "" && !repo.HasObject(baseSHA) {
		return nil, errors.NewGitError("cat-file",
			fmt.Sprintf("target commit %s not present locally after fetch of %s", baseSHA, targetRemote))
	}

	source := sourceRemote + "/" + sourceBranch
	target := targetRemote + "/" + targetBranch
	base, err := repo.MergeBase(source, target)
	if err != nil {
		return nil, err
	}
	slog.Debug("computed merge base", "source", source, "target", target, "base", base)

	return &DiffRequest{
		Kind:         kind,
		SourceRemote: sourceRemote,
		SourceBranch: sourceBranch,
		TargetRemote: targetRemote,
		TargetBranch: targetBranch,
		MergeBase:    base,
		Message:      message,
		ExtraArgs:    strings.Fields(extraArgs),
	}, nil
}

// SourceRef is the remote-tracking ref for the pull request's source branch.
func (d *DiffRequest) SourceRef() string {
	return d.SourceRemote + "/" + d.SourceBranch
}

// GitArgs builds the argument list for the git invocation. Extra args go
// directly after the subcommand, before the positional refs, matching where
// git expects its option flags.
func (d *DiffRequest) GitArgs() []string {
	args := []string{string(d.Kind)}
	args = append(args, d.ExtraArgs...)
	switch d.Kind {
	case KindMerge:
		args = append(args, "--no-ff", "-m", d.Message, d.SourceRef())
	default:
		args = append(args, d.MergeBase+".."+d.SourceRef())
	}
	return args
}

// Run executes the request attached to the controlling terminal and returns
// the child's exit code. Interactive pagers and editors behave exactly as a
// direct git invocation would.
func (d *DiffRequest) Run(repo LocalRepo) (int, error) {
	return repo.GitAttached(d.GitArgs()...)
}
