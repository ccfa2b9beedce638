// Package errors provides typed errors for the prq project.
//
// This package defines domain-specific error types for the resolution
// pipeline (project resolution, PR lookup, branch checks, git execution,
// GitHub API). All error types implement the standard error interface and
// support errors.Is() and errors.As() from the standard library and
// cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// ProjectError is returned when no hosted project can be resolved for an
// invocation. It is fatal: every later stage of the pipeline needs a project,
// so callers must abort before any network call is made.
type ProjectError struct {
	Override string   // The explicit -p value, if one was given
	Searched []string // Remote names walked when no override was given
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	if e.Override != "" {
		return fmt.Sprintf("cannot resolve project from %q: %s", e.Override, e.Message)
	}
	if len(e.Searched) > 0 {
		return fmt.Sprintf("no project resolved from remotes %v: %s", e.Searched, e.Message)
	}
	return "no project resolved: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ProjectError) Unwrap() error {
	return e.Cause
}

// NewProjectError creates a ProjectError for a failed override.
func NewProjectError(override, message string) *ProjectError {
	return &ProjectError{Override: override, Message: message}
}

// NewProjectSearchError creates a ProjectError for an exhausted remote search.
func NewProjectSearchError(searched []string, message string) *ProjectError {
	return &ProjectError{Searched: searched, Message: message}
}

// PullRequestError is returned when an explicitly requested pull request
// cannot be found on the hosted project.
type PullRequestError struct {
	Project string // owner/name form
	Number  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PullRequestError) Error() string {
	if e.Number > 0 {
		return fmt.Sprintf("pull request #%d not found on %s: %s", e.Number, e.Project, e.Message)
	}
	return fmt.Sprintf("pull request lookup on %s failed: %s", e.Project, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *PullRequestError) Unwrap() error {
	return e.Cause
}

// NewPullRequestError creates a new PullRequestError.
func NewPullRequestError(project string, number int, message string) *PullRequestError {
	return &PullRequestError{Project: project, Number: number, Message: message}
}

// NewPullRequestErrorWithCause creates a new PullRequestError with an underlying cause.
func NewPullRequestErrorWithCause(project string, number int, message string, cause error) *PullRequestError {
	return &PullRequestError{Project: project, Number: number, Message: message, Cause: cause}
}

// BranchReason classifies why a branch aborted the pipeline.
type BranchReason string

const (
	// ReasonUnknownBranch means the named branch does not exist locally.
	ReasonUnknownBranch BranchReason = "unknown"
	// ReasonNeverPushed means the branch was never pushed to a hosted remote.
	ReasonNeverPushed BranchReason = "never_pushed"
	// ReasonDefaultBranch means the branch is the project's default branch,
	// so there is nothing to compare against.
	ReasonDefaultBranch BranchReason = "default_branch"
)

// BranchError is returned when a branch-based target cannot proceed.
type BranchError struct {
	Branch string
	Reason BranchReason
}

// Error implements the error interface.
func (e *BranchError) Error() string {
	switch e.Reason {
	case ReasonNeverPushed:
		return fmt.Sprintf("branch %q has no matching remote branch on a hosted remote", e.Branch)
	case ReasonDefaultBranch:
		return fmt.Sprintf("branch %q is the default branch, nothing to compare", e.Branch)
	default:
		return fmt.Sprintf("unknown branch %q", e.Branch)
	}
}

// NewBranchError creates a new BranchError.
func NewBranchError(branch string, reason BranchReason) *BranchError {
	return &BranchError{Branch: branch, Reason: reason}
}

// GitError represents a failed git subprocess invocation.
type GitError struct {
	Operation string // e.g., "MergeBase", "Fetch"
	ExitCode  int
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *GitError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("git %s failed (exit %d): %s", e.Operation, e.ExitCode, e.Message)
	}
	return fmt.Sprintf("git %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *GitError) Unwrap() error {
	return e.Cause
}

// NewGitError creates a new GitError.
func NewGitError(operation, message string) *GitError {
	return &GitError{Operation: operation, Message: message}
}

// NewGitErrorWithCause creates a new GitError with an underlying cause.
func NewGitErrorWithCause(operation, message string, cause error) *GitError {
	return &GitError{Operation: operation, Message: message, Cause: cause}
}

// GitHubError represents GitHub API errors.
type GitHubError struct {
	Operation  string // e.g., "GetPullRequest", "ListPullRequests"
	StatusCode int    // HTTP status code if applicable
	Message    string
	Retryable  bool
	Cause      error
}

// Error implements the error interface.
func (e *GitHubError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("github %s failed (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *GitHubError) Unwrap() error {
	return e.Cause
}

// NewGitHubError creates a new GitHubError.
func NewGitHubError(operation, message string) *GitHubError {
	return &GitHubError{Operation: operation, Message: message}
}

// NewGitHubErrorWithStatus creates a new GitHubError with HTTP status code.
func NewGitHubErrorWithStatus(operation string, statusCode int, message string) *GitHubError {
	return &GitHubError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
		Retryable:  isRetryableHTTPStatus(statusCode),
	}
}

// NewGitHubErrorWithCause creates a new GitHubError with an underlying cause.
func NewGitHubErrorWithCause(operation, message string, cause error) *GitHubError {
	return &GitHubError{
		Operation: operation,
		Message:   message,
		Retryable: IsRetryable(cause),
		Cause:     cause,
	}
}

// IsRetryable checks if an error or any error in its chain is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return ghErr.Retryable
	}

	return false
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsProjectError checks if an error or any error in its chain is a ProjectError.
func IsProjectError(err error) bool {
	var projErr *ProjectError
	return errors.As(err, &projErr)
}

// IsPullRequestError checks if an error or any error in its chain is a PullRequestError.
func IsPullRequestError(err error) bool {
	var prErr *PullRequestError
	return errors.As(err, &prErr)
}

// IsBranchError checks if an error in the chain is a BranchError with the given reason.
func IsBranchError(err error, reason BranchReason) bool {
	var brErr *BranchError
	if !errors.As(err, &brErr) {
		return false
	}
	return brErr.Reason == reason
}

// IsGitError checks if an error or any error in its chain is a GitError.
func IsGitError(err error) bool {
	var gitErr *GitError
	return errors.As(err, &gitErr)
}

// IsGitHubError checks if an error or any error in its chain is a GitHubError.
func IsGitHubError(err error) bool {
	var ghErr *GitHubError
	return errors.As(err, &ghErr)
}

// isRetryableHTTPStatus returns true for HTTP status codes that are typically retryable.
func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use prqerrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
