package errors

import (
	"fmt"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	// Check for ConfigError
	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	// Check for ProjectError
	var projErr *ProjectError
	if As(err, &projErr) {
		return formatProjectError(projErr)
	}

	// Check for PullRequestError
	var prErr *PullRequestError
	if As(err, &prErr) {
		return formatPullRequestError(prErr)
	}

	// Check for BranchError
	var brErr *BranchError
	if As(err, &brErr) {
		return formatBranchError(brErr)
	}

	// Check for GitHubError
	var ghErr *GitHubError
	if As(err, &ghErr) {
		return formatGitHubError(ghErr)
	}

	// Check for GitError
	var gitErr *GitError
	if As(err, &gitErr) {
		return formatGitError(gitErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/prq/config.toml\n")
	b.WriteString("  • Run 'prq config init' to write a fresh default config\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatProjectError formats a ProjectError with actionable guidance.
func formatProjectError(err *ProjectError) string {
	var b strings.Builder

	b.WriteString(err.Error())
	b.WriteString("\n\nTo fix this:\n")
	if err.Override != "" {
		b.WriteString("  • Pass -p with a configured remote name, or an owner/name pair\n")
		b.WriteString("  • Run 'git remote -v' to see which remotes exist\n")
	} else {
		b.WriteString("  • Ensure one of your remotes points at a GitHub repository\n")
		b.WriteString("  • Or name the project explicitly with -p owner/name\n")
		b.WriteString("  • The remote search order is git.default_remotes in the config file\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatPullRequestError formats a PullRequestError with actionable guidance.
func formatPullRequestError(err *PullRequestError) string {
	var b strings.Builder

	b.WriteString(err.Error())
	b.WriteString("\n\nTo fix this:\n")
	b.WriteString("  • Verify the PR number with 'prq list'\n")
	b.WriteString("  • Check that -p names the right project\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatBranchError formats a BranchError with actionable guidance.
func formatBranchError(err *BranchError) string {
	var b strings.Builder

	b.WriteString(err.Error())

	switch err.Reason {
	case ReasonUnknownBranch:
		b.WriteString("\n\nTo fix this:\n")
		b.WriteString("  • Check the branch name with 'git branch'\n")
	case ReasonNeverPushed:
		b.WriteString("\n\nTo fix this:\n")
		fmt.Fprintf(&b, "  • Push the branch first: git push -u origin %s\n", err.Branch)
	case ReasonDefaultBranch:
		b.WriteString("\n\nSwitch to a feature branch, or name a PR number explicitly.\n")
	}

	return b.String()
}

// formatGitHubError formats a GitHubError with actionable guidance based on status code.
func formatGitHubError(err *GitHubError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "GitHub error during %s: %s\n", err.Operation, err.Message)

	switch err.StatusCode {
	case 401:
		b.WriteString("\nAuthentication failed. To fix this:\n")
		b.WriteString("  • Set the GITHUB_TOKEN or PRQ_GITHUB_TOKEN environment variable\n")
		b.WriteString("  • Or configure github.client_id for OAuth device flow\n")
		b.WriteString("  • Ensure your token has the 'repo' scope\n")

	case 403:
		b.WriteString("\nPermission denied. To fix this:\n")
		b.WriteString("  • Ensure you have access to this repository\n")
		b.WriteString("  • Check that your token has the 'repo' scope\n")
		b.WriteString("  • If using SSO, ensure the token is authorized for your organization\n")

	case 404:
		b.WriteString("\nResource not found. To fix this:\n")
		b.WriteString("  • Verify the repository name and owner are correct\n")
		b.WriteString("  • Private repositories need an authenticated token\n")

	case 429:
		b.WriteString("\nRate limit exceeded. To fix this:\n")
		b.WriteString("  • Wait a few minutes before retrying\n")
		b.WriteString("  • Authenticated requests get much higher rate limits\n")

	case 500, 502, 503, 504:
		b.WriteString("\nGitHub server error. To fix this:\n")
		b.WriteString("  • Wait a few moments and try again\n")
		b.WriteString("  • Check GitHub Status: https://www.githubstatus.com\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatGitError formats a GitError with actionable guidance.
func formatGitError(err *GitError) string {
	var b strings.Builder

	b.WriteString(err.Error())
	b.WriteString("\n\nTo fix this:\n")
	b.WriteString("  • Run the command again with --verbose to see the git invocation\n")
	b.WriteString("  • Check that the working directory is a git repository\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
