package github

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/oauth2"

	"prq.dev/prq/pkg/config"
	prqerrors "prq.dev/prq/pkg/errors"
	"prq.dev/prq/pkg/git"
)

// Client defines the hosted-API operations the resolution pipeline depends on.
type Client interface {
	// IsAuthenticated checks if the client is authenticated with GitHub.
	IsAuthenticated() bool

	// ListPullRequests lists the open pull requests for a project.
	ListPullRequests(ctx context.Context, project git.Project) ([]PullRequest, error)

	// GetPullRequest retrieves a pull request by number.
	// A missing PR yields a PullRequestError.
	GetPullRequest(ctx context.Context, project git.Project, number int) (*PullRequest, error)

	// GetRepository retrieves repository metadata, including the default branch.
	GetRepository(ctx context.Context, project git.Project) (*Repository, error)
}

// Compile-time check that the implementation satisfies the Client interface.
var _ Client = (*APIClient)(nil)

// NewClient creates a GitHub client based on the provided configuration.
//
// Token resolution order:
//  1. GITHUB_TOKEN environment variable
//  2. PRQ_GITHUB_TOKEN environment variable
//  3. Token from config file (github.token)
//  4. Cached OAuth token (keychain or file)
//  5. OAuth device flow (if client_id configured)
//  6. Unauthenticated API access (public repositories only)
func NewClient(cfg *config.GitHubConfig, verbose bool) (Client, error) {
	if cfg == nil {
		return nil, prqerrors.NewGitHubError("NewClient", "github config is required")
	}

	// Check environment variable tokens first (highest precedence)
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("PRQ_GITHUB_TOKEN")
	}
	if token == "" {
		token = cfg.Token
	}

	switch cfg.AuthMethod {
	case "token":
		if token == "" {
			return nil, prqerrors.NewGitHubError("NewClient",
				"token auth requires GITHUB_TOKEN, PRQ_GITHUB_TOKEN env var, or github.token in config")
		}
		return NewAPIClient(token, verbose), nil

	case "oauth":
		return newOAuthClient(cfg, verbose)

	case "anonymous":
		return NewAPIClient("", verbose), nil

	case "":
		// Auto: prefer a token, then a cached OAuth token, then anonymous.
		if token != "" {
			return NewAPIClient(token, verbose), nil
		}
		if cached := cachedOAuthToken(verbose); cached != "" {
			return NewAPIClient(cached, verbose), nil
		}
		if verbose {
			slog.Debug("no credentials found, using unauthenticated API access")
		}
		return NewAPIClient("", verbose), nil

	default:
		return nil, prqerrors.NewGitHubError("NewClient", "unknown auth method: "+cfg.AuthMethod)
	}
}

// newOAuthClient creates a client using OAuth device flow with token caching.
func newOAuthClient(cfg *config.GitHubConfig, verbose bool) (Client, error) {
	cache := NewTokenCache()

	// Try cached token first
	cachedToken, err := cache.Get()
	if err != nil && verbose {
		slog.Debug("failed to read cached token", "error", err)
	}

	if cachedToken != nil && cachedToken.Valid() {
		if verbose {
			slog.Debug("using cached OAuth token")
		}
		return NewAPIClient(cachedToken.AccessToken, verbose), nil
	}

	// No valid cached token - need to do device flow
	if cfg.ClientID == "" {
		return nil, prqerrors.NewGitHubError("NewClient",
			"oauth auth requires github.client_id in config")
	}

	oauthCfg := OAuthConfig{
		ClientID: cfg.ClientID,
		Scopes:   []string{"repo"},
	}

	apiToken, err := DeviceAuth(context.Background(), oauthCfg, os.Stdout)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken: apiToken.Token,
		TokenType:   apiToken.Type,
	}

	if cacheErr := cache.Set(token); cacheErr != nil {
		// Auth succeeded; a cache miss next run just repeats device flow.
		if verbose {
			slog.Debug("failed to cache token", "error", cacheErr)
		}
	}

	return NewAPIClient(token.AccessToken, verbose), nil
}

// cachedOAuthToken returns a previously cached OAuth token, if one is still valid.
func cachedOAuthToken(verbose bool) string {
	cached, err := NewTokenCache().Get()
	if err != nil {
		if verbose {
			slog.Debug("failed to read cached token", "error", err)
		}
		return ""
	}
	if cached != nil && cached.Valid() {
		return cached.AccessToken
	}
	return ""
}
