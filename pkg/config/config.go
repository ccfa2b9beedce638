package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
// Repository information is derived from git, not configuration.
type Config struct {
	Git    GitConfig    `mapstructure:"git" toml:"git"`
	GitHub GitHubConfig `mapstructure:"github" toml:"github"`
	Update UpdateConfig `mapstructure:"update" toml:"update"`
}

// GitConfig holds local repository behavior.
type GitConfig struct {
	// DefaultRemotes is the ordered list of remote names searched when no
	// explicit project is given.
	DefaultRemotes []string `mapstructure:"default_remotes" toml:"default_remotes"`
	// RemoteProtocol is the URL form used when creating remotes for PR
	// source/target repositories: "ssh" or "https".
	RemoteProtocol string `mapstructure:"remote_protocol" toml:"remote_protocol"`
}

// GitHubConfig holds GitHub integration configuration.
type GitHubConfig struct {
	AuthMethod string `mapstructure:"auth_method" toml:"auth_method"` // "token", "oauth", "anonymous"
	ClientID   string `mapstructure:"client_id" toml:"client_id"`     // OAuth app client ID (for device flow)
	Token      string `mapstructure:"token" toml:"token"`             // For token auth (PRQ_GITHUB_TOKEN env var takes precedence)
}

// UpdateConfig holds self-update configuration.
type UpdateConfig struct {
	Prerelease bool `mapstructure:"prerelease" toml:"prerelease"` // Consider pre-release versions
}

// SecurityWarning represents a configuration security issue.
type SecurityWarning struct {
	Field   string
	Message string
}

// Load loads the configuration from file and environment variables.
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// CheckSecurityWarnings returns warnings for insecure configuration practices.
// Call this when loading config to warn users about tokens stored in config files.
func CheckSecurityWarnings(config *Config) []SecurityWarning {
	var warnings []SecurityWarning

	if config.GitHub.Token != "" && os.Getenv("PRQ_GITHUB_TOKEN") == "" && os.Getenv("GITHUB_TOKEN") == "" {
		warnings = append(warnings, SecurityWarning{
			Field:   "github.token",
			Message: "GitHub token is set in config file. For security, use the GITHUB_TOKEN or PRQ_GITHUB_TOKEN environment variable instead.",
		})
	}

	return warnings
}

// ValidAuthMethods is the list of supported GitHub auth methods.
var ValidAuthMethods = []string{"token", "oauth", "anonymous"}

// ValidateAuthMethod validates that an auth method is supported.
func ValidateAuthMethod(method string) error {
	if method == "" {
		return nil // Empty is allowed, resolved at client construction
	}
	for _, valid := range ValidAuthMethods {
		if method == valid {
			return nil
		}
	}
	return errors.Newf("invalid auth method %q: must be one of: token, oauth, anonymous", method)
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if err := ValidateAuthMethod(c.GitHub.AuthMethod); err != nil {
		return errors.Wrap(err, "github.auth_method")
	}
	if len(c.Git.DefaultRemotes) == 0 {
		return errors.New("git.default_remotes must not be empty")
	}
	switch c.Git.RemoteProtocol {
	case "", "ssh", "https":
	default:
		return errors.Newf("invalid git.remote_protocol %q: must be ssh or https", c.Git.RemoteProtocol)
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	// Git defaults
	viper.SetDefault("git.default_remotes", []string{"origin", "upstream"})
	viper.SetDefault("git.remote_protocol", "ssh")

	// GitHub defaults
	viper.SetDefault("github.auth_method", "") // Auto: token if available, else anonymous
	viper.SetDefault("github.client_id", "")
	viper.SetDefault("github.token", "")

	// Update defaults
	viper.SetDefault("update.prerelease", false)
}
