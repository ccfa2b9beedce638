package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	prqerrors "prq.dev/prq/pkg/errors"
)

// Version is set at build time via ldflags.
var Version = "dev"

// GetVersion returns the current binary version.
func GetVersion() string {
	return Version
}

const (
	repoOwner = "prq-dev"
	repoName  = "prq"
)

var (
	updateCheck bool
	updateForce bool
	updatePre   bool
	updateYes   bool
)

// updateCmd updates prq to the latest release.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update prq to the latest version",
	Long: `Update prq to the latest version from GitHub releases.

Downloads the release binary for your platform, verifies its checksums,
and replaces the running executable in place.

Examples:
  prq update           # Update to the latest release
  prq update --check   # Check for updates without installing
  prq update --yes     # Update without confirmation
  prq update --force   # Reinstall even if already up to date
  prq update --pre     # Include pre-release versions`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVarP(&updateCheck, "check", "c", false, "Check for updates without installing")
	updateCmd.Flags().BoolVarP(&updateForce, "force", "f", false, "Force update even if already up to date")
	// no shorthand: -p is the global project override
	updateCmd.Flags().BoolVar(&updatePre, "pre", false, "Include pre-release versions")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "Skip confirmation prompt")
}

func runUpdate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	prerelease := updatePre
	if cfg, err := loadConfig(); err == nil && cfg.Update.Prerelease {
		prerelease = true
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Prerelease: prerelease,
	})
	if err != nil {
		return prqerrors.Wrap(err, "failed to create updater")
	}

	repo := selfupdate.NewRepositorySlug(repoOwner, repoName)
	latest, found, err := updater.DetectLatest(ctx, repo)
	if err != nil {
		return prqerrors.Wrap(err, "failed to check for updates")
	}
	if !found {
		fmt.Println("No releases found.")
		return nil
	}

	isDevVersion := Version == "dev"
	if !isDevVersion {
		current, err := semver.NewVersion(Version)
		if err != nil {
			return prqerrors.Wrapf(err, "invalid current version %q", Version)
		}
		latestVersion, err := semver.NewVersion(latest.Version())
		if err != nil {
			return prqerrors.Wrapf(err, "invalid release version %q", latest.Version())
		}
		if !latestVersion.GreaterThan(current) && !updateForce {
			fmt.Printf("prq is up to date (%s)\n", Version)
			return nil
		}
	}

	if updateCheck {
		fmt.Printf("Update available: %s -> %s\n", Version, latest.Version())
		return nil
	}

	if !updateYes && !confirmUpdate(Version, latest.Version()) {
		fmt.Println("Update cancelled.")
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return prqerrors.Wrap(err, "failed to locate executable")
	}

	fmt.Printf("Updating to %s...\n", latest.Version())
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return prqerrors.Wrap(err, "failed to update binary")
	}

	fmt.Printf("Updated prq to %s\n", latest.Version())
	return nil
}

// confirmUpdate prompts for confirmation before replacing the binary.
func confirmUpdate(currentVersion, newVersion string) bool {
	fmt.Printf("Update prq from %s to %s? [y/N]: ", currentVersion, newVersion)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
