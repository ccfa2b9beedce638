package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantRemotes := []string{"origin", "upstream"}
	if len(cfg.Git.DefaultRemotes) != len(wantRemotes) {
		t.Fatalf("DefaultRemotes = %v, want %v", cfg.Git.DefaultRemotes, wantRemotes)
	}
	for i, name := range wantRemotes {
		if cfg.Git.DefaultRemotes[i] != name {
			t.Errorf("DefaultRemotes[%d] = %q, want %q", i, cfg.Git.DefaultRemotes[i], name)
		}
	}
	if cfg.Git.RemoteProtocol != "ssh" {
		t.Errorf("RemoteProtocol = %q, want %q", cfg.Git.RemoteProtocol, "ssh")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				Git:    GitConfig{DefaultRemotes: []string{"origin"}, RemoteProtocol: "ssh"},
				GitHub: GitHubConfig{AuthMethod: "token"},
			},
		},
		{
			name: "empty auth method allowed",
			cfg: Config{
				Git: GitConfig{DefaultRemotes: []string{"origin"}},
			},
		},
		{
			name: "bad auth method",
			cfg: Config{
				Git:    GitConfig{DefaultRemotes: []string{"origin"}},
				GitHub: GitHubConfig{AuthMethod: "gh_cli"},
			},
			wantErr: true,
		},
		{
			name:    "empty remote search order",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "bad remote protocol",
			cfg: Config{
				Git: GitConfig{DefaultRemotes: []string{"origin"}, RemoteProtocol: "ftp"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckSecurityWarnings(t *testing.T) {
	t.Setenv("PRQ_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	cfg := &Config{GitHub: GitHubConfig{Token: "ghp_secret"}}
	warnings := CheckSecurityWarnings(cfg)
	if len(warnings) != 1 || warnings[0].Field != "github.token" {
		t.Errorf("CheckSecurityWarnings() = %v, want single github.token warning", warnings)
	}

	t.Setenv("GITHUB_TOKEN", "ghp_env")
	if warnings := CheckSecurityWarnings(cfg); len(warnings) != 0 {
		t.Errorf("CheckSecurityWarnings() = %v, want none when env var is set", warnings)
	}
}
