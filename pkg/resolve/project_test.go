package resolve

import (
	"testing"

	"prq.dev/prq/pkg/errors"
)

func TestResolveProject(t *testing.T) {
	tests := []struct {
		name        string
		remotes     map[string]string
		override    string
		searchOrder []string
		want        string
		wantErr     bool
	}{
		{
			name:        "first remote in search order wins",
			remotes:     map[string]string{"origin": "git@github.com:acme/widgets.git"},
			searchOrder: []string{"origin", "upstream"},
			want:        "acme/widgets",
		},
		{
			name: "missing origin falls through to upstream",
			remotes: map[string]string{
				"upstream": "https://github.com/acme/widgets.git",
			},
			searchOrder: []string{"origin", "upstream"},
			want:        "acme/widgets",
		},
		{
			name: "non-hosted remote is skipped",
			remotes: map[string]string{
				"origin":   "/srv/git/widgets.git",
				"upstream": "git@github.com:acme/widgets.git",
			},
			searchOrder: []string{"origin", "upstream"},
			want:        "acme/widgets",
		},
		{
			name: "override naming a remote beats search order",
			remotes: map[string]string{
				"origin": "git@github.com:acme/widgets.git",
				"bob":    "git@github.com:bob/widgets.git",
			},
			override:    "bob",
			searchOrder: []string{"origin", "upstream"},
			want:        "bob/widgets",
		},
		{
			name:        "override parsed as literal owner/name",
			remotes:     map[string]string{"origin": "git@github.com:acme/widgets.git"},
			override:    "carol/widgets",
			searchOrder: []string{"origin"},
			want:        "carol/widgets",
		},
		{
			name:        "malformed override rejected eagerly",
			remotes:     map[string]string{"origin": "git@github.com:acme/widgets.git"},
			override:    "not a project",
			searchOrder: []string{"origin"},
			wantErr:     true,
		},
		{
			name:        "override naming a non-hosted remote fails",
			remotes:     map[string]string{"backup": "/srv/git/widgets.git"},
			override:    "backup",
			searchOrder: []string{"origin"},
			wantErr:     true,
		},
		{
			name:        "no candidates",
			remotes:     map[string]string{},
			searchOrder: []string{"origin", "upstream"},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.Remote = tt.remotes

			project, err := ResolveProject(repo, tt.override, tt.searchOrder)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got project %s", project.String())
				}
				if !errors.IsProjectError(err) {
					t.Errorf("expected ProjectError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if project.String() != tt.want {
				t.Errorf("expected project %s, got %s", tt.want, project.String())
			}
		})
	}
}

func TestResolveProjectOverrideNeverFallsThrough(t *testing.T) {
	repo := newFakeRepo()
	repo.Remote = map[string]string{
		"origin": "git@github.com:acme/widgets.git",
		"bob":    "git@github.com:bob/widgets.git",
	}

	project, err := ResolveProject(repo, "bob", []string{"origin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.String() != "bob/widgets" {
		t.Errorf("override must resolve to its own remote, got %s", project.String())
	}
}
