//go:build integration

package github

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/stackscope/pkg/integrations"
)

func TestRepository_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	client := NewClient(token)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		owner   string
		repo    string
		wantErr bool
	}{
		{"octocat/Hello-World", "octocat", "Hello-World", false},
		{"nonexistent", "nonexistent-owner-12345", "nonexistent-repo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := client.Repository(ctx, tt.owner, tt.repo)
			if (err != nil) != tt.wantErr {
				t.Errorf("Repository(%q, %q) error = %v, wantErr %v", tt.owner, tt.repo, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, integrations.ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
				return
			}
			if repo.Name != tt.repo {
				t.Errorf("Name = %q, want %q", repo.Name, tt.repo)
			}
		})
	}
}

func TestOrgRepos_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	client := NewClient(token)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := client.OrgRepos(ctx, "github", 5)
	if err != nil {
		t.Fatalf("OrgRepos() error: %v", err)
	}
	if len(repos) == 0 || len(repos) > 5 {
		t.Errorf("OrgRepos() returned %d repos, want 1..5", len(repos))
	}
}
