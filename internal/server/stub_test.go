package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/integrations"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

// stubGitHub is an in-memory analyzer.GitHub. Missing keys fail with
// integrations.ErrNotFound; keys in broken fail with a network error.
type stubGitHub struct {
	repos     map[string]*github.Repository
	languages map[string]map[string]int64
	contents  map[string][]github.ContentItem
	files     map[string]string
	orgs      map[string]*github.Organization
	orgRepos  map[string][]github.Repository
	broken    map[string]bool
}

func newStub() *stubGitHub {
	return &stubGitHub{
		repos:     map[string]*github.Repository{},
		languages: map[string]map[string]int64{},
		contents:  map[string][]github.ContentItem{},
		files:     map[string]string{},
		orgs:      map[string]*github.Organization{},
		orgRepos:  map[string][]github.Repository{},
		broken:    map[string]bool{},
	}
}

func lookup[V any](s *stubGitHub, m map[string]V, key string) (V, error) {
	var zero V
	if s.broken[key] {
		return zero, fmt.Errorf("%s: %w", key, integrations.ErrNetwork)
	}
	v, ok := m[key]
	if !ok {
		return zero, fmt.Errorf("%s: %w", key, integrations.ErrNotFound)
	}
	return v, nil
}

func (s *stubGitHub) Repository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	return lookup(s, s.repos, owner+"/"+repo)
}

func (s *stubGitHub) Contributors(ctx context.Context, owner, repo string, limit int) ([]github.Contributor, error) {
	return []github.Contributor{{Login: owner, Contributions: 3}}, nil
}

func (s *stubGitHub) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	return lookup(s, s.languages, owner+"/"+repo)
}

func (s *stubGitHub) Contents(ctx context.Context, owner, repo, path string) ([]github.ContentItem, error) {
	return lookup(s, s.contents, owner+"/"+repo+"/"+path)
}

func (s *stubGitHub) File(ctx context.Context, owner, repo, path string) (*github.FileContent, error) {
	raw, err := lookup(s, s.files, owner+"/"+repo+"/"+path)
	if err != nil {
		return nil, err
	}
	return &github.FileContent{Path: path, Size: len(raw), Content: []byte(raw)}, nil
}

func (s *stubGitHub) Organization(ctx context.Context, org string) (*github.Organization, error) {
	return lookup(s, s.orgs, org)
}

func (s *stubGitHub) OrgRepos(ctx context.Context, org string, perPage int) ([]github.Repository, error) {
	return lookup(s, s.orgRepos, org)
}

func (s *stubGitHub) User(ctx context.Context, login string) (*github.User, error) {
	return nil, fmt.Errorf("user %s: %w", login, integrations.ErrNotFound)
}

func (s *stubGitHub) UserRepos(ctx context.Context, login string, perPage int) ([]github.Repository, error) {
	return nil, fmt.Errorf("user repos %s: %w", login, integrations.ErrNotFound)
}

var _ analyzer.GitHub = (*stubGitHub)(nil)

// fixture is a stub with one repository, octocat/Hello-World, and one
// organization, acme, owning two repositories.
func fixture() *stubGitHub {
	s := newStub()
	s.repos["octocat/Hello-World"] = &github.Repository{Name: "Hello-World", FullName: "octocat/Hello-World", StargazersCount: 42}
	s.languages["octocat/Hello-World"] = map[string]int64{"Go": 900, "HTML": 100}
	s.contents["octocat/Hello-World/"] = []github.ContentItem{
		{Name: "Dockerfile", Type: "file"},
		{Name: "package.json", Type: "file"},
		{Name: "tsconfig.json", Type: "file"},
	}
	s.files["octocat/Hello-World/package.json"] = `{"dependencies":{"express":"^4.18.0"}}`

	s.orgs["acme"] = &github.Organization{Login: "acme"}
	s.orgRepos["acme"] = []github.Repository{
		{Name: "small", FullName: "acme/small", StargazersCount: 1},
		{Name: "big", FullName: "acme/big", StargazersCount: 100},
	}
	s.repos["acme/big"] = &github.Repository{Name: "big", FullName: "acme/big", StargazersCount: 100}
	s.languages["acme/big"] = map[string]int64{"Go": 10}
	s.languages["acme/small"] = map[string]int64{"Go": 5, "Shell": 1}
	return s
}

func newTestServer(t *testing.T, gh analyzer.GitHub) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(analyzer.NewService(gh, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
