package analyzer

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

// fakeGitHub serves a tiny in-memory slice of the GitHub REST API.
// Keys are "owner/repo" for repositories and "owner/repo/path" for contents.
type fakeGitHub struct {
	repos        map[string]github.Repository
	contributors map[string][]github.Contributor
	languages    map[string]map[string]int64
	dirs         map[string][]github.ContentItem
	files        map[string]string
	orgs         map[string]github.Organization
	users        map[string]github.User
	orgRepos     map[string][]github.Repository
	userRepos    map[string][]github.Repository

	// fail forces a status code for an exact request path.
	fail map[string]int

	mu       sync.Mutex
	requests []string
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		repos:        map[string]github.Repository{},
		contributors: map[string][]github.Contributor{},
		languages:    map[string]map[string]int64{},
		dirs:         map[string][]github.ContentItem{},
		files:        map[string]string{},
		orgs:         map[string]github.Organization{},
		users:        map[string]github.User{},
		orgRepos:     map[string][]github.Repository{},
		userRepos:    map[string][]github.Repository{},
		fail:         map[string]int{},
	}
}

func (f *fakeGitHub) requested(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r == path {
			return true
		}
	}
	return false
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path)
	f.mu.Unlock()

	if status, ok := f.fail[r.URL.Path]; ok {
		w.WriteHeader(status)
		io.WriteString(w, `{"message":"forced failure"}`)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case parts[0] == "repos" && len(parts) == 3:
		f.write(w, f.repos[parts[1]+"/"+parts[2]], has(f.repos, parts[1]+"/"+parts[2]))
	case parts[0] == "repos" && len(parts) == 4 && parts[3] == "contributors":
		c, ok := f.contributors[parts[1]+"/"+parts[2]]
		if ok && len(c) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		f.write(w, c, ok)
	case parts[0] == "repos" && len(parts) == 4 && parts[3] == "languages":
		l, ok := f.languages[parts[1]+"/"+parts[2]]
		f.write(w, l, ok)
	case parts[0] == "repos" && len(parts) >= 4 && parts[3] == "contents":
		key := parts[1] + "/" + parts[2] + "/" + strings.Join(parts[4:], "/")
		if raw, ok := f.files[key]; ok {
			f.write(w, map[string]any{
				"name":     parts[len(parts)-1],
				"path":     strings.Join(parts[4:], "/"),
				"type":     "file",
				"size":     len(raw),
				"encoding": "base64",
				"content":  base64.StdEncoding.EncodeToString([]byte(raw)),
			}, true)
			return
		}
		d, ok := f.dirs[key]
		f.write(w, d, ok)
	case parts[0] == "orgs" && len(parts) == 2:
		f.write(w, f.orgs[parts[1]], has(f.orgs, parts[1]))
	case parts[0] == "orgs" && len(parts) == 3:
		rs, ok := f.orgRepos[parts[1]]
		f.write(w, rs, ok)
	case parts[0] == "users" && len(parts) == 2:
		f.write(w, f.users[parts[1]], has(f.users, parts[1]))
	case parts[0] == "users" && len(parts) == 3:
		rs, ok := f.userRepos[parts[1]]
		f.write(w, rs, ok)
	default:
		http.NotFound(w, r)
	}
}

func has[V any](m map[string]V, key string) bool {
	_, ok := m[key]
	return ok
}

func (f *fakeGitHub) write(w http.ResponseWriter, v any, ok bool) {
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Not Found"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// newTestService starts the fake and returns a service talking to it.
func newTestService(t *testing.T, f *fakeGitHub) *Service {
	t.Helper()
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	gh := github.NewClient("", github.WithBaseURL(server.URL), github.WithHTTPClient(server.Client()))
	return NewService(gh, log.New(io.Discard))
}

func repoNamed(name string, stars int) github.Repository {
	return github.Repository{Name: name, FullName: name, StargazersCount: stars}
}
