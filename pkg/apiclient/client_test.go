package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackscope/pkg/detect"
	apperrors "github.com/matzehuels/stackscope/pkg/errors"
)

const helloWorld = "https://github.com/octocat/Hello-World"

func newAPI(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithHTTPClient(srv.Client()), WithRetry(3, time.Millisecond))
}

func TestClientEndpoints(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		assert.Equal(t, helloWorld, r.URL.Query().Get("url"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/api/repo/info":
			io.WriteString(w, `{"repoInfo":{"full_name":"octocat/Hello-World","stargazers_count":42},"contributors":[],"isOrganization":false,"isUser":false}`)
		case "/api/repo/languages":
			io.WriteString(w, `{"Go":900,"HTML":100}`)
		case "/api/repo/technologies":
			io.WriteString(w, `{"technologies":["Docker","Node.js"],"packageDetails":{"dependencies":{"express":"^4.18.0"},"devDependencies":{}}}`)
		case "/api/repo/schema":
			io.WriteString(w, `{"nodes":[{"id":"Node.js","label":"Node.js","category":"backend","color":"#10B981"}],"links":[]}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	info, err := c.Info(ctx, helloWorld)
	require.NoError(t, err)
	assert.Equal(t, "octocat/Hello-World", info.RepoInfo.FullName)
	assert.Equal(t, 42, info.RepoInfo.StargazersCount)

	langs, err := c.Languages(ctx, helloWorld)
	require.NoError(t, err)
	assert.Equal(t, int64(900), langs["Go"])

	tech, err := c.Technologies(ctx, helloWorld)
	require.NoError(t, err)
	assert.Equal(t, []string{"Docker", "Node.js"}, tech.Technologies)
	assert.Equal(t, "^4.18.0", tech.PackageDetails.Dependencies["express"])
	assert.NotNil(t, tech.PackageDetails.DevDependencies)

	sch, err := c.Schema(ctx, helloWorld)
	require.NoError(t, err)
	require.Len(t, sch.Nodes, 1)
	assert.Equal(t, detect.Category("backend"), sch.Nodes[0].Category)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/api/repo/info", "/api/repo/languages", "/api/repo/technologies", "/api/repo/schema"}, paths)
}

func TestClientBaseURLTrimmed(t *testing.T) {
	c := New("http://localhost:5000/")
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestClientDecodesErrorBody(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.Code
		wantMsg  string
	}{
		{"invalid url", http.StatusBadRequest,
			`{"error":"Invalid GitHub URL","message":"The provided URL is not a valid GitHub repository URL","code":"INVALID_URL"}`,
			apperrors.ErrCodeInvalidURL, "The provided URL is not a valid GitHub repository URL"},
		{"not found", http.StatusNotFound,
			`{"error":"Could not find organization or user","message":"Could not find organization or user","code":"NOT_FOUND"}`,
			apperrors.ErrCodeNotFound, "Could not find organization or user"},
		{"no code", http.StatusInternalServerError,
			`{"error":"Failed to fetch repository languages","message":"An unexpected error occurred"}`,
			apperrors.ErrCodeNetwork, "An unexpected error occurred"},
		{"plain text", http.StatusNotFound, `nope`, apperrors.ErrCodeNotFound, "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := c.Languages(context.Background(), helloWorld)
			require.Error(t, err)
			var e *apperrors.Error
			require.True(t, errors.As(err, &e), "error %T is not *apperrors.Error", err)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, tt.wantMsg, e.Message)
			assert.Equal(t, int32(1), calls.Load(), "API errors must not be retried")
		})
	}
}

func TestClientRetriesGatewayErrors(t *testing.T) {
	var calls atomic.Int32
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `{"Go":1}`)
	})

	langs, err := c.Languages(context.Background(), helloWorld)
	require.NoError(t, err)
	assert.Equal(t, int64(1), langs["Go"])
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientGatewayExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Info(context.Background(), helloWorld)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNetwork), "err = %v", err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := New(base, WithRetry(2, time.Millisecond))
	_, err := c.Technologies(context.Background(), helloWorld)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNetwork), "err = %v", err)
	assert.Equal(t, "Could not reach the stackscope API", apperrors.UserMessage(err))
}

func TestClientPing(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		io.WriteString(w, `{"message":"stackscope API running"}`)
	})
	assert.NoError(t, c.Ping(context.Background()))
}
