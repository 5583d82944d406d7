package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/matzehuels/stackscope/pkg/buildinfo"
	apperrors "github.com/matzehuels/stackscope/pkg/errors"
	"github.com/matzehuels/stackscope/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client provides access to the GitHub REST API endpoints used for repository
// analysis. Every call reaches GitHub directly; there is no cache and no retry.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL string
	http    *http.Client
}

// WithBaseURL points the client at a different API root, such as a GitHub
// Enterprise instance or a test server.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(o *clientOptions) { o.http = h }
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(token string, opts ...Option) *Client {
	o := clientOptions{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	if token != "" {
		headers["Authorization"] = "token " + token
	}

	return &Client{
		Client:  integrations.NewClient(o.http, headers),
		baseURL: o.baseURL,
	}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Repository fetches the metadata of a single repository.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	var r Repository
	if err := c.Get(ctx, c.endpoint("repos", owner, repo), &r); err != nil {
		return nil, fmt.Errorf("repository %s/%s: %w", owner, repo, err)
	}
	return &r, nil
}

// Contributors fetches up to limit contributors of a repository, most active
// first. An empty repository yields an empty slice.
func (c *Client) Contributors(ctx context.Context, owner, repo string, limit int) ([]Contributor, error) {
	out := []Contributor{}
	u := c.endpoint("repos", owner, repo, "contributors") + fmt.Sprintf("?per_page=%d", limit)
	if err := c.Get(ctx, u, &out); err != nil {
		return nil, fmt.Errorf("contributors %s/%s: %w", owner, repo, err)
	}
	if out == nil {
		out = []Contributor{}
	}
	return out, nil
}

// Languages fetches the per-language byte counts of a repository.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	out := map[string]int64{}
	if err := c.Get(ctx, c.endpoint("repos", owner, repo, "languages"), &out); err != nil {
		return nil, fmt.Errorf("languages %s/%s: %w", owner, repo, err)
	}
	if out == nil {
		out = map[string]int64{}
	}
	return out, nil
}

// Contents lists the entries of a directory in a repository. An empty path
// lists the repository root.
func (c *Client) Contents(ctx context.Context, owner, repo, path string) ([]ContentItem, error) {
	var out []ContentItem
	if err := c.Get(ctx, c.contentsURL(owner, repo, path), &out); err != nil {
		return nil, fmt.Errorf("contents %s/%s/%s: %w", owner, repo, path, err)
	}
	return out, nil
}

// File fetches a single file and decodes its base64 content.
func (c *Client) File(ctx context.Context, owner, repo, path string) (*FileContent, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	var resp contentResponse
	if err := c.Get(ctx, c.contentsURL(owner, repo, path), &resp); err != nil {
		return nil, fmt.Errorf("file %s/%s/%s: %w", owner, repo, path, err)
	}

	content := []byte(resp.Content)
	if resp.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		content = decoded
	}

	return &FileContent{
		Path:    resp.Path,
		Size:    resp.Size,
		Content: content,
	}, nil
}

// Organization fetches an organization profile.
func (c *Client) Organization(ctx context.Context, org string) (*Organization, error) {
	var o Organization
	if err := c.Get(ctx, c.endpoint("orgs", org), &o); err != nil {
		return nil, fmt.Errorf("organization %s: %w", org, err)
	}
	return &o, nil
}

// OrgRepos fetches the first page of an organization's repositories,
// most recently updated first.
func (c *Client) OrgRepos(ctx context.Context, org string, perPage int) ([]Repository, error) {
	return c.repoList(ctx, c.endpoint("orgs", org, "repos"), perPage)
}

// User fetches a user profile.
func (c *Client) User(ctx context.Context, login string) (*User, error) {
	var u User
	if err := c.Get(ctx, c.endpoint("users", login), &u); err != nil {
		return nil, fmt.Errorf("user %s: %w", login, err)
	}
	return &u, nil
}

// UserRepos fetches the first page of a user's public repositories,
// most recently updated first.
func (c *Client) UserRepos(ctx context.Context, login string, perPage int) ([]Repository, error) {
	return c.repoList(ctx, c.endpoint("users", login, "repos"), perPage)
}

func (c *Client) repoList(ctx context.Context, base string, perPage int) ([]Repository, error) {
	out := []Repository{}
	u := base + fmt.Sprintf("?per_page=%d&sort=updated", perPage)
	if err := c.Get(ctx, u, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", strings.TrimPrefix(base, c.baseURL), err)
	}
	if out == nil {
		out = []Repository{}
	}
	return out, nil
}

func (c *Client) contentsURL(owner, repo, path string) string {
	u := c.endpoint("repos", owner, repo, "contents")
	if path = strings.Trim(path, "/"); path != "" {
		u += "/" + escapePath(path)
	}
	return u
}

// endpoint joins escaped path segments onto the base URL.
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
