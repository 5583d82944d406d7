package github

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when a string is not a GitHub repository or owner URL.
var ErrInvalidURL = errors.New("invalid GitHub URL")

// entryURL is the strict shape accepted at the entry form: an owner, an
// optional repository and an optional trailing slash.
var entryURL = regexp.MustCompile(`^https?://github\.com/[\w-]+(?:/[\w.-]+)?/?$`)

// RepoRef identifies the target of an analysis.
// Repo is empty when the URL names only an organization or user.
type RepoRef struct {
	Owner                string `json:"owner"`
	Repo                 string `json:"repo,omitempty"`
	IsOrganizationOrUser bool   `json:"isOrganizationOrUser"`
}

// String returns "owner" or "owner/repo".
func (r RepoRef) String() string {
	if r.Repo == "" {
		return r.Owner
	}
	return r.Owner + "/" + r.Repo
}

// ParseURL extracts the owner and optional repository from a GitHub web URL.
//
// The URL must use http or https and point at github.com (or www.github.com).
// One path segment targets an owner; two or more target a repository and any
// further segments (tree/main/...) are ignored. A trailing ".git" on the
// repository segment is dropped.
func ParseURL(raw string) (RepoRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return RepoRef{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return RepoRef{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	switch strings.ToLower(u.Hostname()) {
	case "github.com", "www.github.com":
	default:
		return RepoRef{}, fmt.Errorf("%w: host %q is not github.com", ErrInvalidURL, u.Host)
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	switch len(segments) {
	case 0:
		return RepoRef{}, fmt.Errorf("%w: missing owner", ErrInvalidURL)
	case 1:
		return RepoRef{Owner: segments[0], IsOrganizationOrUser: true}, nil
	}

	repo := segments[1]
	if trimmed := strings.TrimSuffix(repo, ".git"); trimmed != "" {
		repo = trimmed
	}
	return RepoRef{Owner: segments[0], Repo: repo}, nil
}

// ValidateEntryURL applies the strict form check used before a request is
// issued. It rejects anything but https?://github.com/<owner>[/<repo>][/].
func ValidateEntryURL(raw string) error {
	if !entryURL.MatchString(strings.TrimSpace(raw)) {
		return fmt.Errorf("%w: expected https://github.com/<owner>[/<repo>]", ErrInvalidURL)
	}
	return nil
}
