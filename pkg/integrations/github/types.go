package github

import "time"

// Account is the compact owner object embedded in repositories.
type Account struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type"`
}

// License is the license summary attached to a repository.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

// Repository represents a GitHub repository.
type Repository struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	FullName        string     `json:"full_name"`
	Owner           Account    `json:"owner"`
	HTMLURL         string     `json:"html_url"`
	Description     string     `json:"description"`
	Homepage        string     `json:"homepage"`
	Private         bool       `json:"private"`
	Fork            bool       `json:"fork"`
	Archived        bool       `json:"archived"`
	Language        string     `json:"language"`
	DefaultBranch   string     `json:"default_branch"`
	Topics          []string   `json:"topics"`
	License         *License   `json:"license"`
	StargazersCount int        `json:"stargazers_count"`
	WatchersCount   int        `json:"watchers_count"`
	ForksCount      int        `json:"forks_count"`
	OpenIssuesCount int        `json:"open_issues_count"`
	Size            int        `json:"size"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
	PushedAt        *time.Time `json:"pushed_at"`
}

// Contributor is an entry of a repository's contributor list.
type Contributor struct {
	Login         string `json:"login"`
	ID            int64  `json:"id"`
	AvatarURL     string `json:"avatar_url"`
	HTMLURL       string `json:"html_url"`
	Type          string `json:"type"`
	Contributions int    `json:"contributions"`
}

// Organization represents a GitHub organization profile.
type Organization struct {
	Login       string     `json:"login"`
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	AvatarURL   string     `json:"avatar_url"`
	HTMLURL     string     `json:"html_url"`
	Blog        string     `json:"blog"`
	Location    string     `json:"location"`
	Email       string     `json:"email"`
	PublicRepos int        `json:"public_repos"`
	Followers   int        `json:"followers"`
	CreatedAt   *time.Time `json:"created_at"`
}

// User represents a GitHub user profile.
type User struct {
	Login       string     `json:"login"`
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	AvatarURL   string     `json:"avatar_url"`
	HTMLURL     string     `json:"html_url"`
	Bio         string     `json:"bio"`
	Company     string     `json:"company"`
	Blog        string     `json:"blog"`
	Location    string     `json:"location"`
	Type        string     `json:"type"`
	PublicRepos int        `json:"public_repos"`
	Followers   int        `json:"followers"`
	Following   int        `json:"following"`
	CreatedAt   *time.Time `json:"created_at"`
}

// ContentItem represents an item in a repository directory listing.
type ContentItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file", "dir", "symlink" or "submodule"
	Size int    `json:"size"`
}

// FileContent represents the decoded content of a file.
type FileContent struct {
	Path    string
	Size    int
	Content []byte
}

// contentResponse is the contents API response for a single file.
type contentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
