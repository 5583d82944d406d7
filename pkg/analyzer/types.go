package analyzer

import (
	"github.com/matzehuels/stackscope/pkg/detect"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

// RepoInfoResult is the info view of a repository or owner.
//
// Exactly one shape is populated: a single repository (both flags false),
// an organization (IsOrganization, Organization and AllRepos set) or a user
// (IsUser, UserInfo and AllRepos set). For owners, RepoInfo and Contributors
// describe the most starred repository.
type RepoInfoResult struct {
	RepoInfo       *github.Repository   `json:"repoInfo"`
	Contributors   []github.Contributor `json:"contributors"`
	IsOrganization bool                 `json:"isOrganization"`
	IsUser         bool                 `json:"isUser"`
	Organization   *github.Organization `json:"organization,omitempty"`
	UserInfo       *github.User         `json:"userInfo,omitempty"`
	AllRepos       []github.Repository  `json:"allRepos,omitempty"`
}

// LanguagesResult maps a language name to its byte count.
type LanguagesResult map[string]int64

// TechnologiesResult is the technologies view of a repository or owner.
// AnalyzedRepoCount is set only for owner targets.
type TechnologiesResult struct {
	Technologies      []string              `json:"technologies"`
	PackageDetails    detect.PackageDetails `json:"packageDetails"`
	AnalyzedRepoCount *int                  `json:"analyzedRepoCount,omitempty"`
}

// EmptyTechnologies returns a result with an empty, non-nil label list and
// empty dependency maps.
func EmptyTechnologies() *TechnologiesResult {
	return &TechnologiesResult{
		Technologies:   []string{},
		PackageDetails: detect.EmptyPackageDetails(),
	}
}
