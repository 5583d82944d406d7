package analyzer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/stackscope/pkg/errors"
	"github.com/matzehuels/stackscope/pkg/integrations"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
	"github.com/matzehuels/stackscope/pkg/observability"
)

// Fan-out limits. Nothing is cached upstream, so these bound the number of
// GitHub calls a single request can make.
const (
	// ownerRepoWindow is how many of an owner's repositories are listed
	// before sorting by stars.
	ownerRepoWindow = 30

	infoRepoLimit         = 6
	languagesRepoLimit    = 5
	technologiesRepoLimit = 3
	contributorLimit      = 10
)

// Analysis kinds reported to observability hooks and used in cache keys.
const (
	KindInfo         = "info"
	KindLanguages    = "languages"
	KindTechnologies = "technologies"
	KindSchema       = "schema"
)

// GitHub is the subset of the GitHub API the service needs.
// [*github.Client] implements it.
type GitHub interface {
	Repository(ctx context.Context, owner, repo string) (*github.Repository, error)
	Contributors(ctx context.Context, owner, repo string, limit int) ([]github.Contributor, error)
	Languages(ctx context.Context, owner, repo string) (map[string]int64, error)
	Contents(ctx context.Context, owner, repo, path string) ([]github.ContentItem, error)
	File(ctx context.Context, owner, repo, path string) (*github.FileContent, error)
	Organization(ctx context.Context, org string) (*github.Organization, error)
	OrgRepos(ctx context.Context, org string, perPage int) ([]github.Repository, error)
	User(ctx context.Context, login string) (*github.User, error)
	UserRepos(ctx context.Context, login string, perPage int) ([]github.Repository, error)
}

var _ GitHub = (*github.Client)(nil)

// Service aggregates GitHub data into the info, languages, technologies and
// schema views. It holds no per-request state; one Service can serve
// concurrent requests.
type Service struct {
	gh     GitHub
	logger *log.Logger
}

// NewService creates a service backed by the given GitHub client.
// If logger is nil, log.Default() is used.
func NewService(gh GitHub, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{gh: gh, logger: logger}
}

// Target parses the URL of an analysis request.
// A blank URL yields INVALID_INPUT; anything ParseURL rejects yields INVALID_URL.
func Target(rawURL string) (github.RepoRef, error) {
	if strings.TrimSpace(rawURL) == "" {
		return github.RepoRef{}, apperrors.New(apperrors.ErrCodeInvalidInput, "Please provide a GitHub repository URL")
	}
	ref, err := github.ParseURL(rawURL)
	if err != nil {
		return github.RepoRef{}, apperrors.Wrap(apperrors.ErrCodeInvalidURL, err, "The provided URL is not a valid GitHub repository URL")
	}
	return ref, nil
}

// failureMessages are the generic messages returned for upstream failures.
var failureMessages = map[string]string{
	KindInfo:         "Failed to fetch repository information",
	KindLanguages:    "Failed to fetch repository languages",
	KindTechnologies: "Failed to detect repository technologies",
	KindSchema:       "Failed to build technology schema",
}

// upstreamError wraps a GitHub failure of the primary resource.
// Errors already carrying a code pass through unchanged.
func upstreamError(kind string, err error) error {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return err
	}
	code := apperrors.ErrCodeNetwork
	if errors.Is(err, integrations.ErrRateLimited) {
		code = apperrors.ErrCodeRateLimited
	}
	return apperrors.Wrap(code, err, "%s", failureMessages[kind])
}

// track reports the start of an analysis and returns a function that reports
// its completion.
func (s *Service) track(ctx context.Context, kind string, ref github.RepoRef) func(error) {
	target := ref.String()
	observability.Analysis().OnAnalyzeStart(ctx, kind, target)
	start := time.Now()
	return func(err error) {
		d := time.Since(start)
		observability.Analysis().OnAnalyzeComplete(ctx, kind, target, d, err)
		s.logger.Debug("analysis complete", "kind", kind, "target", target, "duration", d, "err", err)
	}
}

// skip logs and reports a repository dropped from an owner fan-out.
func (s *Service) skip(ctx context.Context, kind, owner, repo string, err error) {
	full := owner + "/" + repo
	s.logger.Warn("skipping repository", "kind", kind, "repo", full, "err", err)
	observability.Analysis().OnRepoSkipped(ctx, kind, full, err)
}
