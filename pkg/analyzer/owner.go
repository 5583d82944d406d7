package analyzer

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/matzehuels/stackscope/pkg/errors"
	"github.com/matzehuels/stackscope/pkg/integrations"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

// OwnerKind tags the outcome of owner resolution.
type OwnerKind int

const (
	KindNotFound OwnerKind = iota
	KindOrganization
	KindUser
)

func (k OwnerKind) String() string {
	switch k {
	case KindOrganization:
		return "organization"
	case KindUser:
		return "user"
	default:
		return "not found"
	}
}

// Owner is a resolved organization or user with its repositories sorted by
// stars, most starred first.
type Owner struct {
	Kind         OwnerKind
	Login        string
	Organization *github.Organization
	User         *github.User
	Repos        []github.Repository
}

// Top returns at most n of the owner's most starred repositories.
func (o Owner) Top(n int) []github.Repository {
	if len(o.Repos) <= n {
		return o.Repos
	}
	return o.Repos[:n]
}

// resolveAttempt tries to load login as one kind of owner.
type resolveAttempt struct {
	kind    OwnerKind
	profile func(ctx context.Context, login string, o *Owner) error
	repos   func(ctx context.Context, login string, perPage int) ([]github.Repository, error)
}

func (s *Service) attempts() []resolveAttempt {
	return []resolveAttempt{
		{
			kind: KindOrganization,
			profile: func(ctx context.Context, login string, o *Owner) error {
				org, err := s.gh.Organization(ctx, login)
				o.Organization = org
				return err
			},
			repos: s.gh.OrgRepos,
		},
		{
			kind: KindUser,
			profile: func(ctx context.Context, login string, o *Owner) error {
				u, err := s.gh.User(ctx, login)
				o.User = u
				return err
			},
			repos: s.gh.UserRepos,
		},
	}
}

// ResolveOwner resolves login as an organization, then as a user. The first
// attempt that succeeds wins.
//
// The result has Kind KindNotFound (and a nil error) when the last attempt
// failed with a GitHub 404. Any other failure of the last attempt is returned
// as an error. withProfile controls whether the profile is fetched alongside
// the repository list.
func (s *Service) ResolveOwner(ctx context.Context, login string, withProfile bool) (Owner, error) {
	var lastErr error
	for _, a := range s.attempts() {
		o, err := s.try(ctx, a, login, withProfile)
		if err == nil {
			return o, nil
		}
		s.logger.Debug("owner attempt failed", "owner", login, "as", a.kind, "err", err)
		lastErr = err
	}
	if errors.Is(lastErr, integrations.ErrNotFound) {
		return Owner{Kind: KindNotFound, Login: login}, nil
	}
	return Owner{}, lastErr
}

func (s *Service) try(ctx context.Context, a resolveAttempt, login string, withProfile bool) (Owner, error) {
	o := Owner{Kind: a.kind, Login: login}

	g, gctx := errgroup.WithContext(ctx)
	if withProfile {
		g.Go(func() error { return a.profile(gctx, login, &o) })
	}
	g.Go(func() error {
		repos, err := a.repos(gctx, login, ownerRepoWindow)
		o.Repos = repos
		return err
	})
	if err := g.Wait(); err != nil {
		return Owner{}, err
	}

	sortByStars(o.Repos)
	return o, nil
}

// ownerWithRepos resolves login and maps the not-found and empty cases to
// NOT_FOUND errors.
func (s *Service) ownerWithRepos(ctx context.Context, kind, login string, withProfile bool) (Owner, error) {
	o, err := s.ResolveOwner(ctx, login, withProfile)
	if err != nil {
		return Owner{}, upstreamError(kind, err)
	}
	switch {
	case o.Kind == KindNotFound:
		return Owner{}, apperrors.New(apperrors.ErrCodeNotFound, "Could not find organization or user")
	case len(o.Repos) == 0:
		return Owner{}, apperrors.New(apperrors.ErrCodeNotFound, "No repositories found for this %s", o.Kind)
	}
	return o, nil
}

// sortByStars orders repositories by stargazer count, descending. Ties keep
// GitHub's order (most recently updated first).
func sortByStars(repos []github.Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].StargazersCount > repos[j].StargazersCount
	})
}
