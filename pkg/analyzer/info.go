package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

// Info returns repository metadata and contributors for a repository URL, or
// the profile and top repositories of an organization or user URL.
func (s *Service) Info(ctx context.Context, rawURL string) (res *RepoInfoResult, err error) {
	ref, err := Target(rawURL)
	if err != nil {
		return nil, err
	}
	done := s.track(ctx, KindInfo, ref)
	defer func() { done(err) }()

	if ref.IsOrganizationOrUser {
		return s.ownerInfo(ctx, ref.Owner)
	}
	return s.repoInfo(ctx, ref.Owner, ref.Repo)
}

func (s *Service) repoInfo(ctx context.Context, owner, repo string) (*RepoInfoResult, error) {
	res := &RepoInfoResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.gh.Repository(gctx, owner, repo)
		res.RepoInfo = r
		return err
	})
	g.Go(func() error {
		res.Contributors = s.topContributors(gctx, owner, repo)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, upstreamError(KindInfo, err)
	}
	return res, nil
}

func (s *Service) ownerInfo(ctx context.Context, login string) (*RepoInfoResult, error) {
	o, err := s.ownerWithRepos(ctx, KindInfo, login, true)
	if err != nil {
		return nil, err
	}

	top := o.Top(infoRepoLimit)
	first := top[0]
	res := &RepoInfoResult{
		RepoInfo:       &first,
		Contributors:   s.topContributors(ctx, login, first.Name),
		IsOrganization: o.Kind == KindOrganization,
		IsUser:         o.Kind == KindUser,
		Organization:   o.Organization,
		UserInfo:       o.User,
		AllRepos:       top,
	}
	return res, nil
}

// topContributors is best effort: a failure yields an empty list.
func (s *Service) topContributors(ctx context.Context, owner, repo string) []github.Contributor {
	c, err := s.gh.Contributors(ctx, owner, repo, contributorLimit)
	if err != nil {
		s.logger.Warn("contributors unavailable", "repo", owner+"/"+repo, "err", err)
		return []github.Contributor{}
	}
	return c
}
