package analyzer

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Languages returns per-language byte counts for a repository, or the sum
// over an owner's most starred repositories.
func (s *Service) Languages(ctx context.Context, rawURL string) (res LanguagesResult, err error) {
	ref, err := Target(rawURL)
	if err != nil {
		return nil, err
	}
	done := s.track(ctx, KindLanguages, ref)
	defer func() { done(err) }()

	if ref.IsOrganizationOrUser {
		return s.ownerLanguages(ctx, ref.Owner)
	}

	langs, err := s.gh.Languages(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return nil, upstreamError(KindLanguages, err)
	}
	return LanguagesResult(langs), nil
}

// ownerLanguages sums the languages of up to languagesRepoLimit repositories.
// A repository that fails is skipped; the call fails only if all of them do.
func (s *Service) ownerLanguages(ctx context.Context, login string) (LanguagesResult, error) {
	o, err := s.ownerWithRepos(ctx, KindLanguages, login, false)
	if err != nil {
		return nil, err
	}
	repos := o.Top(languagesRepoLimit)

	results := make([]map[string]int64, len(repos))
	errs := make([]error, len(repos))
	var g errgroup.Group
	for i, r := range repos {
		g.Go(func() error {
			langs, err := s.gh.Languages(ctx, login, r.Name)
			if err != nil {
				s.skip(ctx, KindLanguages, login, r.Name, err)
				errs[i] = err
				return nil
			}
			results[i] = langs
			return nil
		})
	}
	_ = g.Wait()

	merged := LanguagesResult{}
	ok := 0
	for _, langs := range results {
		if langs == nil {
			continue
		}
		ok++
		for lang, n := range langs {
			merged[lang] += n
		}
	}
	if ok == 0 {
		return nil, upstreamError(KindLanguages, errors.Join(errs...))
	}
	return merged, nil
}
