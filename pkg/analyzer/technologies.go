package analyzer

import (
	"context"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackscope/pkg/detect"
)

const githubDir = ".github"

// repoScan is the outcome of scanning one repository. Failed sub-fetches are
// recorded as flags; the scan itself never fails.
type repoScan struct {
	Files      []string
	Package    detect.PackageDetails
	ContentsOK bool
	PackageOK  bool
}

// Technologies detects the technologies of a repository, or the union over
// an owner's most starred repositories.
//
// Missing or malformed package.json files and failed directory listings
// degrade to empty inputs; for a repository URL the call only fails on
// invalid input.
func (s *Service) Technologies(ctx context.Context, rawURL string) (res *TechnologiesResult, err error) {
	ref, err := Target(rawURL)
	if err != nil {
		return nil, err
	}
	done := s.track(ctx, KindTechnologies, ref)
	defer func() { done(err) }()

	if ref.IsOrganizationOrUser {
		return s.ownerTechnologies(ctx, ref.Owner)
	}

	scan := s.scan(ctx, ref.Owner, ref.Repo)
	return &TechnologiesResult{
		Technologies:   detect.Detect(scan.Files, scan.Package),
		PackageDetails: scan.Package,
	}, nil
}

func (s *Service) ownerTechnologies(ctx context.Context, login string) (*TechnologiesResult, error) {
	o, err := s.ownerWithRepos(ctx, KindTechnologies, login, false)
	if err != nil {
		return nil, err
	}
	repos := o.Top(technologiesRepoLimit)

	scans := make([]repoScan, len(repos))
	var g errgroup.Group
	for i, r := range repos {
		g.Go(func() error {
			scans[i] = s.scan(ctx, login, r.Name)
			return nil
		})
	}
	_ = g.Wait()

	res := EmptyTechnologies()
	labels := make([][]string, 0, len(scans))
	analyzed := 0
	for _, sc := range scans {
		if sc.ContentsOK {
			analyzed++
		}
		labels = append(labels, detect.Detect(sc.Files, sc.Package))
		res.PackageDetails.Merge(sc.Package)
	}
	res.Technologies = detect.Union(labels...)
	res.AnalyzedRepoCount = &analyzed
	return res, nil
}

// scan lists the repository root (plus .github when present) and reads
// package.json. package.json is fetched when listed, or attempted blind when
// the listing itself failed.
func (s *Service) scan(ctx context.Context, owner, repo string) repoScan {
	sc := repoScan{Package: detect.EmptyPackageDetails()}

	items, err := s.gh.Contents(ctx, owner, repo, "")
	if err != nil {
		s.skip(ctx, KindTechnologies, owner, repo, err)
	} else {
		sc.ContentsOK = true
	}

	hasPackage := !sc.ContentsOK
	for _, it := range items {
		sc.Files = append(sc.Files, it.Name)
		switch {
		case it.Name == detect.PackageJSONFile:
			hasPackage = true
		case it.Name == githubDir && it.Type == "dir":
			sc.Files = append(sc.Files, s.listGitHubDir(ctx, owner, repo)...)
		}
	}

	if hasPackage {
		sc.Package, sc.PackageOK = s.readPackageJSON(ctx, owner, repo)
	}
	return sc
}

func (s *Service) listGitHubDir(ctx context.Context, owner, repo string) []string {
	items, err := s.gh.Contents(ctx, owner, repo, githubDir)
	if err != nil {
		s.logger.Debug("listing .github failed", "repo", owner+"/"+repo, "err", err)
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, path.Join(githubDir, it.Name))
	}
	return out
}

func (s *Service) readPackageJSON(ctx context.Context, owner, repo string) (detect.PackageDetails, bool) {
	f, err := s.gh.File(ctx, owner, repo, detect.PackageJSONFile)
	if err != nil {
		s.logger.Debug("package.json unavailable", "repo", owner+"/"+repo, "err", err)
		return detect.EmptyPackageDetails(), false
	}
	pkg, err := detect.ParsePackageJSON(f.Content)
	if err != nil {
		s.logger.Warn("malformed package.json", "repo", owner+"/"+repo, "err", err)
		return detect.EmptyPackageDetails(), false
	}
	return pkg, true
}
