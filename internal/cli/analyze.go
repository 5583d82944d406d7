package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/apiclient"
	apperrors "github.com/matzehuels/stackscope/pkg/errors"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
	"github.com/matzehuels/stackscope/pkg/snapshot"
)

// analyzeOptions holds flags for the analyze command.
type analyzeOptions struct {
	json    bool
	fresh   bool
	noCache bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <github-url>",
		Short: "Show info, languages and technologies of a repository or owner",
		Long: `Analyze a GitHub repository, organization or user.

The last analysis is kept as a snapshot; analyzing the same URL again restores it
instead of calling GitHub. Use --fresh to force a new analysis.`,
		Example: `  stackscope analyze https://github.com/octocat/Hello-World
  stackscope analyze https://github.com/microsoft --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the snapshot as JSON")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "ignore the stored snapshot")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the session response cache")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, rawURL string, opts analyzeOptions) error {
	rawURL = strings.TrimSpace(rawURL)
	ref, err := validateTarget(rawURL)
	if err != nil {
		return err
	}

	var spin *Spinner
	if !opts.json {
		spin = newSpinner(ctx, "Analyzing "+ref+"...")
		spin.Start()
	}
	a, err := c.analyze(ctx, rawURL, opts)
	if spin != nil {
		spin.Stop()
		if spin.Cancelled() {
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a.snap)
	}

	printAnalysis(a)
	printNewline()
	printNextStep("Render the technology schema", "stackscope graph "+rawURL)
	return nil
}

// validateTarget checks rawURL and returns the owner or owner/repo it names.
// Beyond what the analyzer accepts, the URL must have the plain
// https://github.com/<owner>[/<repo>] shape.
func validateTarget(rawURL string) (string, error) {
	if err := apperrors.ValidateURL(rawURL); err != nil {
		return "", err
	}
	if err := github.ValidateEntryURL(rawURL); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidURL, err, "Please enter a URL like https://github.com/owner/repo")
	}
	ref, err := analyzer.Target(rawURL)
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}

// =============================================================================
// Restore or fetch
// =============================================================================

// analysis is the result of restore-or-fetch. Section errors are kept so a
// partial analysis can still be shown.
type analysis struct {
	snap     *snapshot.Snapshot
	restored bool
	errs     sectionErrors
}

type sectionErrors struct {
	Info         error
	Languages    error
	Technologies error
}

func (e sectionErrors) count() int {
	n := 0
	for _, err := range []error{e.Info, e.Languages, e.Technologies} {
		if err != nil {
			n++
		}
	}
	return n
}

func (e sectionErrors) all() bool {
	return e.count() == 3
}

// analyze restores the stored snapshot when it is complete and was taken for
// rawURL. Otherwise the snapshot and the session cache are cleared, the three
// views are fetched in parallel and the result is saved.
func (c *CLI) analyze(ctx context.Context, rawURL string, opts analyzeOptions) (*analysis, error) {
	logger := loggerFromContext(ctx)

	store, err := c.openStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	if !opts.fresh {
		prev, err := store.Load(ctx)
		switch {
		case err != nil:
			logger.Warn("could not read snapshot", "err", err)
		case prev.Matches(rawURL) && prev.Complete():
			logger.Debug("restored snapshot", "id", prev.ID, "saved", prev.SavedAt)
			return &analysis{snap: prev, restored: true}, nil
		}
	}

	an, closeCache, err := c.newAnalyzer(ctx, opts.noCache)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer closeCache()

	if err := store.Clear(ctx); err != nil {
		logger.Warn("could not clear snapshot", "err", err)
	}
	if err := an.Clear(ctx); err != nil {
		logger.Warn("could not clear cache", "err", err)
	}

	prog := newProgress(logger)
	snap, errs := fetchAnalysis(ctx, an, rawURL)
	if errs.all() {
		return nil, errs.Info
	}
	prog.done("Analyzed " + rawURL)

	if err := store.Save(ctx, snap); err != nil {
		logger.Warn("could not save snapshot", "err", err)
	}
	return &analysis{snap: snap, errs: errs}, nil
}

// fetchAnalysis requests info, languages and technologies concurrently. A
// failing view does not cancel the others.
func fetchAnalysis(ctx context.Context, an apiclient.Analyzer, rawURL string) (*snapshot.Snapshot, sectionErrors) {
	var (
		g     errgroup.Group
		errs  sectionErrors
		info  *analyzer.RepoInfoResult
		langs analyzer.LanguagesResult
		tech  *analyzer.TechnologiesResult
	)
	g.Go(func() error {
		info, errs.Info = an.Info(ctx, rawURL)
		return nil
	})
	g.Go(func() error {
		langs, errs.Languages = an.Languages(ctx, rawURL)
		return nil
	})
	g.Go(func() error {
		tech, errs.Technologies = an.Technologies(ctx, rawURL)
		return nil
	})
	_ = g.Wait()

	return snapshot.New(rawURL, info, langs, tech), errs
}

// =============================================================================
// Output
// =============================================================================

func printAnalysis(a *analysis) {
	printSource(a.restored, a.snap.SavedAt)
	if failed := a.errs.count(); failed > 0 {
		printWarning("%d of 3 views failed; this analysis will not be restored", failed)
	}
	printNewline()

	printSection(renderInfo(a.snap.RepoInfo), a.errs.Info)
	printSection(renderLanguages(a.snap.Languages), a.errs.Languages)
	printSection(renderTechnologies(a.snap.Technologies), a.errs.Technologies)
}

// printSection prints a rendered view, or an inline error line in its place.
func printSection(rendered string, err error) {
	if err != nil {
		printError("%s", apperrors.UserMessage(err))
		printNewline()
		return
	}
	fmt.Print(rendered)
	printNewline()
}
