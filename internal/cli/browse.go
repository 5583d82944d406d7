package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	apperrors "github.com/matzehuels/stackscope/pkg/errors"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:     "browse <owner-url>",
		Short:   "Pick one of an owner's top repositories and analyze it",
		Example: `  stackscope browse https://github.com/microsoft`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "ignore the stored snapshot")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the session response cache")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, rawURL string, opts analyzeOptions) error {
	if _, err := validateTarget(rawURL); err != nil {
		return err
	}
	ref, _ := analyzer.Target(rawURL)
	if !ref.IsOrganizationOrUser {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "browse needs an organization or user URL, got %s", ref)
	}

	an, closeCache, err := c.newAnalyzer(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	spin := newSpinner(ctx, "Loading repositories of "+ref.Owner+"...")
	spin.Start()
	info, err := an.Info(ctx, rawURL)
	spin.Stop()
	closeCache()
	if err != nil {
		return err
	}

	model := NewRepoListModel(fmt.Sprintf("%s · top repositories", ref.Owner), info.AllRepos)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("repository picker: %w", err)
	}
	picked := final.(RepoListModel).Selected
	if picked == nil {
		return nil
	}

	return c.runAnalyze(ctx, repoURL(picked), opts)
}

// repoURL returns the browser URL of a repository.
func repoURL(r *github.Repository) string {
	if r.HTMLURL != "" {
		return r.HTMLURL
	}
	return "https://github.com/" + r.FullName
}
