package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/schema"
)

// graphOptions holds flags for the graph command.
type graphOptions struct {
	format  string
	output  string
	noCache bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph <github-url>",
		Short: "Render the technology schema as DOT or SVG",
		Long: `Render the technology schema of a repository or owner.

Technologies come from the stored snapshot when it matches the URL, otherwise
they are fetched. Without -o the result is written to stdout.`,
		Example: `  stackscope graph https://github.com/octocat/Hello-World -o stack.svg
  stackscope graph https://github.com/microsoft --format dot | dot -Tpng > stack.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the session response cache")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, rawURL string, opts graphOptions) error {
	if _, err := validateTarget(rawURL); err != nil {
		return err
	}
	format, err := schema.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	res, err := c.loadSchema(ctx, rawURL, opts.noCache)
	if err != nil {
		return err
	}
	out, err := schema.Render(ctx, &res.Graph, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %d technologies", len(res.Nodes))
	printFile(opts.output)
	return nil
}

// loadSchema builds the schema from the stored snapshot when it covers
// rawURL, otherwise asks the analyzer.
func (c *CLI) loadSchema(ctx context.Context, rawURL string, noCache bool) (*analyzer.SchemaResult, error) {
	logger := loggerFromContext(ctx)

	if store, err := c.openStore(ctx); err != nil {
		logger.Warn("could not open snapshot store", "err", err)
	} else {
		snap, err := store.Load(ctx)
		_ = store.Close()
		if err != nil {
			logger.Warn("could not read snapshot", "err", err)
		} else if snap.Matches(rawURL) && snap.Technologies != nil {
			logger.Debug("schema from snapshot", "id", snap.ID)
			return analyzer.SchemaFrom(snap.Technologies), nil
		}
	}

	an, closeCache, err := c.newAnalyzer(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer closeCache()
	return an.Schema(ctx, rawURL)
}
