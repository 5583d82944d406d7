package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackscope/internal/server"
	"github.com/matzehuels/stackscope/pkg/analyzer"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the stackscope HTTP API",
		Long: `Run the HTTP API serving /api/repo/info, /api/repo/languages,
/api/repo/technologies and /api/repo/schema.

The listen port comes from PORT or server.port in the config file (default 5000).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if cfg.GitHub.Token == "" {
				c.Logger.Warn("GITHUB_TOKEN not set, GitHub allows 60 requests per hour")
			}

			svc := analyzer.NewService(c.githubClient(), c.Logger)
			return server.New(svc, c.Logger).ListenAndServe(cmd.Context(), cfg.Addr())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides PORT)")
	return cmd
}
