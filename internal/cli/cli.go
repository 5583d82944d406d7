package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackscope/internal/config"
	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/apiclient"
	"github.com/matzehuels/stackscope/pkg/buildinfo"
	"github.com/matzehuels/stackscope/pkg/cache"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
	"github.com/matzehuels/stackscope/pkg/observability"
	"github.com/matzehuels/stackscope/pkg/snapshot"
)

// =============================================================================
// Constants
// =============================================================================

const appName = buildinfo.Name

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "stackscope analyzes GitHub repositories",
		Long: `stackscope summarizes a GitHub repository, organization or user: repository
info and contributors, language breakdown and the detected technology stack.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./stackscope.toml or $XDG_CONFIG_HOME/stackscope/config.toml)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and wires logging for every command.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.SetLogLevel(cfg.LogLevel())
	if cfg.File != "" {
		c.Logger.Debug("loaded config", "file", cfg.File)
	}

	registerHooks(c.Logger)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// config returns the loaded configuration, or defaults when setup did not run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

// githubClient creates a GitHub client from the configuration.
func (c *CLI) githubClient() *github.Client {
	cfg := c.config()
	return github.NewClient(cfg.GitHub.Token, github.WithBaseURL(cfg.GitHub.APIURL))
}

// newBackend returns the analyzer the client views use: the remote API when
// one is configured, otherwise an in-process service.
func (c *CLI) newBackend(ctx context.Context) apiclient.Analyzer {
	if url := c.config().Client.APIURL; url != "" {
		cl := apiclient.New(url)
		if c.Logger.GetLevel() <= log.DebugLevel {
			if err := cl.Ping(ctx); err != nil {
				c.Logger.Warn("remote API unreachable", "url", cl.BaseURL(), "err", err)
			} else {
				c.Logger.Debug("using remote API", "url", cl.BaseURL())
			}
		}
		return cl
	}
	return analyzer.NewService(c.githubClient(), c.Logger)
}

// newAnalyzer wraps the backend in the session cache.
func (c *CLI) newAnalyzer(ctx context.Context, noCache bool) (*apiclient.Cached, func(), error) {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	return apiclient.NewCached(c.newBackend(ctx), ch, 0, c.Logger), func() { _ = ch.Close() }, nil
}

func (c *CLI) openCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	cfg := c.config()
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Redis.Addr, "")
	default:
		dir, err := cfg.CacheDirPath()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

func (c *CLI) openStore(ctx context.Context) (snapshot.Store, error) {
	cfg := c.config()
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return snapshot.NewRedisStore(ctx, cfg.Redis.Addr, "")
	case config.BackendMongo:
		return snapshot.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case config.BackendFile:
		dir, err := cfg.StoreDir()
		if err != nil {
			return nil, fmt.Errorf("snapshot dir: %w", err)
		}
		return snapshot.NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// registerHooks routes observability events to the CLI logger.
func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetAnalysisHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
