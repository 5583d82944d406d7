package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackscope/internal/config"
	"github.com/matzehuels/stackscope/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the session response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached API responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := c.openCache(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			switch ch := ch.(type) {
			case *cache.FileCache:
				count, err := ch.Purge(ctx)
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", count)
				printDetail("Directory: %s", ch.Dir())
			case *cache.NullCache:
				printInfo("Cache is disabled")
			default:
				if err := ch.Clear(ctx); err != nil {
					return err
				}
				printSuccess("Cleared %s cache", c.config().Cache.Backend)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			switch cfg.Cache.Backend {
			case config.BackendRedis:
				fmt.Println("redis://" + cfg.Redis.Addr)
			case config.BackendNone:
				printInfo("Cache is disabled")
			default:
				dir, err := cfg.CacheDirPath()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Println(dir)
			}
			return nil
		},
	}
}
