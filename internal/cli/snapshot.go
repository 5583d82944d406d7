package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackscope/internal/config"
	"github.com/matzehuels/stackscope/pkg/snapshot"
)

// snapshotCommand creates the snapshot management command.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show or clear the stored analysis",
	}

	cmd.AddCommand(c.snapshotShowCommand())
	cmd.AddCommand(c.snapshotClearCommand())
	cmd.AddCommand(c.snapshotPathCommand())

	return cmd
}

// snapshotShowCommand creates the "snapshot show" subcommand.
func (c *CLI) snapshotShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			snap, err := store.Load(ctx)
			if err != nil {
				return err
			}
			if snap == nil {
				printInfo("No stored analysis")
				printNextStep("Analyze a repository", "stackscope analyze <github-url>")
				return nil
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			printKeyValue("URL", snap.RepoURL)
			printKeyValue("ID", snap.ID)
			printNewline()
			printAnalysis(&analysis{snap: snap, restored: true})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

// snapshotClearCommand creates the "snapshot clear" subcommand.
func (c *CLI) snapshotClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			if err := store.Clear(ctx); err != nil {
				return err
			}
			printSuccess("Cleared stored analysis")
			return nil
		},
	}
}

// snapshotPathCommand creates the "snapshot path" subcommand.
func (c *CLI) snapshotPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the analysis is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			switch cfg.Store.Backend {
			case config.BackendRedis:
				fmt.Printf("redis://%s/%s%s\n", cfg.Redis.Addr, snapshot.DefaultRedisPrefix, snapshot.Key)
			case config.BackendMongo:
				fmt.Printf("%s (database %s)\n", cfg.Mongo.URI, cfg.Mongo.Database)
			default:
				dir, err := cfg.StoreDir()
				if err != nil {
					return fmt.Errorf("snapshot dir: %w", err)
				}
				store, err := snapshot.NewFileStore(dir)
				if err != nil {
					return err
				}
				fmt.Println(store.Path())
			}
			return nil
		},
	}
}
