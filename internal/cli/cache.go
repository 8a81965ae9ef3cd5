package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qualmap/pkg/cache"
	"github.com/matzehuels/qualmap/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached scene and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.Config.Cache.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}
			ch, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			if err := cache.Clear(ctx, ch); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared the %s cache", c.Config.Cache.Backend)
			if fc, ok := ch.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.Config.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintln(stdout, c.Config.Cache.RedisURL)
			case config.BackendFile:
				fmt.Fprintln(stdout, c.Config.Cache.Dir)
			default:
				printInfo("Caching is disabled")
			}
			return nil
		},
	}
}
