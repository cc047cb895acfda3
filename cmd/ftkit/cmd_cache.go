package main

import (
	"fmt"
	"path/filepath"

	"github.com/augmentlab/ftkit/internal/cache"
	"github.com/spf13/cobra"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the provider metadata cache",
		Long: `Manage the provider metadata cache.

list-runs caches training file metadata so repeated listings do not fetch
the same files again. The cache lives in the directory named by cache.dir in
.ftkit.yaml (default .ftkit-cache next to the config file).`,
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the provider metadata cache",
		Long: `Clear all cached file metadata.

The next list-runs fetches every training file's metadata from the provider.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cacheDir
			if dir == "" {
				s, err := loadSettings(cmd)
				if err != nil {
					return err
				}
				dir = s.project.CacheDir()
			}
			if dir == "" {
				return fmt.Errorf("cache is disabled in project config; pass --cache-dir")
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving cache directory: %w", err)
			}

			c := cache.New(absDir)
			if err := c.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", c.Dir()) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Cache directory to clear (default from project config)")

	return cmd
}
