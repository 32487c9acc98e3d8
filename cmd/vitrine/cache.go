package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCacheCommand groups page cache maintenance
func NewCacheCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local page cache",
	}

	var all bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached pages for the configured API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if all {
				if err := opts.cfg.ClearCache(); err != nil {
					return err
				}
				opts.logger.Info("cache directory removed", "dir", opts.cfg.Cache.Dir)
				fmt.Fprintln(out, "Cache cleared")
				return nil
			}

			cache, err := openCache(opts.cfg)
			if err != nil {
				return err
			}
			if cache == nil {
				fmt.Fprintln(out, "Cache disabled, nothing to clear")
				return nil
			}
			defer cache.Close()

			if err := cache.InvalidateAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			opts.logger.Info("cache cleared", "base_url", opts.cfg.API.BaseURL)
			fmt.Fprintf(out, "Cache cleared for %s\n", opts.cfg.API.BaseURL)
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&all, "all", false, "remove the whole cache directory, every API included")

	cmd.AddCommand(clearCmd)
	return cmd
}
