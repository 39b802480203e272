package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/bundle"

	"github.com/spf13/cobra"
)

// findCmd locates the next publishable bundle, the same way the
// downstream publisher discovers work.
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Print the next publishable bundle under the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ready, err := bundle.FindReady(cfg.App.OutputDir)
		if errors.Is(err, bundle.ErrNoneReady) {
			fmt.Fprintln(cmd.OutOrStdout(), "No publishable bundle found.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Bundle: %s\n", ready.Dir)
		fmt.Fprintf(cmd.OutOrStdout(), "Summary: %s\n", ready.Summary)
		if ready.MediaPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Media: %s\n", filepath.Base(ready.MediaPath))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Media: (none)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
