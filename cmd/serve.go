package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PoliTwit1984/bsky-reddit-bot/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run staging batches on an interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if len(cfg.Feeds) == 0 {
			return fmt.Errorf("no feeds configured: add a feeds section to config.yaml")
		}

		interval, err := time.ParseDuration(cfg.App.FetchInterval)
		if err != nil {
			return fmt.Errorf("invalid app.fetch_interval: %w", err)
		}

		runner, closeFn, err := buildRunner(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		fw := &worker.FeedWorker{
			Runner:   runner,
			Feeds:    cfg.Feeds,
			Interval: interval,
		}

		slog.Info("serve: starting feed worker", "feeds", len(cfg.Feeds), "interval", interval.String())
		mgr := worker.NewManager(fw)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
