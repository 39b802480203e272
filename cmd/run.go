package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/ai"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/batch"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/bundle"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/media"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/reddit"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/redisclient"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/storage"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/summary"

	"github.com/spf13/cobra"
)

// runCmd stages one batch across all configured feeds and exits.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, summarize, and stage one batch of posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if len(cfg.Feeds) == 0 {
			return fmt.Errorf("no feeds configured: add a feeds section to config.yaml")
		}

		runner, closeFn, err := buildRunner(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		slog.Info("run: starting batch", "feeds", len(cfg.Feeds), "output", cfg.App.OutputDir)
		runner.Run(context.Background(), cfg.Feeds)
		fmt.Fprintln(cmd.OutOrStdout(), "Batch completed.")
		return nil
	},
}

// buildRunner wires the source client, summarizer, retriever, and
// optional Redis store from configuration.
func buildRunner(cfg config.Config) (*batch.Runner, func(), error) {
	client, err := reddit.New(cfg.Reddit)
	if err != nil {
		return nil, nil, err
	}

	var summarizer ai.Summarizer
	apiKey := cfg.OpenAI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey != "" {
		summarizer = ai.NewOpenAI(ai.Config{APIKey: apiKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
	} else {
		slog.Warn("run: no OpenAI key configured, synopses fall back to titles")
	}

	retriever := media.NewRetriever(30*time.Second, media.NewYTDLP(2*time.Minute))
	writer := bundle.NewWriter(summary.NewBuilder(summarizer), retriever)

	closeFn := func() {}
	var store *storage.RedisStore
	if cfg.Redis.Addr != "" {
		rdb := redisclient.New(cfg.Redis)
		closeFn = func() { rdb.Close() }
		store = storage.NewRedisStore(rdb)
	}

	ttl, err := time.ParseDuration(cfg.App.ProcessedTTL)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid app.processed_ttl: %w", err)
	}

	return &batch.Runner{
		Selector:     reddit.NewSelector(client),
		Writer:       writer,
		Store:        store,
		Root:         cfg.App.OutputDir,
		ProcessedTTL: ttl,
	}, closeFn, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
