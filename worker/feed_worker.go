package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/batch"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
)

// FeedWorker runs a staging batch over the configured feeds on an
// interval. The first run happens immediately.
type FeedWorker struct {
	Runner   *batch.Runner
	Feeds    []config.FeedConfig
	Interval time.Duration
}

func (w *FeedWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}

	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *FeedWorker) runOnce(ctx context.Context) {
	start := time.Now()
	w.Runner.Run(ctx, w.Feeds)
	slog.Info("feed-worker: batch completed", "feeds", len(w.Feeds), "took", time.Since(start).Round(time.Millisecond))
}
