package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/bundle"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/reddit"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/storage"
)

// Runner iterates configured feeds and stages each post as a bundle.
// Failures are isolated: a bad feed config or an unreachable source skips
// that feed; a failed post never stops the rest of the batch.
type Runner struct {
	Selector     *reddit.Selector
	Writer       *bundle.Writer
	Store        *storage.RedisStore // optional cross-run dedupe
	Root         string
	ProcessedTTL time.Duration
}

// Run processes every feed and every post, regardless of individual
// failures. Nothing here is fatal to the overall run.
func (r *Runner) Run(ctx context.Context, feeds []config.FeedConfig) {
	for _, feed := range feeds {
		posts, err := r.Selector.Select(ctx, feed)
		if err != nil {
			if errors.Is(err, config.ErrInvalidConfiguration) {
				slog.Error("batch: invalid feed configuration", "feed", feed.Name, "err", err)
			} else {
				slog.Error("batch: feed fetch failed", "feed", feed.Name, "err", err)
			}
			continue
		}
		slog.Info("batch: processing feed", "feed", feed.Name, "posts", len(posts))

		for i, post := range posts {
			if r.alreadyProcessed(ctx, feed.Name, post.ID) {
				slog.Info("batch: post already staged, skipping", "feed", feed.Name, "post", post.ID)
				continue
			}
			slog.Info("batch: processing post", "feed", feed.Name, "post", post.ID, "n", i+1, "of", len(posts))
			out := r.Writer.Write(ctx, post, feed, r.Root)
			switch {
			case out.Success && len(out.Files) > 0:
				slog.Info("batch: staged bundle", "feed", feed.Name, "post", post.ID, "files", len(out.Files))
			case out.Success:
				slog.Info("batch: post skipped", "feed", feed.Name, "post", post.ID)
			default:
				slog.Warn("batch: post failed", "feed", feed.Name, "post", post.ID, "errors", out.Errors)
			}
			for _, e := range out.Errors {
				slog.Warn("batch: post error detail", "feed", feed.Name, "post", post.ID, "err", e)
			}
			if out.Success {
				r.markProcessed(ctx, feed.Name, post.ID)
			}
		}
	}
}

// alreadyProcessed consults the optional store. Redis being down degrades
// to no dedupe, never to a failed batch.
func (r *Runner) alreadyProcessed(ctx context.Context, feed, id string) bool {
	if r.Store == nil {
		return false
	}
	done, err := r.Store.IsProcessed(ctx, feed, id)
	if err != nil {
		slog.Warn("batch: processed lookup failed", "feed", feed, "post", id, "err", err)
		return false
	}
	return done
}

func (r *Runner) markProcessed(ctx context.Context, feed, id string) {
	if r.Store == nil {
		return
	}
	ttl := r.ProcessedTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if err := r.Store.MarkProcessed(ctx, feed, id, ttl); err != nil {
		slog.Warn("batch: mark processed failed", "feed", feed, "post", id, "err", err)
	}
}
