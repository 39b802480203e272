package reddit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// Selector turns a validated feed policy into a post sequence.
type Selector struct {
	Client Client
}

func NewSelector(c Client) *Selector {
	return &Selector{Client: c}
}

// Select validates the policy fully before any external call, then fetches
// posts in source order. Validation failures wrap
// config.ErrInvalidConfiguration; fetch failures wrap ErrSourceUnavailable.
func (s *Selector) Select(ctx context.Context, feed config.FeedConfig) ([]model.Post, error) {
	if err := feed.Validate(); err != nil {
		return nil, err
	}
	listing := Listing{
		Sort:         feed.Mode,
		Window:       feed.Window,
		Limit:        feed.Limit,
		WithComments: feed.DownloadComments && feed.MaxComments > 0,
		CommentLimit: feed.BatchSize,
	}
	slog.Info("selector: fetching posts", "feed", feed.Name, "mode", feed.Mode, "limit", feed.Limit)
	posts, err := s.Client.FetchPosts(ctx, feed.Name, listing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return posts, nil
}
