package reddit

import (
	"context"
	"errors"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// ErrSourceUnavailable marks fetch failures that are only detectable at
// call time: unknown feed, auth failure, network error. Callers skip the
// feed and continue with the next one.
var ErrSourceUnavailable = errors.New("source unavailable")

// Listing describes a single listing request against a feed.
type Listing struct {
	Sort         string // hot, new, top, rising
	Window       string // only meaningful for top
	Limit        int
	WithComments bool
	CommentLimit int // per-request comment fetch size
}

// Client fetches posts from a feed. Implementations must return posts in
// the order the source produced them; ranking happens downstream.
type Client interface {
	FetchPosts(ctx context.Context, feed string, listing Listing) ([]model.Post, error)
}
