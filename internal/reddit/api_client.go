package reddit

import (
	"context"
	"fmt"
	"strings"
	"time"

	gor "github.com/loganintech/go-reddit/v2/reddit"
	"golang.org/x/time/rate"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// APIClient talks to reddit through the authenticated OAuth API.
type APIClient struct {
	client  *gor.Client
	limiter *rate.Limiter
}

// NewAPIClient builds an authenticated client. userAgent is required by
// reddit's API rules.
func NewAPIClient(id, secret, user, pass, userAgent string) (*APIClient, error) {
	creds := gor.Credentials{ID: id, Secret: secret, Username: user, Password: pass}
	client, err := gor.NewClient(creds, gor.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}
	// API rate limit: ~60 reqs/min, keep a safe buffer.
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)
	return &APIClient{client: client, limiter: limiter}, nil
}

func (c *APIClient) FetchPosts(ctx context.Context, feed string, listing Listing) ([]model.Post, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var (
		posts []*gor.Post
		err   error
	)
	opts := &gor.ListOptions{Limit: listing.Limit}
	switch listing.Sort {
	case "hot":
		posts, _, err = c.client.Subreddit.HotPosts(ctx, feed, opts)
	case "new":
		posts, _, err = c.client.Subreddit.NewPosts(ctx, feed, opts)
	case "rising":
		posts, _, err = c.client.Subreddit.RisingPosts(ctx, feed, opts)
	case "top":
		posts, _, err = c.client.Subreddit.TopPosts(ctx, feed, &gor.ListPostOptions{
			ListOptions: *opts,
			Time:        listing.Window,
		})
	default:
		return nil, fmt.Errorf("unknown sort: %s", listing.Sort)
	}
	if err != nil {
		return nil, fmt.Errorf("api fetch r/%s: %w", feed, err)
	}

	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		mp := model.Post{
			ID:     p.ID,
			Title:  p.Title,
			Author: authorOrDeleted(p.Author),
			Score:  p.Score,
			URL:    p.URL,
			Body:   p.Body,
			Feed:   p.SubredditName,
			// The OAuth listing does not expose gallery metadata; gallery
			// posts are recognizable by URL only and carry no item IDs.
			IsGallery: strings.Contains(p.URL, "/gallery/"),
		}
		if p.Created != nil {
			mp.CreatedAt = p.Created.Time
		}
		if listing.WithComments {
			comments, err := c.fetchComments(ctx, p.ID)
			if err != nil {
				return nil, fmt.Errorf("api fetch comments for %s: %w", p.ID, err)
			}
			mp.Comments = comments
		}
		out = append(out, mp)
	}
	return out, nil
}

// fetchComments loads the top-level comments of a post.
func (c *APIClient) fetchComments(ctx context.Context, postID string) ([]model.Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	pc, _, err := c.client.Post.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Comment, 0, len(pc.Comments))
	for _, cm := range pc.Comments {
		mc := model.Comment{
			Author: authorOrDeleted(cm.Author),
			Body:   cm.Body,
			Score:  cm.Score,
			Pinned: cm.Stickied,
		}
		if cm.Created != nil {
			mc.CreatedAt = cm.Created.Time
		}
		out = append(out, mc)
	}
	return out, nil
}

func authorOrDeleted(a string) string {
	if strings.TrimSpace(a) == "" {
		return "[deleted]"
	}
	return a
}
