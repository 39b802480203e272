package reddit

import (
	"context"
	"fmt"
	"time"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// MockClient implements Client with deterministic fake data. Useful for
// dry runs against a real output directory without touching reddit.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) FetchPosts(ctx context.Context, feed string, listing Listing) ([]model.Post, error) {
	posts := make([]model.Post, 0, listing.Limit)
	for i := 0; i < listing.Limit; i++ {
		p := model.Post{
			ID:        fmt.Sprintf("mock_%s_%d", feed, i),
			Title:     fmt.Sprintf("[%s] Simulated post #%d", feed, i),
			Author:    "simulated_user",
			CreatedAt: time.Now(),
			Score:     100 - i,
			URL:       fmt.Sprintf("https://example.com/%s/%d.jpg", feed, i),
			Body:      "simulated selftext",
			Feed:      feed,
		}
		if listing.WithComments {
			p.Comments = []model.Comment{
				{Author: "simulated_commenter", Body: "simulated comment", CreatedAt: time.Now(), Score: 10},
			}
		}
		posts = append(posts, p)
	}
	return posts, nil
}
