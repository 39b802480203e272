package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/bundle"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/media"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/reddit"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/summary"
)

// testClient fails for one feed and serves fixed posts for the others.
type testClient struct {
	failFeed string
	posts    map[string][]model.Post
	calls    []string
}

func (c *testClient) FetchPosts(ctx context.Context, feed string, listing reddit.Listing) ([]model.Post, error) {
	c.calls = append(c.calls, feed)
	if feed == c.failFeed {
		return nil, errors.New("connection refused")
	}
	return c.posts[feed], nil
}

func testRunner(root string, client reddit.Client) *Runner {
	return &Runner{
		Selector: reddit.NewSelector(client),
		Writer:   bundle.NewWriter(summary.NewBuilder(nil), media.NewRetriever(time.Second, nil)),
		Root:     root,
	}
}

func feedConfig(name string) config.FeedConfig {
	return config.FeedConfig{
		Name:             name,
		Mode:             "hot",
		Limit:            10,
		DownloadComments: true,
		MaxComments:      3,
		BatchSize:        5,
		Timeout:          30,
	}
}

func post(id, feed string) model.Post {
	return model.Post{
		ID:        id,
		Title:     "title " + id,
		Author:    "author",
		CreatedAt: time.Now(),
		Score:     1,
		URL:       "https://example.com/" + id,
		Feed:      feed,
		Comments:  []model.Comment{{Author: "c", Body: "comment", Score: 3}},
	}
}

func TestRun_ProcessesAllFeedsDespiteFailures(t *testing.T) {
	root := t.TempDir()
	client := &testClient{
		failFeed: "broken",
		posts: map[string][]model.Post{
			"golang": {post("g1", "golang"), post("g2", "golang")},
			"aww":    {post("a1", "aww")},
		},
	}
	r := testRunner(root, client)

	feeds := []config.FeedConfig{
		feedConfig("golang"),
		{Name: "bad name!", Mode: "hot", Limit: 10, BatchSize: 5, Timeout: 30}, // invalid: skipped before any call
		feedConfig("broken"),                                                  // fetch fails: skipped
		feedConfig("aww"),
	}

	r.Run(context.Background(), feeds)

	// invalid feed never reached the client; the rest all did
	assert.Equal(t, []string{"golang", "broken", "aww"}, client.calls)

	day := time.Now().Format("2006-01-02")
	for _, want := range []string{"golang_g1", "golang_g2", "aww_a1"} {
		_, err := os.Stat(filepath.Join(root, day, want))
		assert.NoError(t, err, "bundle %s should be staged", want)
	}
}

func TestRun_PostFailureDoesNotStopBatch(t *testing.T) {
	root := t.TempDir()
	bad := post("bad", "golang")
	bad.URL = "" // still stages fine; prove batch continues regardless of outcome mix
	client := &testClient{posts: map[string][]model.Post{
		"golang": {bad, post("good", "golang")},
	}}
	r := testRunner(root, client)

	require.NotPanics(t, func() {
		r.Run(context.Background(), []config.FeedConfig{feedConfig("golang")})
	})

	day := time.Now().Format("2006-01-02")
	_, err := os.Stat(filepath.Join(root, day, "golang_good"))
	assert.NoError(t, err)
}

func TestRun_NoFeeds(t *testing.T) {
	client := &testClient{}
	r := testRunner(t.TempDir(), client)
	assert.NotPanics(t, func() { r.Run(context.Background(), nil) })
	assert.Empty(t, client.calls)
}
