package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// PublicClient reads reddit's public JSON listings without credentials.
// Unlike the OAuth client it sees full submission payloads, including
// gallery metadata.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

func NewPublicClient(baseURL, userAgent string) *PublicClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://www.reddit.com"
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON limit is stricter: 1 req / 2 seconds.
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

type listingEnvelope struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type rawPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	URL         string  `json:"url"`
	Selftext    string  `json:"selftext"`
	Subreddit   string  `json:"subreddit"`
	IsGallery   bool    `json:"is_gallery"`
	GalleryData *struct {
		Items []struct {
			MediaID string `json:"media_id"`
		} `json:"items"`
	} `json:"gallery_data"`
}

type rawComment struct {
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	CreatedUTC float64 `json:"created_utc"`
	Score      int     `json:"score"`
	Stickied   bool    `json:"stickied"`
}

func (c *PublicClient) FetchPosts(ctx context.Context, feed string, listing Listing) ([]model.Post, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{"limit": {strconv.Itoa(listing.Limit)}}
	if listing.Sort == "top" && listing.Window != "" {
		q.Set("t", listing.Window)
	}
	endpoint := fmt.Sprintf("%s/r/%s/%s.json?%s", c.baseURL, feed, listing.Sort, q.Encode())

	var env listingEnvelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return nil, fmt.Errorf("public fetch r/%s: %w", feed, err)
	}

	out := make([]model.Post, 0, len(env.Data.Children))
	for _, child := range env.Data.Children {
		var rp rawPost
		if err := json.Unmarshal(child.Data, &rp); err != nil {
			return nil, fmt.Errorf("public fetch r/%s: decode post: %w", feed, err)
		}
		mp := model.Post{
			ID:        rp.ID,
			Title:     rp.Title,
			Author:    authorOrDeleted(rp.Author),
			CreatedAt: time.Unix(int64(rp.CreatedUTC), 0),
			Score:     rp.Score,
			URL:       rp.URL,
			Body:      rp.Selftext,
			Feed:      rp.Subreddit,
			IsGallery: rp.IsGallery,
		}
		if rp.GalleryData != nil {
			for _, it := range rp.GalleryData.Items {
				mp.GalleryIDs = append(mp.GalleryIDs, it.MediaID)
			}
		}
		if listing.WithComments {
			comments, err := c.fetchComments(ctx, feed, rp.ID, listing.CommentLimit)
			if err != nil {
				return nil, fmt.Errorf("public fetch comments for %s: %w", rp.ID, err)
			}
			mp.Comments = comments
		}
		out = append(out, mp)
	}
	return out, nil
}

// fetchComments loads the top-level comments of a post. depth=1 keeps the
// payload to top-level entries; nested replies are not ranked.
func (c *PublicClient) fetchComments(ctx context.Context, feed, postID string, limit int) ([]model.Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	endpoint := fmt.Sprintf("%s/r/%s/comments/%s.json?depth=1&limit=%d", c.baseURL, feed, postID, limit)

	// The comments endpoint returns two listings: the post, then its comments.
	var envs []listingEnvelope
	if err := c.getJSON(ctx, endpoint, &envs); err != nil {
		return nil, err
	}
	if len(envs) < 2 {
		return nil, nil
	}
	var out []model.Comment
	for _, child := range envs[1].Data.Children {
		if child.Kind != "t1" {
			continue // "more" placeholders
		}
		var rc rawComment
		if err := json.Unmarshal(child.Data, &rc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		out = append(out, model.Comment{
			Author:    authorOrDeleted(rc.Author),
			Body:      rc.Body,
			CreatedAt: time.Unix(int64(rc.CreatedUTC), 0),
			Score:     rc.Score,
			Pinned:    rc.Stickied,
		})
	}
	return out, nil
}

func (c *PublicClient) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
