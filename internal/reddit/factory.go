package reddit

import (
	"fmt"
	"os"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
)

// New selects the client implementation for the configured mode.
// Credentials for api mode come from the environment.
func New(cfg config.RedditConfig) (Client, error) {
	switch cfg.Mode {
	case "api":
		return NewAPIClient(
			os.Getenv("REDDIT_CLIENT_ID"),
			os.Getenv("REDDIT_CLIENT_SECRET"),
			os.Getenv("REDDIT_USERNAME"),
			os.Getenv("REDDIT_PASSWORD"),
			cfg.UserAgent,
		)
	case "public":
		return NewPublicClient(cfg.BaseURL, cfg.UserAgent), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown reddit mode: %s (use 'api', 'public', or 'mock')", cfg.Mode)
	}
}
