package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidConfiguration marks feed configurations that fail validation
// before any external call. Callers skip the feed and continue.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel      string `mapstructure:"log_level"`
	OutputDir     string `mapstructure:"output_dir"`
	FetchInterval string `mapstructure:"fetch_interval"` // duration string, e.g., "30m"
	ProcessedTTL  string `mapstructure:"processed_ttl"`  // duration string, e.g., "168h"
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RedditConfig controls how the source client is built. Credentials for
// the authenticated client come from the environment, not from this file.
type RedditConfig struct {
	Mode      string `mapstructure:"mode"` // api, public, or mock
	UserAgent string `mapstructure:"user_agent"`
	BaseURL   string `mapstructure:"base_url"` // public JSON endpoint
}

// OpenAIConfig controls the summarization client.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// FeedConfig is the per-feed download policy. Immutable once validated.
type FeedConfig struct {
	Name             string `mapstructure:"name"`
	Mode             string `mapstructure:"mode"`   // hot, new, top, rising
	Window           string `mapstructure:"window"` // required iff mode == top
	Limit            int    `mapstructure:"limit"`
	DownloadMedia    bool   `mapstructure:"download_media"`
	DownloadComments bool   `mapstructure:"download_comments"`
	MaxComments      int    `mapstructure:"max_comments"`
	SkipNoMedia      bool   `mapstructure:"skip_no_media"`
	BatchSize        int    `mapstructure:"batch_size"`
	Timeout          int    `mapstructure:"timeout"` // seconds
}

// Config is the top-level configuration structure.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Reddit RedditConfig `mapstructure:"reddit"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Feeds  []FeedConfig `mapstructure:"feeds"`
}

// feedNameRe matches reddit's subreddit naming rules: 3-21 characters,
// starting with a letter or digit, letters/digits/underscores only.
var feedNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_]{2,20}$`)

var validModes = map[string]struct{}{
	"hot": {}, "new": {}, "top": {}, "rising": {},
}

var validWindows = map[string]struct{}{
	"all": {}, "day": {}, "hour": {}, "month": {}, "week": {}, "year": {},
}

// Validate checks the full policy before any external call is made.
func (f FeedConfig) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: feed name is required", ErrInvalidConfiguration)
	}
	if !feedNameRe.MatchString(f.Name) {
		return fmt.Errorf("%w: invalid feed name %q: must be 3-21 characters, start with letter/number, and contain only letters, numbers, or underscores", ErrInvalidConfiguration, f.Name)
	}
	if _, ok := validModes[f.Mode]; !ok {
		return fmt.Errorf("%w: invalid mode %q: must be one of hot, new, top, rising", ErrInvalidConfiguration, f.Mode)
	}
	if f.Mode == "top" {
		if f.Window == "" {
			return fmt.Errorf("%w: time filter required for top posts", ErrInvalidConfiguration)
		}
		if _, ok := validWindows[f.Window]; !ok {
			return fmt.Errorf("%w: invalid time window %q: must be one of all, day, hour, month, week, year", ErrInvalidConfiguration, f.Window)
		}
	} else if f.Window != "" {
		return fmt.Errorf("%w: time window is only valid for top posts", ErrInvalidConfiguration)
	}
	if f.Limit < 1 || f.Limit > 100 {
		return fmt.Errorf("%w: limit must be between 1 and 100", ErrInvalidConfiguration)
	}
	if f.MaxComments < 0 {
		return fmt.Errorf("%w: max_comments must be greater than or equal to 0", ErrInvalidConfiguration)
	}
	if f.BatchSize < 1 || f.BatchSize > 100 {
		return fmt.Errorf("%w: batch_size must be between 1 and 100", ErrInvalidConfiguration)
	}
	if f.Timeout < 1 || f.Timeout > 300 {
		return fmt.Errorf("%w: timeout must be between 1 and 300 seconds", ErrInvalidConfiguration)
	}
	return nil
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.OutputDir == "" {
		c.App.OutputDir = "./downloads"
	}
	if c.App.FetchInterval == "" {
		c.App.FetchInterval = "30m"
	}
	if c.App.ProcessedTTL == "" {
		c.App.ProcessedTTL = "168h"
	}
	if c.Reddit.Mode == "" {
		c.Reddit.Mode = "public"
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = "bsky-reddit-bot/1.0"
	}
	if c.Reddit.BaseURL == "" {
		c.Reddit.BaseURL = "https://www.reddit.com"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o"
	}
	for i := range c.Feeds {
		f := &c.Feeds[i]
		if f.Limit == 0 {
			f.Limit = 10
		}
		if f.MaxComments == 0 {
			f.MaxComments = 5
		}
		if f.BatchSize == 0 {
			f.BatchSize = 5
		}
		if f.Timeout == 0 {
			f.Timeout = 30
		}
	}
}
