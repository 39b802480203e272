package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFeed() FeedConfig {
	return FeedConfig{
		Name:      "golang",
		Mode:      "hot",
		Limit:     10,
		BatchSize: 5,
		Timeout:   30,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validFeed().Validate())

	top := validFeed()
	top.Mode = "top"
	top.Window = "week"
	assert.NoError(t, top.Validate())
}

func TestValidate_TopRequiresWindow(t *testing.T) {
	f := validFeed()
	f.Mode = "top"
	f.Window = ""

	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "time filter required for top posts")
}

func TestValidate_WindowOnlyForTop(t *testing.T) {
	f := validFeed()
	f.Mode = "new"
	f.Window = "day"
	assert.ErrorIs(t, f.Validate(), ErrInvalidConfiguration)
}

func TestValidate_FeedName(t *testing.T) {
	for _, name := range []string{"", "ab", "_underscore_first", "has-dash", "waytoolongsubredditname_x"} {
		f := validFeed()
		f.Name = name
		assert.ErrorIs(t, f.Validate(), ErrInvalidConfiguration, "name %q should be rejected", name)
	}
	for _, name := range []string{"aww", "golang", "Go_Lang2"} {
		f := validFeed()
		f.Name = name
		assert.NoError(t, f.Validate(), "name %q should be accepted", name)
	}
}

func TestValidate_Bounds(t *testing.T) {
	cases := []struct {
		mutate func(*FeedConfig)
	}{
		{func(f *FeedConfig) { f.Mode = "best" }},
		{func(f *FeedConfig) { f.Limit = 0 }},
		{func(f *FeedConfig) { f.Limit = 101 }},
		{func(f *FeedConfig) { f.MaxComments = -1 }},
		{func(f *FeedConfig) { f.BatchSize = 0 }},
		{func(f *FeedConfig) { f.BatchSize = 101 }},
		{func(f *FeedConfig) { f.Timeout = 0 }},
		{func(f *FeedConfig) { f.Timeout = 301 }},
		{func(f *FeedConfig) { f.Mode = "top"; f.Window = "fortnight" }},
	}
	for _, tc := range cases {
		f := validFeed()
		tc.mutate(&f)
		assert.ErrorIs(t, f.Validate(), ErrInvalidConfiguration)
	}
}

func TestFillDefaults(t *testing.T) {
	c := Config{Feeds: []FeedConfig{{Name: "golang", Mode: "hot"}}}
	c.FillDefaults()

	assert.Equal(t, "info", c.App.LogLevel)
	assert.Equal(t, "./downloads", c.App.OutputDir)
	assert.Equal(t, "public", c.Reddit.Mode)
	assert.Equal(t, "https://www.reddit.com", c.Reddit.BaseURL)

	f := c.Feeds[0]
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 5, f.MaxComments)
	assert.Equal(t, 5, f.BatchSize)
	assert.Equal(t, 30, f.Timeout)
	assert.NoError(t, f.Validate())
}
