package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

type stubSummarizer struct {
	out string
	err error
}

func (s *stubSummarizer) Summarize(ctx context.Context, title, corpus string) (string, error) {
	return s.out, s.err
}

func TestBuild_UsesSummarizer(t *testing.T) {
	b := NewBuilder(&stubSummarizer{out: "A tidy little synopsis."})
	got := b.Build(context.Background(), "some title", []model.Comment{{Body: "comment"}})
	assert.Equal(t, "A tidy little synopsis.", got)
}

func TestBuild_ClampsSummarizerOutput(t *testing.T) {
	b := NewBuilder(&stubSummarizer{out: strings.Repeat("x", 400)})
	got := b.Build(context.Background(), "title", nil)
	assert.LessOrEqual(t, len([]rune(got)), MaxLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestBuild_FallbackOnError(t *testing.T) {
	title := strings.Repeat("A", 300)
	b := NewBuilder(&stubSummarizer{err: errors.New("model unavailable")})

	got := b.Build(context.Background(), title, nil)

	assert.Equal(t, strings.Repeat("A", 247)+"...", got)
}

func TestBuild_FallbackShortTitleUnchanged(t *testing.T) {
	b := NewBuilder(nil)
	got := b.Build(context.Background(), "short title", nil)
	assert.Equal(t, "short title", got)
}

func TestBuild_FallbackOnEmptySummarizerOutput(t *testing.T) {
	b := NewBuilder(&stubSummarizer{out: "   "})
	got := b.Build(context.Background(), "the title", nil)
	assert.Equal(t, "the title", got)
}

func TestBuild_BoundHoldsForAllInputs(t *testing.T) {
	titles := []string{"", "short", strings.Repeat("A", 250), strings.Repeat("A", 251), strings.Repeat("日", 400)}
	b := NewBuilder(nil)
	for _, title := range titles {
		got := b.Build(context.Background(), title, nil)
		assert.LessOrEqual(t, len([]rune(got)), MaxLen)
	}
}
