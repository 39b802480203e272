package summary

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/ai"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// MaxLen is the hard bound on synopsis length, matching the destination
// network's post-length constraint.
const MaxLen = 250

// Builder composes a bounded-length synopsis from a post title and its
// ranked discussion. A nil Summarizer always takes the fallback path.
type Builder struct {
	Summarizer ai.Summarizer
}

func NewBuilder(s ai.Summarizer) *Builder {
	return &Builder{Summarizer: s}
}

// Build returns a synopsis of at most MaxLen characters. Any failure of
// the summarization capability falls back to the truncated title; the
// fallback itself cannot fail.
func (b *Builder) Build(ctx context.Context, title string, ranked []model.Comment) string {
	if b.Summarizer != nil {
		corpus := corpusOf(ranked)
		s, err := b.Summarizer.Summarize(ctx, title, corpus)
		if err == nil && strings.TrimSpace(s) != "" {
			return truncate(strings.TrimSpace(s))
		}
		if err != nil {
			slog.Warn("synopsis: summarization failed, falling back to title", "err", err)
		}
	}
	return Fallback(title)
}

// Fallback is the deterministic no-summarizer synopsis: the title itself,
// truncated with an ellipsis marker when it exceeds the bound.
func Fallback(title string) string {
	return truncate(title)
}

func corpusOf(ranked []model.Comment) string {
	var sb strings.Builder
	for i, c := range ranked {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.Body)
	}
	return sb.String()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxLen {
		return s
	}
	return string(r[:MaxLen-3]) + "..."
}
