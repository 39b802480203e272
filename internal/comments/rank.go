package comments

import (
	"sort"
	"strings"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// Rank filters out pinned and placeholder discussion entries, sorts the
// rest by score descending, and truncates to max entries. The sort is
// stable: ties keep their original fetch order. A max of zero means the
// discussion is disabled and yields an empty result.
func Rank(nodes []model.Comment, max int) []model.Comment {
	if max <= 0 {
		return nil
	}
	kept := make([]model.Comment, 0, len(nodes))
	for _, c := range nodes {
		if c.Pinned {
			continue
		}
		if isPlaceholder(c.Body) {
			continue
		}
		kept = append(kept, c)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	if len(kept) > max {
		kept = kept[:max]
	}
	return kept
}

func isPlaceholder(body string) bool {
	b := strings.TrimSpace(body)
	return b == "" || b == "[deleted]" || b == "[removed]"
}
