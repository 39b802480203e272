package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

func c(author, body string, score int) model.Comment {
	return model.Comment{Author: author, Body: body, Score: score}
}

func TestRank_ScoreDescendingStableTies(t *testing.T) {
	nodes := []model.Comment{
		c("a", "three", 3),
		c("b", "ten-first", 10),
		c("c", "ten-second", 10),
		c("d", "one", 1),
		c("e", "seven", 7),
	}

	ranked := Rank(nodes, 3)

	assert.Len(t, ranked, 3)
	// The two score-10 entries keep their original relative order.
	assert.Equal(t, "ten-first", ranked[0].Body)
	assert.Equal(t, "ten-second", ranked[1].Body)
	assert.Equal(t, "seven", ranked[2].Body)
}

func TestRank_FiltersPinnedAndPlaceholders(t *testing.T) {
	nodes := []model.Comment{
		{Author: "mod", Body: "pinned announcement", Score: 999, Pinned: true},
		c("a", "", 500),
		c("b", "[deleted]", 400),
		c("c", "[removed]", 300),
		c("d", "keeper", 1),
	}

	ranked := Rank(nodes, 10)

	assert.Len(t, ranked, 1)
	assert.Equal(t, "keeper", ranked[0].Body)
}

func TestRank_CapZeroDisablesDiscussion(t *testing.T) {
	nodes := []model.Comment{c("a", "hello", 5)}
	assert.Empty(t, Rank(nodes, 0))
	assert.Empty(t, Rank(nodes, -1))
}

func TestRank_CapLargerThanInput(t *testing.T) {
	nodes := []model.Comment{c("a", "x", 2), c("b", "y", 9)}
	ranked := Rank(nodes, 50)
	assert.Len(t, ranked, 2)
	assert.Equal(t, "y", ranked[0].Body)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	nodes := []model.Comment{c("a", "low", 1), c("b", "high", 9)}
	_ = Rank(nodes, 2)
	assert.Equal(t, "low", nodes[0].Body)
	assert.Equal(t, "high", nodes[1].Body)
}
