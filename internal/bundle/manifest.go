package bundle

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// Manifest describes a staged bundle for the publisher. It is additive:
// the readiness contract remains the presence of post-summary.txt.
type Manifest struct {
	Feed       string    `yaml:"feed"`
	PostID     string    `yaml:"post_id"`
	Title      string    `yaml:"title"`
	Author     string    `yaml:"author"`
	Score      int       `yaml:"score"`
	URL        string    `yaml:"url"`
	CreatedAt  time.Time `yaml:"created_at"`
	StagedAt   time.Time `yaml:"staged_at"`
	Files      []string  `yaml:"files"`
	HasSummary bool      `yaml:"has_summary"`
}

func manifestFor(post model.Post, feed config.FeedConfig, files []string) Manifest {
	m := Manifest{
		Feed:      feed.Name,
		PostID:    post.ID,
		Title:     post.Title,
		Author:    post.Author,
		Score:     post.Score,
		URL:       post.URL,
		CreatedAt: post.CreatedAt,
		StagedAt:  time.Now(),
	}
	for _, f := range files {
		base := filepath.Base(f)
		m.Files = append(m.Files, base)
		if base == SummaryFile {
			m.HasSummary = true
		}
	}
	return m
}

// WriteManifest marshals the manifest into the bundle directory.
func WriteManifest(dir string, m Manifest) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestFile), b, 0o644)
}
