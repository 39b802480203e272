package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/comments"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/config"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/media"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
	"github.com/PoliTwit1984/bsky-reddit-bot/internal/summary"
)

// Artifact file names inside a bundle directory. post-summary.txt is the
// publisher's readiness signal: a bundle without it is not publishable.
const (
	InfoFile     = "post_info.txt"
	TitleFile    = "title.txt"
	URLFile      = "url.txt"
	CommentsFile = "comments.txt"
	SummaryFile  = "post-summary.txt"
	ManifestFile = "manifest.yaml"
	MediaDir     = "media"
)

var commentSeparator = strings.Repeat("-", 80)

// Writer stages one post as an on-disk bundle for the downstream
// publisher. All failure is encoded in the returned Outcome; Write never
// returns an error.
type Writer struct {
	Synopsis  *summary.Builder
	Retriever *media.Retriever
}

func NewWriter(s *summary.Builder, r *media.Retriever) *Writer {
	return &Writer{Synopsis: s, Retriever: r}
}

// Write builds the bundle directory {root}/{YYYY-MM-DD}/{feed}_{postID}.
// If the feed policy discards no-media posts and nothing was retrieved,
// the directory is removed again and the post counts as an intentional
// skip, not a failure.
func (w *Writer) Write(ctx context.Context, post model.Post, feed config.FeedConfig, root string) model.Outcome {
	day := time.Now().Format("2006-01-02")
	dir := filepath.Join(root, day, feed.Name+"_"+post.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.Outcome{Success: false, Errors: []string{fmt.Sprintf("create bundle dir: %v", err)}}
	}

	var out model.Outcome
	hasMedia := false

	// fail aborts the post, cleaning up under the same discard policy as
	// the normal path.
	fail := func(msg string) model.Outcome {
		if feed.SkipNoMedia && !hasMedia {
			os.RemoveAll(dir)
		}
		out.Success = false
		out.Errors = append(out.Errors, msg)
		return out
	}

	paths, err := w.writeTextArtifacts(dir, post)
	out.Files = append(out.Files, paths...)
	if err != nil {
		return fail(fmt.Sprintf("write text artifacts: %v", err))
	}

	if feed.DownloadComments && feed.MaxComments > 0 {
		ranked := comments.Rank(post.Comments, feed.MaxComments)
		if len(ranked) > 0 {
			commentsPath := filepath.Join(dir, CommentsFile)
			if err := writeComments(commentsPath, ranked); err != nil {
				return fail(fmt.Sprintf("write comments: %v", err))
			}
			out.Files = append(out.Files, commentsPath)

			// The summary file marks the bundle publishable; it is written
			// last among the text artifacts.
			synopsis := w.Synopsis.Build(ctx, post.Title, ranked)
			summaryPath := filepath.Join(dir, SummaryFile)
			if err := os.WriteFile(summaryPath, []byte(synopsis), 0o644); err != nil {
				return fail(fmt.Sprintf("write summary: %v", err))
			}
			out.Files = append(out.Files, summaryPath)
		}
	}

	if feed.DownloadMedia && post.URL != "" {
		mediaDir := filepath.Join(dir, MediaDir)
		if err := os.MkdirAll(mediaDir, 0o755); err != nil {
			return fail(fmt.Sprintf("create media dir: %v", err))
		}
		ref := media.Classify(post)
		if ref.Kind != media.KindNone {
			mctx := ctx
			if feed.Timeout > 0 {
				var cancel context.CancelFunc
				mctx, cancel = context.WithTimeout(ctx, time.Duration(feed.Timeout)*time.Second)
				defer cancel()
			}
			files, err := w.Retriever.Retrieve(mctx, ref, mediaDir, post.ID)
			if err != nil {
				slog.Warn("bundle: media download error", "feed", feed.Name, "post", post.ID, "kind", string(ref.Kind), "err", err)
				out.Errors = append(out.Errors, fmt.Sprintf("media download error: %v", err))
			}
			if len(files) > 0 {
				hasMedia = true
				out.Files = append(out.Files, files...)
			}
		}
	}

	if feed.SkipNoMedia && !hasMedia {
		slog.Info("bundle: no media found, removing directory", "feed", feed.Name, "post", post.ID)
		os.RemoveAll(dir)
		return model.Outcome{Success: true, Files: []string{}, Errors: []string{}}
	}

	if err := WriteManifest(dir, manifestFor(post, feed, out.Files)); err != nil {
		out.Errors = append(out.Errors, fmt.Sprintf("write manifest: %v", err))
	} else {
		out.Files = append(out.Files, filepath.Join(dir, ManifestFile))
	}

	out.Success = true
	return out
}

// writeTextArtifacts writes the info, title, and URL files. All three
// succeed or the step fails as a whole.
func (w *Writer) writeTextArtifacts(dir string, post model.Post) ([]string, error) {
	var written []string

	var info strings.Builder
	fmt.Fprintf(&info, "Title: %s\n", post.Title)
	fmt.Fprintf(&info, "Author: %s\n", post.Author)
	fmt.Fprintf(&info, "Created: %s\n", post.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&info, "Score: %d\n", post.Score)
	fmt.Fprintf(&info, "URL: %s\n\n", post.URL)
	if post.Body != "" {
		info.WriteString("Content:\n")
		info.WriteString(post.Body)
	}
	infoPath := filepath.Join(dir, InfoFile)
	if err := os.WriteFile(infoPath, []byte(info.String()), 0o644); err != nil {
		return written, err
	}
	written = append(written, infoPath)

	titlePath := filepath.Join(dir, TitleFile)
	if err := os.WriteFile(titlePath, []byte(post.Title), 0o644); err != nil {
		return written, err
	}
	written = append(written, titlePath)

	urlPath := filepath.Join(dir, URLFile)
	if err := os.WriteFile(urlPath, []byte(post.URL), 0o644); err != nil {
		return written, err
	}
	written = append(written, urlPath)

	return written, nil
}

func writeComments(path string, ranked []model.Comment) error {
	var sb strings.Builder
	for _, c := range ranked {
		fmt.Fprintf(&sb, "Author: %s\n", c.Author)
		fmt.Fprintf(&sb, "Created: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&sb, "Score: %d\n", c.Score)
		sb.WriteString("Content:\n")
		sb.WriteString(c.Body)
		sb.WriteString("\n\n" + commentSeparator + "\n\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
