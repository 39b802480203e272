package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// defaultGalleryBase is the image host that serves gallery items by media ID.
const defaultGalleryBase = "https://i.redd.it"

const chunkSize = 8192

// Delegate is the external download capability used for externally-hosted
// media. It never fails; an empty path means the download did not happen.
type Delegate interface {
	Fetch(ctx context.Context, rawURL, destDir, baseName string) string
}

// Retriever fetches classified media references onto disk.
type Retriever struct {
	httpClient  *http.Client
	delegate    Delegate
	galleryBase string
}

func NewRetriever(timeout time.Duration, delegate Delegate) *Retriever {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Retriever{
		httpClient:  &http.Client{Timeout: timeout},
		delegate:    delegate,
		galleryBase: defaultGalleryBase,
	}
}

// Retrieve downloads the media a Ref points at into destDir, naming files
// after the post ID. The returned paths are the files that were fully
// written. A non-nil error describes what was lost; partial gallery
// success returns both the successes and an error.
func (r *Retriever) Retrieve(ctx context.Context, ref Ref, destDir, postID string) ([]string, error) {
	switch ref.Kind {
	case KindNone:
		return nil, nil
	case KindExternal:
		if r.delegate == nil {
			return nil, errors.New("no delegate downloader configured")
		}
		p := r.delegate.Fetch(ctx, ref.URL, destDir, postID)
		if p == "" {
			return nil, fmt.Errorf("delegate download failed: %s", ref.URL)
		}
		return []string{p}, nil
	case KindDirectImage:
		p, err := r.download(ctx, ref.URL, destDir, postID, ".jpg")
		if err != nil {
			return nil, err
		}
		return []string{p}, nil
	case KindVideo:
		p, err := r.download(ctx, ref.URL, destDir, postID, ".mp4")
		if err != nil {
			return nil, err
		}
		return []string{p}, nil
	case KindGallery:
		var written []string
		var failed []string
		for _, id := range ref.GalleryIDs {
			itemURL := fmt.Sprintf("%s/%s.jpg", r.galleryBase, id)
			p, err := r.download(ctx, itemURL, destDir, postID+"_"+id, ".jpg")
			if err != nil {
				slog.Warn("media: gallery item download failed", "post", postID, "item", id, "err", err)
				failed = append(failed, id)
				continue
			}
			written = append(written, p)
		}
		if len(failed) > 0 {
			return written, fmt.Errorf("gallery items failed: %s", strings.Join(failed, ", "))
		}
		return written, nil
	default:
		return nil, fmt.Errorf("unknown media kind: %s", ref.Kind)
	}
}

// download streams a URL to disk in fixed-size chunks. The write succeeds
// fully or the partial file is removed.
func (r *Retriever) download(ctx context.Context, rawURL, destDir, baseName, defaultExt string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download %s: status %d", rawURL, resp.StatusCode)
	}

	ext := extFromContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = pathExt(rawURL)
	}
	if ext == "" {
		ext = defaultExt
	}

	dest := filepath.Join(destDir, baseName+ext)
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(f, resp.Body, buf); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", err
	}

	if ext == ".webp" {
		// Downstream publishers cannot attach webp; re-encode as JPEG.
		if converted, err := NormalizeWebP(dest); err != nil {
			slog.Warn("media: webp conversion failed, keeping original", "path", dest, "err", err)
		} else {
			dest = converted
		}
	}
	return dest, nil
}

func extFromContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "mp4"):
		return ".mp4"
	case strings.Contains(ct, "webm"):
		return ".webm"
	}
	return ""
}

func pathExt(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(parsed.Path))
}
