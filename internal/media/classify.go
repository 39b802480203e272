package media

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PoliTwit1984/bsky-reddit-bot/internal/model"
)

// Kind identifies the retrieval strategy for a post's media.
type Kind string

const (
	KindNone        Kind = "none"
	KindDirectImage Kind = "image"
	KindGallery     Kind = "gallery"
	KindVideo       Kind = "video"
	KindExternal    Kind = "external"
)

// Ref is the classification result for one post. Derived, never persisted.
type Ref struct {
	Kind       Kind
	URL        string
	GalleryIDs []string
}

var (
	youtubeWatchRe = regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`)
	youtubeShortRe = regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`)
	redgifsRe      = regexp.MustCompile(`^(?:https?://)?(?:www\.)?redgifs\.com/(?:watch|i)/[\w-]+`)
)

var imageExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
}

var videoExts = map[string]struct{}{
	".mp4": {}, ".webm": {}, ".mov": {},
}

// Classify maps a post's URL shape to a media kind. First match wins:
// externally-hosted patterns, then gallery, then direct image and video
// extensions. Unknown or malformed URLs classify as none, never an error.
func Classify(p model.Post) Ref {
	u := strings.TrimSpace(p.URL)
	if isExternalHost(u) {
		return Ref{Kind: KindExternal, URL: u}
	}
	if p.IsGallery && len(p.GalleryIDs) > 0 {
		return Ref{Kind: KindGallery, URL: u, GalleryIDs: p.GalleryIDs}
	}
	ext := urlPathExt(u)
	if _, ok := imageExts[ext]; ok {
		return Ref{Kind: KindDirectImage, URL: u}
	}
	if _, ok := videoExts[ext]; ok {
		return Ref{Kind: KindVideo, URL: u}
	}
	return Ref{Kind: KindNone, URL: u}
}

func isExternalHost(u string) bool {
	if u == "" {
		return false
	}
	return youtubeWatchRe.MatchString(u) ||
		youtubeShortRe.MatchString(u) ||
		redgifsRe.MatchString(u) ||
		strings.Contains(u, "imgur.com") ||
		strings.Contains(u, "redgifs.com")
}

func urlPathExt(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(parsed.Path))
}
