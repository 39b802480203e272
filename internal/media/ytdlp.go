package media

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"
)

// YTDLP delegates externally-hosted media downloads to the yt-dlp binary,
// which chooses the output extension itself.
type YTDLP struct {
	Binary  string
	Timeout time.Duration
}

func NewYTDLP(timeout time.Duration) *YTDLP {
	return &YTDLP{Binary: "yt-dlp", Timeout: timeout}
}

// Fetch runs yt-dlp against rawURL, writing destDir/baseName.<ext>.
// It never returns an error; an empty path means the download failed.
func (y *YTDLP) Fetch(ctx context.Context, rawURL, destDir, baseName string) string {
	if y.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.Timeout)
		defer cancel()
	}
	bin := y.Binary
	if bin == "" {
		bin = "yt-dlp"
	}
	tmpl := filepath.Join(destDir, baseName+".%(ext)s")
	cmd := exec.CommandContext(ctx, bin,
		"--quiet",
		"--no-warnings",
		"-f", "best",
		"-o", tmpl,
		rawURL,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		slog.Error("media: yt-dlp failed", "url", rawURL, "err", err, "output", string(out))
		return ""
	}
	// yt-dlp picked the extension; find what it wrote.
	matches, err := filepath.Glob(filepath.Join(destDir, baseName+".*"))
	if err != nil || len(matches) == 0 {
		slog.Error("media: yt-dlp produced no output file", "url", rawURL)
		return ""
	}
	return matches[0]
}
