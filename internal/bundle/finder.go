package bundle

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoneReady reports that no staged bundle carries a summary file yet.
var ErrNoneReady = errors.New("no publishable bundle found")

// Ready points at the first publishable bundle under an output root.
type Ready struct {
	Dir       string // bundle directory
	Summary   string // contents of post-summary.txt, trimmed
	MediaPath string // first file under media/, empty if none
}

// FindReady walks the output root and returns the first directory that
// contains a summary file, mirroring how the downstream publisher
// discovers work. Returns ErrNoneReady when nothing is staged.
func FindReady(root string) (*Ready, error) {
	var found *Ready
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		summaryPath := filepath.Join(path, SummaryFile)
		b, err := os.ReadFile(summaryPath)
		if err != nil {
			return nil // not a ready bundle; keep walking
		}
		found = &Ready{
			Dir:       path,
			Summary:   strings.TrimSpace(string(b)),
			MediaPath: firstMediaFile(filepath.Join(path, MediaDir)),
		}
		return fs.SkipAll
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNoneReady
	}
	return found, nil
}

func firstMediaFile(mediaDir string) string {
	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(mediaDir, names[0])
}
