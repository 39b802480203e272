package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetriever(delegate Delegate) *Retriever {
	return &Retriever{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		delegate:   delegate,
	}
}

func TestRetrieve_DirectImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("not really a png"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	r := testRetriever(nil)

	files, err := r.Retrieve(context.Background(), Ref{Kind: KindDirectImage, URL: srv.URL + "/pic.jpg"}, dir, "abc123")

	require.NoError(t, err)
	require.Len(t, files, 1)
	// content-type wins over the URL extension
	assert.Equal(t, filepath.Join(dir, "abc123.png"), files[0])
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(b))
}

func TestRetrieve_ExtensionFallsBackToURLPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("gifbytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	r := testRetriever(nil)

	files, err := r.Retrieve(context.Background(), Ref{Kind: KindDirectImage, URL: srv.URL + "/anim.gif"}, dir, "p1")

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "p1.gif"), files[0])
}

func TestRetrieve_NonOKLeavesNothingBehind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	r := testRetriever(nil)

	files, err := r.Retrieve(context.Background(), Ref{Kind: KindDirectImage, URL: srv.URL + "/gone.jpg"}, dir, "p1")

	assert.Error(t, err)
	assert.Empty(t, files)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no partial files on failure")
}

func TestRetrieve_VideoDefaultExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("videobytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	r := testRetriever(nil)

	// No content-type hint and no path extension: default is .mp4.
	files, err := r.Retrieve(context.Background(), Ref{Kind: KindVideo, URL: srv.URL + "/clip"}, dir, "vid1")

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "vid1.mp4"), files[0])
}

func TestRetrieve_GalleryPartialSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.jpg" {
			http.Error(w, "nope", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegbytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	r := testRetriever(nil)
	r.galleryBase = srv.URL

	files, err := r.Retrieve(context.Background(), Ref{Kind: KindGallery, GalleryIDs: []string{"good", "bad", "fine"}}, dir, "post9")

	assert.Error(t, err, "failed items are reported")
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "post9_good.jpg"), files[0])
	assert.Equal(t, filepath.Join(dir, "post9_fine.jpg"), files[1])
}

func TestRetrieve_None(t *testing.T) {
	files, err := testRetriever(nil).Retrieve(context.Background(), Ref{Kind: KindNone}, t.TempDir(), "p")
	assert.NoError(t, err)
	assert.Empty(t, files)
}

type stubDelegate struct {
	path string
}

func (s *stubDelegate) Fetch(ctx context.Context, rawURL, destDir, baseName string) string {
	return s.path
}

func TestRetrieve_ExternalDelegate(t *testing.T) {
	dir := t.TempDir()

	r := testRetriever(&stubDelegate{path: filepath.Join(dir, "p1.mkv")})
	files, err := r.Retrieve(context.Background(), Ref{Kind: KindExternal, URL: "https://youtu.be/abc"}, dir, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "p1.mkv")}, files)

	r = testRetriever(&stubDelegate{})
	files, err = r.Retrieve(context.Background(), Ref{Kind: KindExternal, URL: "https://youtu.be/abc"}, dir, "p1")
	assert.Error(t, err)
	assert.Empty(t, files)
}
