package album

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/album-grabber/internal/client/archive"
	mock_archive "github.com/oshokin/album-grabber/internal/client/archive/mocks"
	"github.com/oshokin/album-grabber/internal/config"
)

const testAlbumURL = "https://downloads.example.com/album/some-album-name"

// testDownloadSetup encapsulates common test dependencies and configuration.
type testDownloadSetup struct {
	mockClient *mock_archive.MockClient
	service    *ServiceImpl
	config     *config.Config
	tempDir    string
}

// newTestConfig returns a valid config writing into tempDir.
func newTestConfig(t *testing.T, tempDir string, overrides ...func(*config.Config)) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.OutputPath = tempDir

	for _, override := range overrides {
		override(cfg)
	}

	require.NoError(t, config.ValidateConfig(cfg))

	return cfg
}

// newTestDownloadSetup creates a service backed by a gomock client with optional config overrides.
func newTestDownloadSetup(t *testing.T, configOverrides ...func(*config.Config)) *testDownloadSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_archive.NewMockClient(ctrl)
	tempDir := t.TempDir()
	cfg := newTestConfig(t, tempDir, configOverrides...)

	service, err := NewService(cfg, mockClient)
	require.NoError(t, err)

	return &testDownloadSetup{
		mockClient: mockClient,
		service:    service.(*ServiceImpl),
		config:     cfg,
		tempDir:    tempDir,
	}
}

// listingPage renders an album listing with one entry per href.
func listingPage(hrefs ...string) []byte {
	var builder strings.Builder

	builder.WriteString(`<html><body><table id="songlist">`)

	for i, href := range hrefs {
		fmt.Fprintf(&builder,
			`<tr><td class="playlistDownloadSong"><a href="%s"><i class="icon-download"></i></a></td><td>Track %d</td></tr>`,
			href, i+1)
	}

	builder.WriteString(`</table></body></html>`)

	return []byte(builder.String())
}

// trackPage renders a track page with one download link per file URL, lowest quality first.
func trackPage(fileURLs ...string) []byte {
	var builder strings.Builder

	builder.WriteString(`<html><body><div id="pageContent">`)

	for _, fileURL := range fileURLs {
		fmt.Fprintf(&builder, `<p><a href="%s"><span class="songDownloadLink">download</span></a></p>`, fileURL)
	}

	builder.WriteString(`</div></body></html>`)

	return []byte(builder.String())
}

// fetchFileResult wraps content into an archive download stream.
func fetchFileResult(content string) *archive.FetchFileResult {
	return &archive.FetchFileResult{
		Body:       io.NopCloser(strings.NewReader(content)),
		TotalBytes: int64(len(content)),
	}
}

// newArchiveServer starts a fake archive site.
// The album at /album/some-album-name lists trackCount tracks, each offering an MP3 and a FLAC file.
// Files contain their own request path.
func newArchiveServer(t *testing.T, trackCount int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/album/some-album-name", func(w http.ResponseWriter, _ *http.Request) {
		hrefs := make([]string, 0, trackCount)
		for i := range trackCount {
			hrefs = append(hrefs, fmt.Sprintf("/song/%d", i+1))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(listingPage(hrefs...))
	})

	mux.HandleFunc("/song/{number}", func(w http.ResponseWriter, r *http.Request) {
		number := r.PathValue("number")
		base := "http://" + r.Host + "/files/Track%20" + number

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(trackPage(base+".mp3", base+".flac"))
	})

	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = io.WriteString(w, "content of "+r.URL.Path)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}
