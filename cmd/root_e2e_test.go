package cmd_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// testBinaryName is the name of the test binary for E2E tests.
	testBinaryName = "album-grabber-test"
)

// TestMain builds the binary before running E2E tests.
func TestMain(m *testing.M) {
	// Build the binary for testing.
	//nolint:noctx // TestMain doesn't have access to context, and build is needed before tests run.
	buildCmd := exec.Command("go", "build", "-o", testBinaryName, "../.")
	if err := buildCmd.Run(); err != nil {
		os.Exit(1)
	}

	// Run tests.
	code := m.Run()

	// Cleanup.
	_ = os.Remove(testBinaryName)

	os.Exit(code)
}

// newArchiveServer starts a fake archive site with a two-track album at /album/e2e-album.
// Files contain their own path unless fileHandler is given.
func newArchiveServer(t *testing.T, fileHandler ...http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/album/e2e-album", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w,
			`<table>`+
				`<tr><td class="playlistDownloadSong"><a href="/song/1">1</a></td></tr>`+
				`<tr><td class="playlistDownloadSong"><a href="/song/2">2</a></td></tr>`+
				`</table>`)
	})
	mux.HandleFunc("/song/{number}", func(w http.ResponseWriter, r *http.Request) {
		base := "http://" + r.Host + "/files/Song%20" + r.PathValue("number")
		_, _ = fmt.Fprintf(w,
			`<a href="%[1]s.mp3"><span class="songDownloadLink">MP3</span></a>`+
				`<a href="%[1]s.flac"><span class="songDownloadLink">FLAC</span></a>`,
			base)
	})
	if len(fileHandler) > 0 {
		mux.HandleFunc("/files/", fileHandler[0])
	} else {
		mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, r.URL.Path)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// runBinary runs the test binary from an empty working directory so no default config is picked up.
func runBinary(t *testing.T, args ...string) (string, error) {
	t.Helper()

	binaryPath, err := filepath.Abs(testBinaryName)
	require.NoError(t, err)

	//nolint:gosec,noctx // Test binary name is a constant, not user input. No context available in test.
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()

	output, err := cmd.CombinedOutput()

	return string(output), err
}

// TestE2E_DownloadAlbum tests a full run against a fake archive site.
func TestE2E_DownloadAlbum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     []string
		extension string
	}{
		{name: "default quality", flags: nil, extension: ".mp3"},
		{name: "high quality", flags: []string{"--quality", "high"}, extension: ".flac"},
		{name: "concurrent", flags: []string{"-j", "2"}, extension: ".mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newArchiveServer(t)
			outputPath := t.TempDir()

			args := append([]string{"-o", outputPath}, tt.flags...)
			args = append(args, server.URL+"/album/e2e-album")

			output, err := runBinary(t, args...)
			require.NoError(t, err, output)
			assert.Contains(t, output, "found 2 songs")

			for _, number := range []string{"1", "2"} {
				filename := "Song " + number + tt.extension

				content, err := os.ReadFile(filepath.Join(outputPath, "e2e album", filename))
				require.NoError(t, err)
				assert.Equal(t, "/files/"+filename, string(content))
			}
		})
	}
}

// TestE2E_Failures tests that invalid input ends with a non-zero exit and a diagnostic.
func TestE2E_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		args             []string
		expectedErrorMsg string
	}{
		{
			name:             "invalid url",
			args:             []string{"not-a-url"},
			expectedErrorMsg: "not a valid url not-a-url, exiting!",
		},
		{
			name:             "invalid quality",
			args:             []string{"--quality", "best", "https://downloads.example.com/album/x"},
			expectedErrorMsg: "invalid quality",
		},
		{
			name:             "invalid jobs",
			args:             []string{"--jobs", "0", "https://downloads.example.com/album/x"},
			expectedErrorMsg: "max concurrent downloads must be a positive integer",
		},
		{
			name:             "missing config file",
			args:             []string{"--config", "missing.yaml", "https://downloads.example.com/album/x"},
			expectedErrorMsg: "failed to load configuration",
		},
		{
			name:             "too many arguments",
			args:             []string{"https://a.example.com/album/x", "https://b.example.com/album/y"},
			expectedErrorMsg: "accepts at most 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output, err := runBinary(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(output), strings.ToLower(tt.expectedErrorMsg),
				"Expected error message about '%s' but got: %s", tt.expectedErrorMsg, output)
		})
	}
}

// TestE2E_NoArgsPrintsHelp tests that running without a URL prints the usage.
func TestE2E_NoArgsPrintsHelp(t *testing.T) {
	t.Parallel()

	output, err := runBinary(t)
	require.NoError(t, err)
	assert.Contains(t, output, "album-grabber [flags] {url}")
	assert.Contains(t, output, "--quality")
}

// TestE2E_ConfigInit tests the config init subcommand.
func TestE2E_ConfigInit(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "album-grabber.yaml")

	output, err := runBinary(t, "config", "init", configPath)
	require.NoError(t, err, output)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "output_path: /downloads")
	assert.Contains(t, string(content), "quality: low")

	output, err = runBinary(t, "config", "init", configPath)
	require.Error(t, err)
	assert.Contains(t, output, "config file already exists")
}

// TestE2E_Interrupt tests that an interrupt during a transfer stops the run with a non-zero exit code
// and that the next track is never started.
func TestE2E_Interrupt(t *testing.T) {
	t.Parallel()

	var (
		transferStarted = make(chan struct{})
		startOnce       sync.Once
	)

	// The first file never finishes: a few bytes, then silence until the client goes away.
	server := newArchiveServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1048576")
		_, _ = w.Write([]byte("first bytes"))

		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		startOnce.Do(func() { close(transferStarted) })

		select {
		case <-r.Context().Done():
		case <-time.After(30 * time.Second):
		}
	})

	binaryPath, err := filepath.Abs(testBinaryName)
	require.NoError(t, err)

	outputPath := t.TempDir()

	var output bytes.Buffer

	//nolint:gosec,noctx // Test binary name is a constant, not user input. The process is signaled by hand.
	cmd := exec.Command(binaryPath, "-o", outputPath, server.URL+"/album/e2e-album")
	cmd.Dir = t.TempDir()
	cmd.Stdout = &output
	cmd.Stderr = &output

	require.NoError(t, cmd.Start())

	select {
	case <-transferStarted:
	case <-time.After(30 * time.Second):
		_ = cmd.Process.Kill()

		t.Fatalf("transfer did not start, output: %s", output.String())
	}

	require.NoError(t, cmd.Process.Signal(os.Interrupt))

	err = cmd.Wait()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, output.String())
	assert.Equal(t, 1, exitErr.ExitCode(), output.String())
	assert.Contains(t, output.String(), "Download process interrupted")
	assert.NoFileExists(t, filepath.Join(outputPath, "e2e album", "Song 2.mp3"))
}
