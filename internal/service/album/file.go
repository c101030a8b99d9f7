package album

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/album-grabber/internal/constants"
	"github.com/oshokin/album-grabber/internal/logger"
	"github.com/oshokin/album-grabber/internal/utils"
)

// FilenameFromURL returns the decoded last path segment of fileURL.
// "%XX" escapes and "+" are decoded, a "%" that starts no escape is kept as is.
// Path separators are replaced so the name always stays a single path element.
func FilenameFromURL(fileURL string) (string, error) {
	parsedURL, err := url.Parse(repairPercentEscapes(fileURL))
	if err != nil {
		return "", fmt.Errorf("failed to parse file URL '%s': %w", fileURL, err)
	}

	segment := lastSegment(parsedURL.EscapedPath())

	filename, err := url.QueryUnescape(segment)
	if err != nil {
		return "", fmt.Errorf("failed to decode file name '%s': %w", segment, err)
	}

	filename = utils.ReplacePathSeparators(filename)
	if filename == "" || filename == "." || filename == ".." {
		return "", fmt.Errorf("%w: '%s'", ErrEmptyFilename, fileURL)
	}

	return filename, nil
}

// downloadFile streams fileURL into destinationFolder, replacing any file with the same name.
// A partially written file is left in place if the transfer fails.
func (s *ServiceImpl) downloadFile(ctx context.Context, fileURL, destinationFolder string) (*DownloadResult, error) {
	fileURL = repairPercentEscapes(fileURL)

	filename, err := FilenameFromURL(fileURL)
	if err != nil {
		return nil, err
	}

	destinationPath := filepath.Join(destinationFolder, filename)

	if s.cfg.DryRun {
		logger.Infof(ctx, "[DRY-RUN] Would download '%s' to '%s'", fileURL, destinationPath)

		return &DownloadResult{Path: destinationPath}, nil
	}

	logger.Infof(ctx, "Downloading %s", filename)

	fetchResult, err := s.client.FetchFile(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file '%s': %w", fileURL, err)
	}

	defer fetchResult.Body.Close() //nolint:errcheck // Error on close is not critical here.

	f, err := os.OpenFile(filepath.Clean(destinationPath), constants.OverwriteFileFlags, constants.DefaultFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create file '%s': %w", destinationPath, err)
	}

	defer f.Close() //nolint:errcheck // Close error after a successful sync is not interesting.

	// Progress bars are disabled when downloading concurrently to avoid terminal output conflicts.
	var writer io.Writer = f

	if logger.Level() <= zap.InfoLevel && s.cfg.MaxConcurrentDownloads == 1 {
		bar := progressbar.DefaultBytes(fetchResult.TotalBytes, "Downloading")
		writer = io.MultiWriter(f, bar)
	}

	bytesWritten, err := io.Copy(writer, fetchResult.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to write file '%s': %w", destinationPath, err)
	}

	if err = f.Sync(); err != nil {
		return nil, fmt.Errorf("failed to write file '%s': %w", destinationPath, err)
	}

	logger.Infof(ctx, "Saved '%s' (%s)", destinationPath, humanize.Bytes(uint64(bytesWritten))) //nolint:gosec // io.Copy never returns a negative count.

	return &DownloadResult{
		Path:  destinationPath,
		Bytes: bytesWritten,
	}, nil
}
