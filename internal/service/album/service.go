package album

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/album-grabber/internal/client/archive"
	"github.com/oshokin/album-grabber/internal/config"
	"github.com/oshokin/album-grabber/internal/logger"
)

// Service downloads albums from the music archive.
type Service interface {
	// DownloadAlbum saves every track of the album listed at albumURL.
	// The first failure stops the run and is returned.
	DownloadAlbum(ctx context.Context, albumURL string) error
}

// ServiceImpl implements Service on top of an archive client.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// client fetches pages and files from the archive.
	client archive.Client
	// quality is the parsed cfg.Quality.
	quality Quality
}

// NewService creates an album service. It fails if the configured quality is unknown.
func NewService(cfg *config.Config, client archive.Client) (Service, error) {
	quality, err := ParseQuality(cfg.Quality)
	if err != nil {
		return nil, err
	}

	return &ServiceImpl{
		cfg:     cfg,
		client:  client,
		quality: quality,
	}, nil
}

// DownloadAlbum saves every track of the album listed at albumURL into
// <output path>/<album name>. Tracks are processed one by one unless
// max_concurrent_downloads is above 1.
func (s *ServiceImpl) DownloadAlbum(ctx context.Context, albumURL string) error {
	albumName := ExtractAlbumName(albumURL)
	albumPath := filepath.Join(s.cfg.OutputPath, albumName)

	ctx = logger.WithKV(ctx, "album", albumName)

	s.ensureDirectory(ctx, albumPath)

	page, err := s.client.FetchPage(ctx, albumURL)
	if err != nil {
		return fmt.Errorf("failed to fetch album page: %w", err)
	}

	trackPages, err := ExtractTrackPages(ctx, page, albumURL)
	if err != nil {
		return err
	}

	if s.cfg.MaxConcurrentDownloads > 1 {
		return s.downloadConcurrently(ctx, trackPages, albumPath)
	}

	for trackPageURL, err := range trackPages {
		if err != nil {
			return err
		}

		// Check if context was canceled (CTRL+C pressed) - stop before the next track.
		if err = ctx.Err(); err != nil {
			return err
		}

		if _, err = s.downloadTrack(ctx, trackPageURL, albumPath); err != nil {
			return err
		}
	}

	return nil
}

func (s *ServiceImpl) downloadConcurrently(
	ctx context.Context,
	trackPages iter.Seq2[string, error],
	albumPath string,
) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(int(s.cfg.MaxConcurrentDownloads))

	var listingErr error

	for trackPageURL, err := range trackPages {
		if err != nil {
			listingErr = err

			break
		}

		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			_, downloadErr := s.downloadTrack(groupCtx, trackPageURL, albumPath)

			return downloadErr
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if listingErr != nil {
		return listingErr
	}

	return ctx.Err()
}

// downloadTrack resolves the file link on one track page and saves the file.
func (s *ServiceImpl) downloadTrack(ctx context.Context, trackPageURL, albumPath string) (*DownloadResult, error) {
	page, err := s.client.FetchPage(ctx, trackPageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track page: %w", err)
	}

	fileURL, err := ResolveFileURL(ctx, page, s.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve download link on '%s': %w", trackPageURL, err)
	}

	return s.downloadFile(ctx, fileURL, albumPath)
}
