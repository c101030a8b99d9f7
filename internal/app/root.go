package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/album-grabber/internal/client/archive"
	"github.com/oshokin/album-grabber/internal/config"
	"github.com/oshokin/album-grabber/internal/logger"
	"github.com/oshokin/album-grabber/internal/service/album"
)

// ErrInvalidURL indicates that the album URL has no scheme or host.
var ErrInvalidURL = errors.New("not a valid url")

// ExecuteRootCommand is the entry point for the application.
// It validates the album URL, initializes the archive client and downloads the album.
// Any failure, an interrupt included, is fatal and ends the process with exit code 1.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, albumURL string) {
	err := DownloadAlbum(ctx, cfg, albumURL)

	switch {
	case err == nil:
		logger.Info(ctx, "Download process completed")
	case errors.Is(err, ErrInvalidURL):
		logger.Fatal(ctx, err.Error())
	case ctx.Err() != nil:
		// The error of an aborted transfer is not always context.Canceled, so ctx is checked instead.
		logger.Fatalf(ctx, "Download process interrupted: %v", err)
	default:
		logger.Fatalf(ctx, "Failed to download album: %v", err)
	}
}

// DownloadAlbum validates albumURL before any network or disk access and runs the album service.
func DownloadAlbum(ctx context.Context, cfg *config.Config, albumURL string) error {
	if !album.ValidateURL(albumURL) {
		return fmt.Errorf("%w %s, exiting!", ErrInvalidURL, albumURL)
	}

	s, err := album.NewService(cfg, archive.NewClient(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize album service: %w", err)
	}

	if cfg.DryRun {
		logger.Info(ctx, "[DRY-RUN] Links are resolved, nothing is written to disk")
	}

	return s.DownloadAlbum(ctx, albumURL)
}
