package app

import (
	"context"

	"github.com/oshokin/album-grabber/internal/config"
	"github.com/oshokin/album-grabber/internal/logger"
)

// ExecuteConfigInitCommand writes the default configuration to path.
func ExecuteConfigInitCommand(ctx context.Context, path string) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		logger.Fatalf(ctx, "Failed to write default configuration: %v", err)
	}

	logger.Infof(ctx, "Default configuration written to '%s'", path)
}
