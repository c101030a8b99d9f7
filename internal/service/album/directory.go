package album

import (
	"context"
	"os"

	"github.com/oshokin/album-grabber/internal/constants"
	"github.com/oshokin/album-grabber/internal/logger"
	"github.com/oshokin/album-grabber/internal/utils"
)

// ensureDirectory creates the album folder. Failures are logged and the run goes on.
func (s *ServiceImpl) ensureDirectory(ctx context.Context, path string) {
	exists, err := utils.IsPathExist(path)
	if err != nil {
		logger.Errorf(ctx, "Failed to create directory '%s'. Error: %v", path, err)

		return
	}

	if exists {
		logger.Warnf(ctx, "Directory '%s' already exists.", path)

		return
	}

	if s.cfg.DryRun {
		logger.Infof(ctx, "[DRY-RUN] Would create directory '%s'", path)

		return
	}

	if err = os.MkdirAll(path, constants.DefaultFolderPermissions); err != nil {
		logger.Errorf(ctx, "Failed to create directory '%s'. Error: %v", path, err)

		return
	}

	logger.Infof(ctx, "Directory '%s' created successfully.", path)
}
