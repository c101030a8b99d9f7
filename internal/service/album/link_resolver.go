package album

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/oshokin/album-grabber/internal/logger"
)

// ResolveFileURL returns the href of the anchor around the download link chosen by quality.
func ResolveFileURL(ctx context.Context, html []byte, quality Quality) (string, error) {
	document, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse track page: %w", err)
	}

	links := document.Find(fileLinkSelector)
	variants := links.Length()

	index := quality.Index(variants)
	if index < 0 {
		return "", fmt.Errorf("%w: %s quality needs more than %d download link(s)",
			ErrInvalidQualityIndex, quality, variants)
	}

	href, ok := links.Eq(index).Parent().Attr("href")
	if !ok {
		return "", fmt.Errorf("%w: link %d of %d", ErrMissingFileLink, index+1, variants)
	}

	logger.Debugf(ctx, "Yielding song link %s", href)

	return href, nil
}
