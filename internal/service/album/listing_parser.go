package album

import (
	"bytes"
	"context"
	"fmt"
	"iter"

	"github.com/PuerkitoBio/goquery"

	"github.com/oshokin/album-grabber/internal/logger"
)

const (
	// trackEntrySelector matches one entry of the album listing.
	trackEntrySelector = ".playlistDownloadSong"
	// fileLinkSelector matches one download link on a track page.
	fileLinkSelector = ".songDownloadLink"
)

// ExtractTrackPages parses the album listing and returns the track page URLs in document order.
// Each href is appended to scheme://host of baseURL. The URLs are built while the sequence
// is consumed; an entry without a link yields ErrMissingTrackLink and the consumer is expected to stop.
func ExtractTrackPages(ctx context.Context, html []byte, albumURL string) (iter.Seq2[string, error], error) {
	base, err := baseURL(albumURL)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", err, albumURL)
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse album page: %w", err)
	}

	entries := document.Find(trackEntrySelector)
	logger.Infof(ctx, "found %d songs", entries.Length())

	return func(yield func(string, error) bool) {
		for i := range entries.Length() {
			href, ok := entries.Eq(i).Find("a").First().Attr("href")
			if !ok {
				yield("", fmt.Errorf("%w: entry %d of '%s'", ErrMissingTrackLink, i+1, albumURL))

				return
			}

			trackPageURL := base + href
			logger.Debugf(ctx, "Yielding song page %s", trackPageURL)

			if !yield(trackPageURL, nil) {
				return
			}
		}
	}, nil
}
