package album

import "errors"

// Common errors for the album service.
var (
	// ErrInvalidQuality indicates that the quality name is neither "low" nor "high".
	ErrInvalidQuality = errors.New("invalid quality")
	// ErrInvalidQualityIndex indicates that a track page offers too few download links for the requested quality.
	ErrInvalidQualityIndex = errors.New("invalid quality index")
	// ErrMissingTrackLink indicates a listing entry without a link to its track page.
	ErrMissingTrackLink = errors.New("listing entry has no track link")
	// ErrMissingFileLink indicates a download link that is not wrapped in an anchor with href.
	ErrMissingFileLink = errors.New("download link has no href")
	// ErrInvalidBaseURL indicates that the album URL has no scheme or host to resolve track links against.
	ErrInvalidBaseURL = errors.New("invalid base URL")
	// ErrEmptyFilename indicates a file URL whose last path segment cannot be used as a file name.
	ErrEmptyFilename = errors.New("file URL has no usable file name")
)
