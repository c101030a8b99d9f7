package archive

import "io"

// FetchFileResult is an open download stream.
type FetchFileResult struct {
	// Body is the response body; the caller must close it.
	Body io.ReadCloser
	// TotalBytes is the Content-Length, or -1 when the server did not send one.
	TotalBytes int64
}
