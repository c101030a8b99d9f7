// Package archive provides the HTTP client for the music archive website.
// It fetches HTML pages in full and opens audio files as streams,
// treating any non-2xx answer as an error. There are no retries.
package archive
