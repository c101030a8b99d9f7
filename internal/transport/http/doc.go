// Package http provides the RoundTripper chain used by the archive client:
// debug-level request/response dumps and optional User-Agent injection.
package http
