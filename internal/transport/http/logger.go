package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/album-grabber/internal/config"
	"github.com/oshokin/album-grabber/internal/logger"
	"github.com/oshokin/album-grabber/internal/utils"
)

// ErrNilRequest indicates that the HTTP request is nil.
var ErrNilRequest = errors.New("request is nil")

// LogTransport writes every HTTP exchange to the debug log.
// Response bodies are included only for text content, so audio streams are never buffered.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the size limit of a single dump in bytes.
	maxLogLength uint64
}

// NewLogTransport wraps next. A zero maxLogLength means config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	fields := []any{
		"method", req.Method,
		"url", req.URL.String(),
		"request", t.format(httputil.DumpRequestOut(req, false)),
	}

	startedAt := time.Now()
	resp, err := t.next.RoundTrip(req)
	fields = append(fields, "elapsed", time.Since(startedAt))

	if err != nil {
		logger.DebugKV(req.Context(), "HTTP request failed", append(fields, "error", err)...)

		return nil, err
	}

	withBody := utils.IsTextContentType(resp.Header.Get("Content-Type"))
	fields = append(fields,
		"status", resp.StatusCode,
		"response", t.format(httputil.DumpResponse(resp, withBody)))

	logger.DebugKV(req.Context(), "HTTP exchange", fields...)

	return resp, nil
}

// format turns a dump into a log value no longer than maxLogLength plus a short suffix.
func (t *LogTransport) format(dump []byte, err error) string {
	if err != nil {
		return "dump failed: " + err.Error()
	}

	size := uint64(len(dump))
	if size <= t.maxLogLength {
		return string(dump)
	}

	return fmt.Sprintf("%s... [%s more]", dump[:t.maxLogLength], humanize.Bytes(size-t.maxLogLength))
}
