package http

import (
	"net/http"
	"strings"

	"github.com/oshokin/album-grabber/internal/config"
)

// NewTransport builds the RoundTripper chain for the given configuration on top of next.
// Requests are logged at debug level; a User-Agent header is injected only when one is configured,
// otherwise the Go HTTP client default is sent.
func NewTransport(next http.RoundTripper, cfg *config.Config) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	transport := NewLogTransport(next, cfg.ParsedMaxLogLength)

	if userAgent := strings.TrimSpace(cfg.UserAgent); userAgent != "" {
		transport = NewUserAgentInjector(transport, userAgent)
	}

	return transport
}
