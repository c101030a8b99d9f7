package http

import (
	"net/http"
)

// UserAgentInjector sets the configured User-Agent on requests that have none.
type UserAgentInjector struct {
	next      http.RoundTripper
	userAgent string
}

// NewUserAgentInjector wraps next. An empty userAgent leaves requests as they are.
func NewUserAgentInjector(next http.RoundTripper, userAgent string) http.RoundTripper {
	return &UserAgentInjector{next: next, userAgent: userAgent}
}

// RoundTrip implements http.RoundTripper. The caller's request is never modified.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if t.userAgent == "" || req.UserAgent() != "" {
		return t.next.RoundTrip(req)
	}

	withUserAgent := req.Clone(req.Context())
	withUserAgent.Header.Set("User-Agent", t.userAgent)

	return t.next.RoundTrip(withUserAgent)
}
