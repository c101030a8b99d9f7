package archive

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/oshokin/album-grabber/internal/config"
	"github.com/oshokin/album-grabber/internal/logger"
	http_transport "github.com/oshokin/album-grabber/internal/transport/http"
)

// Client defines the interface for talking to the music archive website.
type Client interface {
	// FetchPage downloads the page at pageURL and returns its whole body.
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
	// FetchFile opens a stream for the file at fileURL.
	FetchFile(ctx context.Context, fileURL string) (*FetchFileResult, error)
}

// ClientImpl implements the Client interface on top of net/http.
type ClientImpl struct {
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
}

// NewClient creates and returns a new instance of ClientImpl.
// The timeout comes from request_timeout; zero keeps the net/http default of no timeout.
func NewClient(cfg *config.Config) Client {
	return NewClientWithTransport(cfg, http.DefaultTransport)
}

// NewClientWithTransport is NewClient with a custom base RoundTripper, mostly for tests.
func NewClientWithTransport(cfg *config.Config, transport http.RoundTripper) Client {
	return &ClientImpl{
		httpClient: &http.Client{
			Transport: http_transport.NewTransport(transport, cfg),
			Timeout:   cfg.ParsedRequestTimeout,
		},
	}
}

// FetchPage downloads the page at pageURL and returns its whole body.
func (c *ClientImpl) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	response, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read page '%s': %w", pageURL, err)
	}

	logger.Debugf(ctx, "Fetched page '%s' (%d bytes)", pageURL, len(body))

	return body, nil
}

// FetchFile opens a stream for the file at fileURL.
func (c *ClientImpl) FetchFile(ctx context.Context, fileURL string) (*FetchFileResult, error) {
	response, err := c.get(ctx, fileURL)
	if err != nil {
		return nil, err
	}

	return &FetchFileResult{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
	}, nil
}

func (c *ClientImpl) get(ctx context.Context, rawURL string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d for '%s'", ErrUnexpectedHTTPStatus, response.StatusCode, rawURL)
	}

	return response, nil
}
