package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MediaFetcher defines the interface for fetching remote media bytes.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

// MediaClient fetches rendered video files from the rendering backend's
// storage. The host allow-list check happens in the download service; this
// client only moves bytes.
type MediaClient struct {
	httpClient *http.Client
}

// NewMediaClient creates a new media fetch client.
func NewMediaClient() *MediaClient {
	return &MediaClient{
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Fetch retrieves a remote resource and returns its body stream and
// content length (-1 when unknown). The caller owns the stream.
func (c *MediaClient) Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch media: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, &UpstreamStatusError{
			Service: "media storage",
			Status:  resp.StatusCode,
			Body:    fmt.Sprintf("fetch failed for %s", url),
		}
	}

	return resp.Body, resp.ContentLength, nil
}
