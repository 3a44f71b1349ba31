package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/reelsmith/api/internal/client"
)

// DownloadResult is a fetched video ready to stream back to the client.
type DownloadResult struct {
	Body          io.ReadCloser
	ContentLength int64
	FileName      string
}

// VideoDownloader defines the interface for the download relay.
type VideoDownloader interface {
	Download(ctx context.Context, rawURL string) (*DownloadResult, error)
}

// DownloadService fetches finished renders from the rendering backend's
// storage and re-emits them as attachments. Only exact members of the host
// allow-list may be fetched, which keeps the relay from being used for
// server-side request forgery.
type DownloadService struct {
	fetcher      client.MediaFetcher
	allowedHosts []string
}

// NewDownloadService creates a new download service.
func NewDownloadService(fetcher client.MediaFetcher, allowedHosts []string) *DownloadService {
	return &DownloadService{
		fetcher:      fetcher,
		allowedHosts: allowedHosts,
	}
}

// Download validates the URL's host against the allow-list and retrieves
// the resource. The caller owns the returned body.
func (s *DownloadService) Download(ctx context.Context, rawURL string) (*DownloadResult, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, invalidInput("Video URL is required")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, invalidInput("Invalid video URL")
	}

	if !s.hostAllowed(parsed.Hostname()) {
		return nil, invalidInput("Invalid video URL")
	}

	body, length, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video: %w", err)
	}

	return &DownloadResult{
		Body:          body,
		ContentLength: length,
		FileName:      fmt.Sprintf("newsletter-reel-%d.mp4", time.Now().UnixMilli()),
	}, nil
}

// hostAllowed requires exact hostname membership. Substring matching would
// let evil.com/cdn.creatomate.com through.
func (s *DownloadService) hostAllowed(host string) bool {
	for _, allowed := range s.allowedHosts {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}
