// Package apiclient is a typed HTTP client for the reelsmith API, used by
// the command-line orchestrator and by integration tooling.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/reelsmith/api/internal/model"
	"github.com/reelsmith/api/pkg/response"
)

// APIError is a decoded JSON error envelope from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Client talks to a running reelsmith API server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a client for the server at baseURL. token may be empty when
// the server runs open.
func New(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

// Summarise calls POST /api/summarise.
func (c *Client) Summarise(ctx context.Context, req *model.SummariseRequest) (*model.SummariseResponse, error) {
	var result model.SummariseResponse
	if err := c.postJSON(ctx, "/api/summarise", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateVideo calls POST /api/generate-video.
func (c *Client) GenerateVideo(ctx context.Context, req *model.GenerateVideoRequest) (*model.GenerateVideoResponse, error) {
	var result model.GenerateVideoResponse
	if err := c.postJSON(ctx, "/api/generate-video", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status calls GET /api/status.
func (c *Client) Status(ctx context.Context, renderID string) (*model.StatusResponse, error) {
	endpoint := "/api/status?renderId=" + url.QueryEscape(renderID)
	var result model.StatusResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Upload calls POST /api/upload with a multipart body.
func (c *Client) Upload(ctx context.Context, fileName string, file io.Reader) (*model.UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result model.UploadResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download calls GET /api/download and copies the video stream to w.
func (c *Client) Download(ctx context.Context, videoURL string, w io.Writer) (int64, error) {
	endpoint := c.baseURL + "/api/download?url=" + url.QueryEscape(videoURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeAPIError(resp)
	}

	return io.Copy(w, resp.Body)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result interface{}) error {
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope response.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Code = "HTTP_ERROR"
		apiErr.Message = resp.Status
	}
	return apiErr
}
