package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/reelsmith/api/internal/config"
)

// VideoRenderer defines the interface for render backend operations.
type VideoRenderer interface {
	CreateRender(ctx context.Context, source *RenderSource) (*RenderResponse, error)
	GetRender(ctx context.Context, renderID string) (*RenderResponse, error)
}

// CreatomateClient implements VideoRenderer for the Creatomate API.
type CreatomateClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// RenderSource is the declarative composition document submitted to the
// rendering backend.
type RenderSource struct {
	OutputFormat string    `json:"output_format"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	FrameRate    int       `json:"frame_rate"`
	Elements     []Element `json:"elements"`
}

// Element is one layer of a composition. The field set is the union of the
// layer kinds the backend accepts; zero values are omitted on the wire.
type Element struct {
	Type          string      `json:"type"`
	Track         int         `json:"track,omitempty"`
	Elements      []Element   `json:"elements,omitempty"`
	Source        interface{} `json:"source,omitempty"`
	Fit           string      `json:"fit,omitempty"`
	Path          string      `json:"path,omitempty"`
	FillColor     string      `json:"fill_color,omitempty"`
	Text          string      `json:"text,omitempty"`
	FontFamily    string      `json:"font_family,omitempty"`
	FontWeight    string      `json:"font_weight,omitempty"`
	FontSize      string      `json:"font_size,omitempty"`
	LineHeight    string      `json:"line_height,omitempty"`
	X             string      `json:"x,omitempty"`
	Y             string      `json:"y,omitempty"`
	Width         string      `json:"width,omitempty"`
	XAlignment    string      `json:"x_alignment,omitempty"`
	YAlignment    string      `json:"y_alignment,omitempty"`
	TextAlignment string      `json:"text_alignment,omitempty"`
	ShadowColor   string      `json:"shadow_color,omitempty"`
	ShadowBlur    string      `json:"shadow_blur,omitempty"`
	Enter         *Animation  `json:"enter,omitempty"`
	Loop          bool        `json:"loop,omitempty"`
	Volume        string      `json:"volume,omitempty"`
}

// Animation is an enter/exit transition on a layer.
type Animation struct {
	Type      string  `json:"type"`
	Direction string  `json:"direction,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
}

// SpeechSource is a synthesized-speech audio source rendered through an
// ElevenLabs voice identity.
type SpeechSource struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voice_id"`
	Text     string `json:"text"`
}

// RenderResponse is the backend's view of a render job.
type RenderResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	URL          string `json:"url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewCreatomateClient creates a new Creatomate API client.
func NewCreatomateClient(cfg *config.CreatomateConfig) *CreatomateClient {
	return &CreatomateClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// CreateRender submits a composition document for rendering. The backend
// answers with either a single render object or a one-element batch array;
// both shapes are accepted.
func (c *CreatomateClient) CreateRender(ctx context.Context, source *RenderSource) (*RenderResponse, error) {
	body := map[string]interface{}{"source": source}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/renders", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	respBody, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	var single RenderResponse
	if err := json.Unmarshal(respBody, &single); err == nil && single.ID != "" {
		return &single, nil
	}

	var batch []RenderResponse
	if err := json.Unmarshal(respBody, &batch); err == nil && len(batch) > 0 {
		return &batch[0], nil
	}

	return nil, fmt.Errorf("failed to unmarshal render response: %s", string(respBody))
}

// GetRender retrieves the current state of a render job.
func (c *CreatomateClient) GetRender(ctx context.Context, renderID string) (*RenderResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/renders/"+renderID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	respBody, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	var render RenderResponse
	if err := json.Unmarshal(respBody, &render); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &render, nil
}

// doRequest executes an HTTP request and returns the raw response body.
func (c *CreatomateClient) doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Printf("[Creatomate API] → %s %s", req.Method, req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Printf("[Creatomate API] ← %d %s %s", resp.StatusCode, req.Method, req.URL.String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamStatusError{
			Service: "creatomate",
			Status:  resp.StatusCode,
			Body:    string(respBody),
		}
	}

	return respBody, nil
}

// IsConfigured returns true if the client has valid configuration.
func (c *CreatomateClient) IsConfigured() bool {
	return c.apiKey != ""
}
