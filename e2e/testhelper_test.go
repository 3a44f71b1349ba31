package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/reelsmith/api/internal/auth"
	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/handler"
	"github.com/reelsmith/api/internal/middleware"
	"github.com/reelsmith/api/internal/service"
)

const testJWTSecret = "test-secret-for-e2e"

// mockScenesJSON is what the mock summarisation backend replies with.
const mockScenesJSON = `{
	"scenes": [
		{"id": 1, "heading": "Top Story", "bulletPoints": ["First", "Second"], "voiceoverText": "The top story of the week."},
		{"id": 2, "heading": "Also News", "bulletPoints": ["Third"], "voiceoverText": "In other news."},
		{"id": 3, "heading": "Closing Out", "bulletPoints": ["Done"], "voiceoverText": "That is a wrap."}
	]
}`

// testApp holds all components needed for testing, plus knobs on the mock
// upstream backends.
type testApp struct {
	app *fiber.App

	mu             sync.Mutex
	anthropicReply string
	renderStatus   string
	renderURL      string
}

func (ta *testApp) setAnthropicReply(s string) {
	ta.mu.Lock()
	ta.anthropicReply = s
	ta.mu.Unlock()
}

func (ta *testApp) setRenderState(status, url string) {
	ta.mu.Lock()
	ta.renderStatus = status
	ta.renderURL = url
	ta.mu.Unlock()
}

// fakeStorage is an in-memory stand-in for the R2 client.
type fakeStorage struct{}

func (fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return "https://pub.example.com/" + key, nil
}

func (fakeStorage) Delete(ctx context.Context, key string) error { return nil }

func (fakeStorage) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?signature=test", nil
}

func (fakeStorage) GetPublicURL(key string) string {
	return "https://pub.example.com/" + key
}

// setupApp creates a Fiber app identical to main.go, with httptest servers
// standing in for the summarisation and rendering backends.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	ta := &testApp{
		anthropicReply: mockScenesJSON,
		renderStatus:   "planned",
	}

	// Mock Messages API
	anthropicSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		ta.mu.Lock()
		reply := ta.anthropicReply
		ta.mu.Unlock()

		resp := map[string]interface{}{
			"id":      "msg_test",
			"type":    "message",
			"role":    "assistant",
			"content": []map[string]string{{"type": "text", "text": reply}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(anthropicSrv.Close)

	// Mock rendering backend
	creatomateSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/renders":
			// Batch-array reply shape
			json.NewEncoder(w).Encode([]map[string]string{
				{"id": "render-test-1", "status": "planned"},
			})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/renders/"):
			ta.mu.Lock()
			status, url := ta.renderStatus, ta.renderURL
			ta.mu.Unlock()
			json.NewEncoder(w).Encode(map[string]string{
				"id":     strings.TrimPrefix(r.URL.Path, "/renders/"),
				"status": status,
				"url":    url,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(creatomateSrv.Close)

	// Redis on an unused port; the rate limiter allows everything when it
	// cannot reach Redis.
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:1"})

	validate := validator.New()

	anthropicClient := client.NewAnthropicClient(&config.AnthropicConfig{
		APIKey:    "test-key",
		BaseURL:   anthropicSrv.URL,
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 2048,
	})
	creatomateClient := client.NewCreatomateClient(&config.CreatomateConfig{
		APIKey:  "test-key",
		BaseURL: creatomateSrv.URL,
	})
	mediaClient := client.NewMediaClient()

	summariseService := service.NewSummariseService(anthropicClient)
	videoService := service.NewVideoService(creatomateClient)
	uploadService := service.NewUploadService(fakeStorage{})
	// Local hosts stand in for the media-storage allow-list.
	downloadService := service.NewDownloadService(mediaClient, []string{"127.0.0.1", "localhost"})

	summariseHandler := handler.NewSummariseHandler(summariseService, validate)
	videoHandler := handler.NewVideoHandler(videoService, validate)
	uploadHandler := handler.NewUploadHandler(uploadService, validate)
	downloadHandler := handler.NewDownloadHandler(downloadService)

	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New(fiber.Config{
		BodyLimit: service.MaxUploadSize + 2*1024*1024,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"anthropic":  true,
				"creatomate": true,
				"r2":         true,
				"auth":       true,
			},
		})
	})

	api := app.Group("/api", authMiddleware.Authenticate())

	// Very high rate limits so tests don't get blocked
	api.Post("/summarise", rateLimiter.SummariseLimit(10000), summariseHandler.Summarise)
	api.Post("/generate-video", rateLimiter.GenerateLimit(10000), videoHandler.Generate)
	api.Get("/status", rateLimiter.StatusLimit(10000), videoHandler.Status)
	api.Get("/voices", videoHandler.Voices)
	api.Post("/upload", rateLimiter.UploadLimit(10000), uploadHandler.Upload)
	api.Post("/upload-signature", rateLimiter.UploadLimit(10000), uploadHandler.Signature)
	api.Get("/download", rateLimiter.DownloadLimit(10000), downloadHandler.Download)

	ta.app = app
	return ta
}

// generateToken creates an HMAC JWT token for test requests.
func generateToken(t *testing.T) string {
	t.Helper()
	signed, err := auth.GenerateToken("test-user-123", "test@example.com", testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return signed
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs an authenticated request.
func doAuthRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, error) {
	t.Helper()
	token := generateToken(t)
	return doRequest(app, method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// assertErrorCode checks the JSON error envelope's code field.
func assertErrorCode(t *testing.T, resp *http.Response, code string) {
	t.Helper()
	result := parseJSON(t, resp)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %s, got %v", code, errObj["code"])
	}
}
