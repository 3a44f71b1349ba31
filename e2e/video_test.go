package e2e

import (
	"net/http"
	"testing"
)

const threeScenesBody = `{
	"scenes": [
		{"id": 1, "heading": "One", "bulletPoints": ["a"], "voiceoverText": "one"},
		{"id": 2, "heading": "Two", "bulletPoints": ["b"], "voiceoverText": "two"},
		{"id": 3, "heading": "Three", "bulletPoints": ["c"], "voiceoverText": "three"}
	]
}`

func TestGenerateVideo_Success(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/generate-video", threeScenesBody)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["renderId"] != "render-test-1" {
		t.Errorf("renderId: %v", result["renderId"])
	}
	if result["status"] != "planned" {
		t.Errorf("status: %v", result["status"])
	}
}

func TestGenerateVideo_TooFewScenes(t *testing.T) {
	ta := setupApp(t)

	body := `{
		"scenes": [
			{"id": 1, "heading": "One", "bulletPoints": ["a"], "voiceoverText": "one"},
			{"id": 2, "heading": "Two", "bulletPoints": ["b"], "voiceoverText": "two"}
		]
	}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/generate-video", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestGenerateVideo_MissingScenes(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/generate-video", `{}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestGenerateVideo_StringBackgrounds(t *testing.T) {
	ta := setupApp(t)

	body := `{
		"scenes": [
			{"id": 1, "heading": "One", "bulletPoints": ["a"], "voiceoverText": "one"},
			{"id": 2, "heading": "Two", "bulletPoints": ["b"], "voiceoverText": "two"},
			{"id": 3, "heading": "Three", "bulletPoints": ["c"], "voiceoverText": "three"}
		],
		"backgrounds": ["https://pub.example.com/a.jpg", "https://pub.example.com/b.jpg", "https://pub.example.com/c.jpg"],
		"backgroundMusic": {"url": "https://pub.example.com/track.mp3", "volume": 40}
	}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/generate-video", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)
}

func TestStatus_Succeeded(t *testing.T) {
	ta := setupApp(t)
	ta.setRenderState("succeeded", "https://cdn.creatomate.com/renders/render-test-1.mp4")

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/status?renderId=render-test-1", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["status"] != "succeeded" {
		t.Errorf("status: %v", result["status"])
	}
	if result["url"] != "https://cdn.creatomate.com/renders/render-test-1.mp4" {
		t.Errorf("url: %v", result["url"])
	}
}

func TestStatus_UnknownUpstreamStatus(t *testing.T) {
	ta := setupApp(t)
	ta.setRenderState("transcribing", "")

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/status?renderId=render-test-1", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["status"] != "rendering" {
		t.Errorf("unknown upstream status should read as rendering, got %v", result["status"])
	}
}

func TestStatus_MissingRenderID(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/status", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestVoices(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/voices", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	voices, ok := result["voices"].([]interface{})
	if !ok {
		t.Fatal("expected 'voices' to be an array")
	}
	if len(voices) == 0 {
		t.Error("expected at least one voice")
	}
}
