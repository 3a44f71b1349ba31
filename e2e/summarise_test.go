package e2e

import (
	"net/http"
	"testing"
)

func TestSummarise_Success(t *testing.T) {
	ta := setupApp(t)

	body := `{
		"newsletterText": "This week in tech: a big launch and two acquisitions.",
		"summaryLength": "medium"
	}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/summarise", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	scenes, ok := result["scenes"].([]interface{})
	if !ok {
		t.Fatal("expected 'scenes' to be an array")
	}
	if len(scenes) != 3 {
		t.Errorf("expected 3 scenes, got %d", len(scenes))
	}

	first, ok := scenes[0].(map[string]interface{})
	if !ok {
		t.Fatal("scene[0] is not an object")
	}
	if first["heading"] != "Top Story" {
		t.Errorf("unexpected heading: %v", first["heading"])
	}
	if _, ok := first["voiceoverText"].(string); !ok {
		t.Error("scene missing voiceoverText")
	}
}

func TestSummarise_NoAuth(t *testing.T) {
	ta := setupApp(t)

	body := `{"newsletterText": "content", "summaryLength": "short"}`

	resp, err := doRequest(ta.app, http.MethodPost, "/api/summarise", body, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusUnauthorized)
	assertErrorCode(t, resp, "UNAUTHORIZED")
}

func TestSummarise_MissingText(t *testing.T) {
	ta := setupApp(t)

	body := `{"summaryLength": "short"}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/summarise", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestSummarise_WhitespaceText(t *testing.T) {
	ta := setupApp(t)

	body := `{"newsletterText": "   \n\t  ", "summaryLength": "short"}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/summarise", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestSummarise_InvalidLength(t *testing.T) {
	ta := setupApp(t)

	body := `{"newsletterText": "content", "summaryLength": "gigantic"}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/summarise", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestSummarise_UnparseableBackendReply(t *testing.T) {
	ta := setupApp(t)
	ta.setAnthropicReply("I am sorry, I cannot help with that.")

	body := `{"newsletterText": "content", "summaryLength": "short"}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/summarise", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusInternalServerError)
	assertErrorCode(t, resp, "UPSTREAM_PARSE_ERROR")
}

func TestSummarise_MarkdownWrappedBackendReply(t *testing.T) {
	ta := setupApp(t)
	ta.setAnthropicReply("Here you go:\n```json\n" + mockScenesJSON + "\n```")

	body := `{"newsletterText": "content", "summaryLength": "short"}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/summarise", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)
}
