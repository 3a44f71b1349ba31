package e2e

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/reelsmith/api/internal/service"
)

// doUpload posts a multipart body with a single "file" part.
func doUpload(t *testing.T, ta *testApp, fileName, contentType string, content []byte) (*http.Response, error) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + fileName + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+generateToken(t))

	return ta.app.Test(req, -1)
}

func TestUpload_Success(t *testing.T) {
	ta := setupApp(t)

	resp, err := doUpload(t, ta, "photo.jpg", "image/jpeg", []byte("jpegbytes"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["type"] != "image" {
		t.Errorf("type: %v", result["type"])
	}
	if result["fileName"] != "photo.jpg" {
		t.Errorf("fileName: %v", result["fileName"])
	}
	url, _ := result["url"].(string)
	if !strings.HasPrefix(url, "https://pub.example.com/reels/image/") {
		t.Errorf("url: %v", url)
	}
}

func TestUpload_NoFile(t *testing.T) {
	ta := setupApp(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("note", "no file here")
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, "/api/upload", &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+generateToken(t))

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestUpload_InvalidType(t *testing.T) {
	ta := setupApp(t)

	resp, err := doUpload(t, ta, "script.sh", "text/x-sh", []byte("#!/bin/sh"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}

func TestUpload_SizeCeiling(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large-body test in short mode")
	}

	ta := setupApp(t)

	// One byte over the ceiling is rejected.
	over := make([]byte, service.MaxUploadSize+1)
	resp, err := doUpload(t, ta, "big.mp4", "video/mp4", over)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusRequestEntityTooLarge)
	assertErrorCode(t, resp, "PAYLOAD_TOO_LARGE")
}

func TestUpload_ExactlyAtCeiling(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large-body test in short mode")
	}

	ta := setupApp(t)

	exact := make([]byte, service.MaxUploadSize)
	resp, err := doUpload(t, ta, "big.mp4", "video/mp4", exact)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)
}

func TestUploadSignature_Success(t *testing.T) {
	ta := setupApp(t)

	body := `{"fileName": "photo.png", "contentType": "image/png"}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/upload-signature", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	url, _ := result["url"].(string)
	if !strings.Contains(url, "signature=") {
		t.Errorf("url: %v", url)
	}
	key, _ := result["key"].(string)
	if !strings.HasPrefix(key, "reels/image/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("key: %v", key)
	}
	if result["publicUrl"] != "https://pub.example.com/"+key {
		t.Errorf("publicUrl: %v", result["publicUrl"])
	}
}

func TestUploadSignature_MissingFileName(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/upload-signature", `{"contentType": "image/png"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	assertErrorCode(t, resp, "INVALID_INPUT")
}
