package model

import (
	"encoding/json"
	"testing"
)

func TestBackgroundInput_UnmarshalString(t *testing.T) {
	var req GenerateVideoRequest
	body := `{
		"scenes": [],
		"backgrounds": ["https://pub.example.com/a.jpg", "https://pub.example.com/b.jpg"]
	}`

	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(req.Backgrounds) != 2 {
		t.Fatalf("got %d backgrounds", len(req.Backgrounds))
	}
	if req.Backgrounds[0].Media.URL != "https://pub.example.com/a.jpg" {
		t.Errorf("url %q", req.Backgrounds[0].Media.URL)
	}
	// Bare strings default to image.
	if req.Backgrounds[0].Media.Type != MediaTypeImage {
		t.Errorf("type %q", req.Backgrounds[0].Media.Type)
	}
}

func TestBackgroundInput_UnmarshalObject(t *testing.T) {
	var req GenerateVideoRequest
	body := `{
		"scenes": [],
		"backgrounds": [{"url": "https://pub.example.com/clip.mp4", "type": "video", "fileName": "clip.mp4"}]
	}`

	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	bg := req.Backgrounds[0].Media
	if bg.Type != MediaTypeVideo {
		t.Errorf("type %q", bg.Type)
	}
	if bg.FileName != "clip.mp4" {
		t.Errorf("fileName %q", bg.FileName)
	}
}

func TestSceneCountBounds(t *testing.T) {
	tests := []struct {
		length   SummaryLength
		min, max int
	}{
		{SummaryShort, 3, 3},
		{SummaryMedium, 4, 5},
		{SummaryLong, 5, 6},
		{SummaryLength("weird"), 3, 6},
	}

	for _, tt := range tests {
		min, max := tt.length.SceneCountBounds()
		if min != tt.min || max != tt.max {
			t.Errorf("%q: got %d..%d, want %d..%d", tt.length, min, max, tt.min, tt.max)
		}
	}
}

func TestNormalizeRenderStatus(t *testing.T) {
	if got := NormalizeRenderStatus("succeeded"); got != RenderStatusSucceeded {
		t.Errorf("got %q", got)
	}
	if got := NormalizeRenderStatus("transcribing"); got != RenderStatusRendering {
		t.Errorf("unknown status: got %q, want rendering", got)
	}
	if got := NormalizeRenderStatus(""); got != RenderStatusRendering {
		t.Errorf("empty status: got %q, want rendering", got)
	}
}
