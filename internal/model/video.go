package model

import "encoding/json"

// BackgroundMedia is an uploaded or user-supplied background asset.
type BackgroundMedia struct {
	URL      string    `json:"url" validate:"required"`
	Type     MediaType `json:"type" validate:"required,oneof=image video"`
	FileName string    `json:"fileName,omitempty"`
}

// BackgroundInput accepts either a bare URL string or a full media object
// in request JSON and normalizes both to BackgroundMedia.
type BackgroundInput struct {
	Media BackgroundMedia
}

func (b *BackgroundInput) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		b.Media = BackgroundMedia{URL: url, Type: MediaTypeImage}
		return nil
	}

	var media BackgroundMedia
	if err := json.Unmarshal(data, &media); err != nil {
		return err
	}
	b.Media = media
	return nil
}

func (b BackgroundInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Media)
}

// BackgroundMusicConfig is an optional music bed mixed under the voiceover.
// Volume is the UI slider value in percent (0-100).
type BackgroundMusicConfig struct {
	URL    string `json:"url" validate:"required"`
	Volume int    `json:"volume" validate:"min=0,max=100"`
}

// GenerateVideoRequest is the body of POST /api/generate-video. Either one
// shared background applied to every scene, or a parallel backgrounds array
// indexed by scene position, may be supplied.
type GenerateVideoRequest struct {
	Scenes          []Scene                `json:"scenes" validate:"required,min=3,max=6,dive"`
	Background      *BackgroundMedia       `json:"background,omitempty"`
	Backgrounds     []BackgroundInput      `json:"backgrounds,omitempty"`
	BackgroundMusic *BackgroundMusicConfig `json:"backgroundMusic,omitempty"`
	Title           string                 `json:"title,omitempty"`
	VoiceID         string                 `json:"voiceId,omitempty"`
}

// GenerateVideoResponse is the reply of POST /api/generate-video. The
// backend may have finished immediately, in which case URL is already set.
type GenerateVideoResponse struct {
	RenderID string       `json:"renderId"`
	Status   RenderStatus `json:"status"`
	URL      string       `json:"url,omitempty"`
}

// StatusResponse is the reply of GET /api/status.
type StatusResponse struct {
	RenderID string       `json:"renderId"`
	Status   RenderStatus `json:"status"`
	URL      string       `json:"url,omitempty"`
	Error    string       `json:"error,omitempty"`
}
