package model

import "time"

// UploadResponse is the reply of POST /api/upload.
type UploadResponse struct {
	URL      string    `json:"url"`
	Type     MediaType `json:"type"`
	FileName string    `json:"fileName"`
}

// UploadSignatureResponse is the presigned-upload handshake reply: the
// client PUTs its file directly to URL before ExpiresAt, then uses
// PublicURL as the asset locator.
type UploadSignatureResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
