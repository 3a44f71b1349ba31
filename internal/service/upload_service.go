package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/model"
)

// MaxUploadSize is the upload relay's file size ceiling.
const MaxUploadSize = 50 * 1024 * 1024 // 50 MiB

// presignExpiry bounds the presigned-upload handshake window.
const presignExpiry = 15 * time.Minute

var allowedImageTypes = map[string]bool{
	"image/jpeg": true, "image/png": true, "image/gif": true,
	"image/webp": true, "image/jpg": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4": true, "video/webm": true, "video/quicktime": true,
	"video/x-m4v": true, "video/mpeg": true,
}

var allowedAudioTypes = map[string]bool{
	"audio/mpeg": true, "audio/mp3": true, "audio/wav": true,
	"audio/x-wav": true, "audio/aac": true, "audio/mp4": true,
	"audio/ogg": true, "audio/x-m4a": true, "audio/m4a": true,
	"audio/webm": true,
	// Browsers fall back to this when they cannot detect the type; the
	// extension check decides then.
	"application/octet-stream": false,
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedVideoExts = map[string]bool{
	".mp4": true, ".webm": true, ".mov": true, ".m4v": true,
}

var allowedAudioExts = map[string]bool{
	".mp3": true, ".wav": true, ".aac": true, ".m4a": true, ".ogg": true,
}

// FileUploader defines the interface for the upload relay.
type FileUploader interface {
	Upload(ctx context.Context, fileName, contentType string, body io.Reader) (*model.UploadResponse, error)
	PresignUpload(ctx context.Context, fileName, contentType string) (*model.UploadSignatureResponse, error)
}

// UploadService validates and forwards media files to hosted storage.
type UploadService struct {
	storage client.StorageClient
}

// NewUploadService creates a new upload service.
func NewUploadService(storage client.StorageClient) *UploadService {
	return &UploadService{storage: storage}
}

// Upload streams a validated file to storage and returns its public URL.
// Size enforcement happens at the handler, which knows the multipart
// header.
func (s *UploadService) Upload(ctx context.Context, fileName, contentType string, body io.Reader) (*model.UploadResponse, error) {
	mediaType, ok := DetectMediaType(contentType, fileName)
	if !ok {
		return nil, invalidInput("Invalid file type. Allowed: JPG, PNG, GIF, WebP, MP4, WebM, MOV, MP3, WAV, AAC")
	}

	if s.storage == nil {
		return nil, fmt.Errorf("storage backend: %w", ErrNotConfigured)
	}

	key := storageKey(mediaType, fileName)
	url, err := s.storage.Upload(ctx, key, body, canonicalContentType(contentType, mediaType))
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &model.UploadResponse{
		URL:      url,
		Type:     mediaType,
		FileName: fileName,
	}, nil
}

// PresignUpload issues the presigned-upload handshake: a time-boxed URL
// the client PUTs the file to directly, plus the public URL the stored
// object will have.
func (s *UploadService) PresignUpload(ctx context.Context, fileName, contentType string) (*model.UploadSignatureResponse, error) {
	mediaType, ok := DetectMediaType(contentType, fileName)
	if !ok {
		return nil, invalidInput("Invalid file type. Allowed: JPG, PNG, GIF, WebP, MP4, WebM, MOV, MP3, WAV, AAC")
	}

	if s.storage == nil {
		return nil, fmt.Errorf("storage backend: %w", ErrNotConfigured)
	}

	key := storageKey(mediaType, fileName)
	url, err := s.storage.PresignUpload(ctx, key, canonicalContentType(contentType, mediaType), presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload signature: %w", err)
	}

	return &model.UploadSignatureResponse{
		URL:       url,
		Key:       key,
		PublicURL: s.storage.GetPublicURL(key),
		ExpiresAt: time.Now().Add(presignExpiry),
	}, nil
}

// DetectMediaType classifies a file by its declared content type, falling
// back to the file-name extension when the type is missing or generic.
func DetectMediaType(contentType, fileName string) (model.MediaType, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case allowedImageTypes[contentType] || allowedImageExts[ext]:
		return model.MediaTypeImage, true
	case allowedVideoTypes[contentType] || allowedVideoExts[ext]:
		return model.MediaTypeVideo, true
	case allowedAudioTypes[contentType] || allowedAudioExts[ext]:
		return model.MediaTypeAudio, true
	}
	return "", false
}

func storageKey(mediaType model.MediaType, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("reels/%s/%s%s", mediaType, uuid.New().String(), ext)
}

// canonicalContentType substitutes a concrete type when the browser sent
// none or the generic octet-stream fallback.
func canonicalContentType(contentType string, mediaType model.MediaType) string {
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	switch mediaType {
	case model.MediaTypeImage:
		return "image/jpeg"
	case model.MediaTypeVideo:
		return "video/mp4"
	default:
		return "audio/mpeg"
	}
}
