package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/model"
)

// Output encoding parameters for every render job.
const (
	outputFormat = "mp4"
	outputWidth  = 1080
	outputHeight = 1920
	outputFPS    = 30
)

// scenePalette provides the fallback solid background colors, picked by
// sceneIndex mod 4 when no background media is supplied.
var scenePalette = [4]string{"#1a1a2e", "#16213e", "#0f3460", "#1a1a2e"}

// musicTrack is the audio track the background music bed occupies; scene
// compositions all live on track 1.
const musicTrack = 2

// VideoGenerator defines the interface for the render-request and status
// relays.
type VideoGenerator interface {
	GenerateVideo(ctx context.Context, req *model.GenerateVideoRequest, origin string) (*model.GenerateVideoResponse, error)
	GetStatus(ctx context.Context, renderID string) (*model.StatusResponse, error)
}

// VideoService maps scene lists onto composition documents and relays them
// to the rendering backend.
type VideoService struct {
	renderer client.VideoRenderer
}

// NewVideoService creates a new video service.
func NewVideoService(renderer client.VideoRenderer) *VideoService {
	return &VideoService{renderer: renderer}
}

// GenerateVideo validates the scene list, assembles one composition per
// scene plus an optional music layer, and submits the document. origin is
// the inbound request's own scheme://host, used to absolutize site-relative
// media URLs the rendering backend could not resolve.
func (s *VideoService) GenerateVideo(ctx context.Context, req *model.GenerateVideoRequest, origin string) (*model.GenerateVideoResponse, error) {
	if len(req.Scenes) == 0 {
		return nil, invalidInput("Scenes are required")
	}
	if len(req.Scenes) < model.MinScenes || len(req.Scenes) > model.MaxScenes {
		return nil, invalidInput("Must have between %d and %d scenes", model.MinScenes, model.MaxScenes)
	}

	if s.renderer == nil {
		return nil, fmt.Errorf("rendering backend: %w", ErrNotConfigured)
	}
	if configured, ok := s.renderer.(interface{ IsConfigured() bool }); ok && !configured.IsConfigured() {
		return nil, fmt.Errorf("rendering backend: %w", ErrNotConfigured)
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = model.DefaultVoiceID
	}

	elements := make([]client.Element, 0, len(req.Scenes)+1)
	for i, scene := range req.Scenes {
		bg := backgroundForScene(req, i)
		if bg != nil {
			bg.URL = absolutizeURL(origin, bg.URL)
		}
		elements = append(elements, buildSceneComposition(scene, i, bg, voiceID))
	}

	if req.BackgroundMusic != nil && req.BackgroundMusic.URL != "" {
		music := *req.BackgroundMusic
		music.URL = absolutizeURL(origin, music.URL)
		elements = append(elements, buildMusicElement(&music))
	}

	source := &client.RenderSource{
		OutputFormat: outputFormat,
		Width:        outputWidth,
		Height:       outputHeight,
		FrameRate:    outputFPS,
		Elements:     elements,
	}

	render, err := s.renderer.CreateRender(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}

	return &model.GenerateVideoResponse{
		RenderID: render.ID,
		Status:   model.NormalizeRenderStatus(render.Status),
		URL:      render.URL,
	}, nil
}

// GetStatus performs one fresh lookup against the rendering backend. No
// retries, no caching.
func (s *VideoService) GetStatus(ctx context.Context, renderID string) (*model.StatusResponse, error) {
	if strings.TrimSpace(renderID) == "" {
		return nil, invalidInput("renderId is required")
	}

	if s.renderer == nil {
		return nil, fmt.Errorf("rendering backend: %w", ErrNotConfigured)
	}

	render, err := s.renderer.GetRender(ctx, renderID)
	if err != nil {
		return nil, fmt.Errorf("status lookup failed: %w", err)
	}

	return &model.StatusResponse{
		RenderID: render.ID,
		Status:   model.NormalizeRenderStatus(render.Status),
		URL:      render.URL,
		Error:    render.ErrorMessage,
	}, nil
}

// backgroundForScene resolves the background asset for a scene position:
// the per-scene array wins, else the shared background, else nil. The
// returned value is a copy safe to mutate.
func backgroundForScene(req *model.GenerateVideoRequest, index int) *model.BackgroundMedia {
	if len(req.Backgrounds) > 0 {
		if index < len(req.Backgrounds) && req.Backgrounds[index].Media.URL != "" {
			media := req.Backgrounds[index].Media
			return &media
		}
		return nil
	}
	if req.Background != nil && req.Background.URL != "" {
		media := *req.Background
		return &media
	}
	return nil
}

// buildSceneComposition assembles the layer stack for one scene: a
// full-bleed background, the heading, the bullet list and the synthesized
// voiceover.
func buildSceneComposition(scene model.Scene, sceneIndex int, bg *model.BackgroundMedia, voiceID string) client.Element {
	elements := make([]client.Element, 0, 4)

	if bg != nil {
		mediaType := "image"
		if bg.Type == model.MediaTypeVideo {
			mediaType = "video"
		}
		elements = append(elements, client.Element{
			Type:   mediaType,
			Source: bg.URL,
			Fit:    "cover",
		})
	} else {
		elements = append(elements, client.Element{
			Type:      "shape",
			Path:      "M 0 0 L 100 0 L 100 100 L 0 100 Z",
			FillColor: scenePalette[sceneIndex%len(scenePalette)],
		})
	}

	elements = append(elements, client.Element{
		Type:          "text",
		Text:          scene.Heading,
		FontFamily:    "Inter",
		FontWeight:    "700",
		FontSize:      "8 vmin",
		FillColor:     "#ffffff",
		X:             "50%",
		Y:             "15%",
		Width:         "90%",
		XAlignment:    "50%",
		YAlignment:    "50%",
		TextAlignment: "center",
		ShadowColor:   "rgba(0,0,0,0.5)",
		ShadowBlur:    "2 vmin",
		Enter:         &client.Animation{Type: "text-slide", Direction: "up", Duration: 0.5},
	})

	bullets := make([]string, len(scene.BulletPoints))
	for i, bp := range scene.BulletPoints {
		bullets[i] = "• " + bp
	}
	elements = append(elements, client.Element{
		Type:          "text",
		Text:          strings.Join(bullets, "\n"),
		FontFamily:    "Inter",
		FontWeight:    "400",
		FontSize:      "4.5 vmin",
		LineHeight:    "180%",
		FillColor:     "#ffffff",
		X:             "50%",
		Y:             "50%",
		Width:         "85%",
		XAlignment:    "50%",
		YAlignment:    "50%",
		TextAlignment: "left",
		ShadowColor:   "rgba(0,0,0,0.5)",
		ShadowBlur:    "1 vmin",
		Enter:         &client.Animation{Type: "text-appear", Duration: 0.8},
	})

	elements = append(elements, client.Element{
		Type: "audio",
		Source: client.SpeechSource{
			Provider: "elevenlabs",
			VoiceID:  voiceID,
			Text:     scene.VoiceoverText,
		},
	})

	// Duration is left unset so the backend sizes each scene to its
	// voiceover.
	return client.Element{
		Type:     "composition",
		Track:    1,
		Elements: elements,
	}
}

// buildMusicElement produces the music bed layer: its own track, looped to
// the job's full duration, volume rescaled from the UI's 0-100 slider into
// the backend's percent string.
func buildMusicElement(music *model.BackgroundMusicConfig) client.Element {
	return client.Element{
		Type:   "audio",
		Track:  musicTrack,
		Source: music.URL,
		Loop:   true,
		Volume: formatVolume(music.Volume),
	}
}

func formatVolume(volume int) string {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return fmt.Sprintf("%d%%", volume)
}

// absolutizeURL rewrites site-rooted paths against the inbound request's
// origin. Absolute URLs pass through untouched.
func absolutizeURL(origin, url string) string {
	if origin == "" || !strings.HasPrefix(url, "/") {
		return url
	}
	return strings.TrimSuffix(origin, "/") + url
}
