// Command reel runs the full newsletter-to-video pipeline against a
// running API server: summarise the newsletter, request a render, poll
// until it finishes and download the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/reelsmith/api/internal/model"
	"github.com/reelsmith/api/internal/orchestrator"
	"github.com/reelsmith/api/pkg/apiclient"
)

func main() {
	var (
		serverURL   = flag.String("server", "http://localhost:8080", "API server base URL")
		token       = flag.String("token", "", "bearer token, if the server requires auth")
		inputPath   = flag.String("input", "", "path to the newsletter text file (required)")
		length      = flag.String("length", "medium", "summary length: short, medium or long")
		tone        = flag.String("tone", "", "voiceover tone, e.g. Professional or Savage")
		title       = flag.String("title", "", "intro title card text")
		voiceID     = flag.String("voice", "", "ElevenLabs voice ID (defaults to Rachel)")
		background  = flag.String("background", "", "background image or video to upload and use for all scenes")
		music       = flag.String("music", "", "background music URL")
		musicVolume = flag.Int("music-volume", 50, "background music volume, 0 to 100")
		outputPath  = flag.String("output", "", "where to write the video (default newsletter-reel-<renderId>.mp4)")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	text, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inputPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := apiclient.New(*serverURL, *token)

	input := orchestrator.Input{
		NewsletterText: string(text),
		SummaryLength:  model.SummaryLength(*length),
		Tone:           *tone,
		Title:          *title,
		VoiceID:        *voiceID,
	}

	if *background != "" {
		media, err := uploadBackground(ctx, client, *background)
		if err != nil {
			log.Fatalf("Failed to upload background: %v", err)
		}
		log.Printf("Uploaded background: %s", media.URL)
		input.Background = media
	}

	if *music != "" {
		input.BackgroundMusic = &model.BackgroundMusicConfig{
			URL:    *music,
			Volume: *musicVolume,
		}
	}

	orch := orchestrator.New(client, orchestrator.WithTransitionHook(func(s orchestrator.State) {
		log.Printf("State: %s", s)
	}))

	videoURL, err := orch.Run(ctx, input)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Printf("Render %s finished: %s", orch.RenderID(), videoURL)

	dest := *outputPath
	if dest == "" {
		dest = fmt.Sprintf("newsletter-reel-%s.mp4", orch.RenderID())
	}

	if err := downloadVideo(ctx, client, videoURL, dest); err != nil {
		log.Fatalf("Failed to download video: %v", err)
	}
	log.Printf("Saved %s", dest)
}

func uploadBackground(ctx context.Context, client *apiclient.Client, path string) (*model.BackgroundMedia, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := client.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}

	mediaType := model.MediaTypeImage
	if result.Type == model.MediaTypeVideo {
		mediaType = model.MediaTypeVideo
	}

	return &model.BackgroundMedia{URL: result.URL, Type: mediaType}, nil
}

func downloadVideo(ctx context.Context, client *apiclient.Client, videoURL, dest string) error {
	tmp := dest + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := client.Download(ctx, videoURL, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -input newsletter.txt [options]\n\nOptions:\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nSummary lengths: "+joinLengths())
	}
}

func joinLengths() string {
	parts := make([]string, len(model.ValidSummaryLengths))
	for i, l := range model.ValidSummaryLengths {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
