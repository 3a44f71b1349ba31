package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reelsmith/api/internal/model"
)

// TextCompleter is the slice of the LLM client the summariser needs.
type TextCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
	IsConfigured() bool
}

// Summariser defines the interface for newsletter summarisation.
type Summariser interface {
	Summarise(ctx context.Context, req *model.SummariseRequest) (*model.SummariseResponse, error)
}

// SummariseService turns raw newsletter text into a scene script via the
// text-generation backend.
type SummariseService struct {
	llm TextCompleter
}

// NewSummariseService creates a new summarise service.
func NewSummariseService(llm TextCompleter) *SummariseService {
	return &SummariseService{llm: llm}
}

// Summarise validates the request, builds the prompt for the requested
// length and tone, and parses the backend's JSON reply into scenes.
func (s *SummariseService) Summarise(ctx context.Context, req *model.SummariseRequest) (*model.SummariseResponse, error) {
	text := strings.TrimSpace(req.NewsletterText)
	if text == "" {
		return nil, invalidInput("Newsletter text is required")
	}

	if !validSummaryLength(req.SummaryLength) {
		return nil, invalidInput("Invalid summary length. Must be short, medium, or long")
	}

	if s.llm == nil || !s.llm.IsConfigured() {
		return nil, fmt.Errorf("summarisation backend: %w", ErrNotConfigured)
	}

	tone := req.Tone
	if tone == "" {
		tone = model.DefaultTone
	}

	min, max := req.SummaryLength.SceneCountBounds()
	systemPrompt := buildSummariseSystemPrompt(tone)
	userPrompt := buildSummariseUserPrompt(text, min, max)

	reply, err := s.llm.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("summarisation failed: %w", err)
	}

	scenes, err := parseScenes(reply)
	if err != nil {
		return nil, err
	}

	return &model.SummariseResponse{Scenes: scenes}, nil
}

func validSummaryLength(l model.SummaryLength) bool {
	for _, v := range model.ValidSummaryLengths {
		if l == v {
			return true
		}
	}
	return false
}

func buildSummariseSystemPrompt(tone string) string {
	return fmt.Sprintf(`You are an expert content summarizer specializing in creating engaging video scripts for social media reels. Your task is to transform newsletter content into a series of scenes for a vertical video reel.

Each scene should:
- Have a clear, catchy heading (max 6 words)
- Include 2-3 brief bullet points summarizing key information
- Have voiceover text that sounds natural when spoken (1-2 sentences, max 250 characters)

%s

Output ONLY valid JSON in this exact format, with no additional text:
{
  "scenes": [
    {
      "id": 1,
      "heading": "Scene heading here",
      "bulletPoints": ["First point", "Second point"],
      "voiceoverText": "The voiceover script for this scene."
    }
  ]
}`, model.ToneInstructions(tone))
}

func buildSummariseUserPrompt(text string, min, max int) string {
	return fmt.Sprintf(`Create %d to %d scenes from this newsletter content. Remember to output ONLY the JSON, nothing else:

%s`, min, max, text)
}

// parseScenes parses the backend reply as JSON. If direct parsing fails it
// extracts the first brace-delimited substring and retries.
func parseScenes(reply string) ([]model.Scene, error) {
	var result struct {
		Scenes []model.Scene `json:"scenes"`
	}

	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		extracted := extractJSON(reply)
		if extracted == reply {
			return nil, &ParseError{Message: "failed to parse summarisation reply as JSON"}
		}
		if err := json.Unmarshal([]byte(extracted), &result); err != nil {
			return nil, &ParseError{Message: "failed to parse summarisation reply as JSON"}
		}
	}

	if len(result.Scenes) == 0 {
		return nil, &ParseError{Message: "no scenes in summarisation reply"}
	}

	return result.Scenes, nil
}

// extractJSON returns the substring between the first { and the last }.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")

	if start != -1 && end != -1 && end > start {
		return s[start : end+1]
	}
	return s
}
