// Package orchestrator sequences the summarise, generate-video and poll
// steps against a running API server: a linear state flag, a
// fixed-interval poll and no retries.
package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/reelsmith/api/internal/model"
)

// State is the orchestrator's linear status flag.
type State string

const (
	StateIdle        State = "idle"
	StateSummarising State = "summarising"
	StateGenerating  State = "generating"
	StateRendering   State = "rendering"
	StateCompleted   State = "completed"
	StateError       State = "error"
)

// DefaultPollInterval is the fixed status poll period.
const DefaultPollInterval = 3 * time.Second

// API is the slice of the server surface the orchestrator drives.
type API interface {
	Summarise(ctx context.Context, req *model.SummariseRequest) (*model.SummariseResponse, error)
	GenerateVideo(ctx context.Context, req *model.GenerateVideoRequest) (*model.GenerateVideoResponse, error)
	Status(ctx context.Context, renderID string) (*model.StatusResponse, error)
}

// Input is one pipeline run's form data.
type Input struct {
	NewsletterText  string
	SummaryLength   model.SummaryLength
	Tone            string
	Title           string
	VoiceID         string
	Background      *model.BackgroundMedia
	BackgroundMusic *model.BackgroundMusicConfig
}

// Orchestrator runs the pipeline and exposes its observable state. One
// run at a time; Reset returns it to idle.
type Orchestrator struct {
	api          API
	pollInterval time.Duration
	onTransition func(State)

	mu       sync.Mutex
	state    State
	scenes   []model.Scene
	renderID string
	videoURL string
	errMsg   string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPollInterval overrides the status poll period.
func WithPollInterval(d time.Duration) Option {
	return func(o *Orchestrator) { o.pollInterval = d }
}

// WithTransitionHook registers a callback invoked on every state change.
func WithTransitionHook(fn func(State)) Option {
	return func(o *Orchestrator) { o.onTransition = fn }
}

// New creates an orchestrator in the idle state.
func New(api API, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api:          api,
		pollInterval: DefaultPollInterval,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the pipeline to completion and returns the result video
// URL. Polling continues until a terminal status, with no backoff and no
// attempt cap; cancelling ctx is the only way to bound it. The poll timer
// is stopped on every exit path.
func (o *Orchestrator) Run(ctx context.Context, input Input) (string, error) {
	if strings.TrimSpace(input.NewsletterText) == "" {
		err := &PipelineError{Stage: StateIdle, Message: "Please enter newsletter content"}
		o.fail(err.Message)
		return "", err
	}

	// Summarise
	o.transition(StateSummarising)
	summary, err := o.api.Summarise(ctx, &model.SummariseRequest{
		NewsletterText: input.NewsletterText,
		SummaryLength:  input.SummaryLength,
		Tone:           input.Tone,
	})
	if err != nil {
		o.fail(err.Error())
		return "", &PipelineError{Stage: StateSummarising, Message: err.Error()}
	}
	o.setScenes(summary.Scenes)

	// Request render
	o.transition(StateGenerating)
	render, err := o.api.GenerateVideo(ctx, &model.GenerateVideoRequest{
		Scenes:          summary.Scenes,
		Background:      input.Background,
		BackgroundMusic: input.BackgroundMusic,
		Title:           input.Title,
		VoiceID:         input.VoiceID,
	})
	if err != nil {
		o.fail(err.Error())
		return "", &PipelineError{Stage: StateGenerating, Message: err.Error()}
	}
	o.setRenderID(render.RenderID)

	if render.Status == model.RenderStatusSucceeded && render.URL != "" {
		o.complete(render.URL)
		return render.URL, nil
	}
	if render.Status == model.RenderStatusFailed {
		o.fail("Video rendering failed")
		return "", &PipelineError{Stage: StateGenerating, Message: "Video rendering failed"}
	}

	// Poll
	o.transition(StateRendering)
	return o.poll(ctx, render.RenderID)
}

func (o *Orchestrator) poll(ctx context.Context, renderID string) (string, error) {
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.fail(ctx.Err().Error())
			return "", &PipelineError{Stage: StateRendering, Message: ctx.Err().Error()}

		case <-ticker.C:
			status, err := o.api.Status(ctx, renderID)
			if err != nil {
				// A poll error is not terminal; the next tick retries.
				continue
			}

			switch status.Status {
			case model.RenderStatusSucceeded:
				if status.URL == "" {
					continue
				}
				o.complete(status.URL)
				return status.URL, nil

			case model.RenderStatusFailed:
				msg := status.Error
				if msg == "" {
					msg = "Video rendering failed"
				}
				o.fail(msg)
				return "", &PipelineError{Stage: StateRendering, Message: msg}
			}
			// Any other status: keep polling.
		}
	}
}

// Reset returns the orchestrator to idle, clearing all run state.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.state = StateIdle
	o.scenes = nil
	o.renderID = ""
	o.videoURL = ""
	o.errMsg = ""
	o.mu.Unlock()
	o.notify(StateIdle)
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Scenes returns the scene list from the last summarise step.
func (o *Orchestrator) Scenes() []model.Scene {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scenes
}

// RenderID returns the render job identifier of the current run.
func (o *Orchestrator) RenderID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.renderID
}

// VideoURL returns the result URL after a completed run.
func (o *Orchestrator) VideoURL() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.videoURL
}

// ErrMessage returns the visible error message after a failed run.
func (o *Orchestrator) ErrMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

func (o *Orchestrator) transition(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	o.notify(s)
}

func (o *Orchestrator) setScenes(scenes []model.Scene) {
	o.mu.Lock()
	o.scenes = scenes
	o.mu.Unlock()
}

func (o *Orchestrator) setRenderID(id string) {
	o.mu.Lock()
	o.renderID = id
	o.mu.Unlock()
}

func (o *Orchestrator) complete(url string) {
	o.mu.Lock()
	o.state = StateCompleted
	o.videoURL = url
	o.mu.Unlock()
	o.notify(StateCompleted)
}

func (o *Orchestrator) fail(msg string) {
	o.mu.Lock()
	o.state = StateError
	o.errMsg = msg
	o.mu.Unlock()
	o.notify(StateError)
}

func (o *Orchestrator) notify(s State) {
	if o.onTransition != nil {
		o.onTransition(s)
	}
}

// PipelineError reports which stage a run failed in.
type PipelineError struct {
	Stage   State
	Message string
}

func (e *PipelineError) Error() string {
	return string(e.Stage) + ": " + e.Message
}
