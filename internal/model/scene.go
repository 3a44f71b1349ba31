package model

// Scene is one segment of the output reel: a heading, a few bullet points
// and the text spoken over it. Scenes are produced by the summarisation
// relay and passed to the render relay unmodified.
type Scene struct {
	ID            int      `json:"id" validate:"required,min=1"`
	Heading       string   `json:"heading" validate:"required"`
	BulletPoints  []string `json:"bulletPoints" validate:"required,min=1,dive,min=1"`
	VoiceoverText string   `json:"voiceoverText" validate:"required"`
}

// SummariseRequest is the body of POST /api/summarise.
type SummariseRequest struct {
	NewsletterText string        `json:"newsletterText" validate:"required"`
	SummaryLength  SummaryLength `json:"summaryLength" validate:"required,oneof=short medium long"`
	Tone           string        `json:"tone" validate:"omitempty,max=100"`
}

// SummariseResponse is the reply of POST /api/summarise.
type SummariseResponse struct {
	Scenes []Scene `json:"scenes"`
}
