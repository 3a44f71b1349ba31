package model

// SummaryLength controls how many scenes the summariser asks for.
type SummaryLength string

const (
	SummaryShort  SummaryLength = "short"
	SummaryMedium SummaryLength = "medium"
	SummaryLong   SummaryLength = "long"
)

var ValidSummaryLengths = []SummaryLength{SummaryShort, SummaryMedium, SummaryLong}

// SceneCountBounds returns the scene count range requested from the
// summarisation backend for a given length category.
func (l SummaryLength) SceneCountBounds() (min, max int) {
	switch l {
	case SummaryShort:
		return 3, 3
	case SummaryMedium:
		return 4, 5
	case SummaryLong:
		return 5, 6
	}
	return 3, 6
}

// Scene count bounds enforced on every render request regardless of the
// requested length category.
const (
	MinScenes = 3
	MaxScenes = 6
)

// RenderStatus is the normalized projection of the rendering backend's
// status enum.
type RenderStatus string

const (
	RenderStatusPlanned   RenderStatus = "planned"
	RenderStatusRendering RenderStatus = "rendering"
	RenderStatusSucceeded RenderStatus = "succeeded"
	RenderStatusFailed    RenderStatus = "failed"
)

// IsTerminal reports whether the status can no longer change.
func (s RenderStatus) IsTerminal() bool {
	return s == RenderStatusSucceeded || s == RenderStatusFailed
}

// NormalizeRenderStatus maps an upstream status string onto the known enum.
// Unknown values project to "rendering" so callers keep polling.
func NormalizeRenderStatus(s string) RenderStatus {
	switch RenderStatus(s) {
	case RenderStatusPlanned, RenderStatusRendering, RenderStatusSucceeded, RenderStatusFailed:
		return RenderStatus(s)
	}
	return RenderStatusRendering
}

// MediaType classifies an uploaded asset.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
)
