package model

// WebSocket message types
const (
	WSMessageTypeStatus = "status"
	WSMessageTypeError  = "error"
	WSMessageTypePing   = "ping"
	WSMessageTypePong   = "pong"
)

// WSMessage is the envelope for client-originated frames.
type WSMessage struct {
	Type string `json:"type"`
}

// WSStatusMessage is pushed to a render's subscribers on every watcher
// poll until the job reaches a terminal status.
type WSStatusMessage struct {
	Type     string       `json:"type"`
	RenderID string       `json:"renderId"`
	Status   RenderStatus `json:"status"`
	URL      string       `json:"url,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// WSErrorMessage is pushed when a status lookup fails.
type WSErrorMessage struct {
	Type     string `json:"type"`
	RenderID string `json:"renderId"`
	Message  string `json:"message"`
}
