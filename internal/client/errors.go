package client

import "fmt"

// UpstreamStatusError is returned when a remote backend answers with a
// non-success HTTP status. It carries the backend status and raw body so
// relays can surface them to callers.
type UpstreamStatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.Status, e.Body)
}
