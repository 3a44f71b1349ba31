package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/reelsmith/api/internal/model"
)

// StatusLookup performs one fresh status read against the rendering
// backend. Each watcher tick is an independent lookup; nothing is cached.
type StatusLookup func(ctx context.Context, renderID string) (*model.StatusResponse, error)

// Client represents a WebSocket client subscribed to one render job.
type Client struct {
	RenderID string
	Conn     *websocket.Conn
	Send     chan []byte
}

// Hub maintains active WebSocket connections grouped by render ID and one
// status watcher per watched render.
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	lookup   StatusLookup
	interval time.Duration
	watching map[string]bool

	mu sync.RWMutex
}

// BroadcastMessage represents a message to broadcast to one render's
// subscribers.
type BroadcastMessage struct {
	RenderID string
	Message  []byte
}

// NewHub creates a new Hub. interval is the watcher poll period.
func NewHub(lookup StatusLookup, interval time.Duration) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage, 256),
		lookup:     lookup,
		interval:   interval,
		watching:   make(map[string]bool),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.RenderID] == nil {
				h.clients[client.RenderID] = make(map[*Client]bool)
			}
			h.clients[client.RenderID][client] = true
			startWatcher := !h.watching[client.RenderID]
			if startWatcher {
				h.watching[client.RenderID] = true
			}
			h.mu.Unlock()
			if startWatcher {
				go h.watchRender(client.RenderID)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.RenderID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.RenderID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			// Full lock: dropping a slow subscriber mutates the map,
			// which watcher goroutines read concurrently.
			h.mu.Lock()
			if clients, ok := h.clients[msg.RenderID]; ok {
				for client := range clients {
					select {
					case client.Send <- msg.Message:
					default:
						close(client.Send)
						delete(clients, client)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// watchRender polls the rendering backend until the job reaches a terminal
// status or the last subscriber leaves.
func (h *Hub) watchRender(renderID string) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if h.releaseWatchIfIdle(renderID) {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), h.interval)
		status, err := h.lookup(ctx, renderID)
		cancel()

		if err != nil {
			// A failed lookup does not end the watch; the next tick
			// retries with a fresh request.
			h.broadcastError(renderID, err.Error())
		} else {
			h.broadcastStatus(status)
			if status.Status.IsTerminal() {
				h.releaseWatch(renderID)
				return
			}
		}

		<-ticker.C
	}
}

// releaseWatchIfIdle ends the watch when the render has no subscribers
// left. The watching flag is cleared under the same lock as the subscriber
// check, so a registration arriving after the check finds the flag cleared
// and starts a fresh watcher rather than joining a dying one.
func (h *Hub) releaseWatchIfIdle(renderID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients[renderID]) > 0 {
		return false
	}
	delete(h.watching, renderID)
	return true
}

func (h *Hub) releaseWatch(renderID string) {
	h.mu.Lock()
	delete(h.watching, renderID)
	h.mu.Unlock()
}

func (h *Hub) broadcastStatus(status *model.StatusResponse) {
	msg := model.WSStatusMessage{
		Type:     model.WSMessageTypeStatus,
		RenderID: status.RenderID,
		Status:   status.Status,
		URL:      status.URL,
		Error:    status.Error,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal status message: %v", err)
		return
	}

	h.broadcast <- &BroadcastMessage{RenderID: status.RenderID, Message: data}
}

func (h *Hub) broadcastError(renderID, message string) {
	msg := model.WSErrorMessage{
		Type:     model.WSMessageTypeError,
		RenderID: renderID,
		Message:  message,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal error message: %v", err)
		return
	}

	h.broadcast <- &BroadcastMessage{RenderID: renderID, Message: data}
}

// HandleConnection handles a WebSocket connection subscribed to one render.
func (h *Hub) HandleConnection(c *websocket.Conn, renderID string) {
	client := &Client{
		RenderID: renderID,
		Conn:     c,
		Send:     make(chan []byte, 256),
	}

	h.register <- client
	defer func() { h.unregister <- client }()

	// Writer goroutine
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case message, ok := <-client.Send:
				if !ok {
					c.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					return
				}

			case <-ticker.C:
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Reader loop
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg model.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		if msg.Type == model.WSMessageTypePing {
			pong := model.WSMessage{Type: model.WSMessageTypePong}
			data, _ := json.Marshal(pong)
			client.Send <- data
		}
	}
}
