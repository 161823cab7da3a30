// Package messaging fans component changes out to connected canvas previews.
package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
	"github.com/gorilla/websocket"
)

const (
	EventComponentUpdated = "component.updated"
	EventComponentDeleted = "component.deleted"
)

// CanvasEvent is the JSON frame pushed to canvas clients.
type CanvasEvent struct {
	Event       string               `json:"event"`
	ComponentID string               `json:"componentId"`
	PageID      string               `json:"pageId,omitempty"`
	Component   *component.Component `json:"component,omitempty"`
	Buckets     []string             `json:"buckets,omitempty"`
	At          time.Time            `json:"at"`
}

// CanvasClient is a single connected canvas preview. An empty PageID
// subscribes to every page.
type CanvasClient struct {
	Conn   *websocket.Conn
	PageID string
	Send   chan []byte
}

// NewCanvasClient wraps conn with a send buffer sized from config.
func NewCanvasClient(conn *websocket.Conn, pageID string) *CanvasClient {
	return &CanvasClient{
		Conn:   conn,
		PageID: pageID,
		Send:   make(chan []byte, config.CanvasSendBuffer),
	}
}

func (c *CanvasClient) wants(pageID string) bool {
	return c.PageID == "" || pageID == "" || c.PageID == pageID
}

type outbound struct {
	pageID  string
	message []byte
}

// CanvasHub manages connected canvas clients and broadcasts component events.
type CanvasHub struct {
	clients    map[*CanvasClient]bool
	register   chan *CanvasClient
	unregister chan *CanvasClient
	broadcast  chan outbound
	done       chan struct{}
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewCanvasHub creates a hub. Run must be started before clients register.
func NewCanvasHub(logger *logging.ChanneledLogger) *CanvasHub {
	return &CanvasHub{
		clients:    make(map[*CanvasClient]bool),
		register:   make(chan *CanvasClient),
		unregister: make(chan *CanvasClient),
		broadcast:  make(chan outbound, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the hub's main loop. It closes every client's Send channel when ctx
// is cancelled.
func (h *CanvasHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Realtime().Info("Canvas client registered", "pageId", client.PageID, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Realtime().Info("Canvas client unregistered", "pageId", client.PageID, "clients", count)

		case out := <-h.broadcast:
			h.fanOut(out)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Realtime().Info("Canvas hub stopped")
			return
		}
	}
}

func (h *CanvasHub) fanOut(out outbound) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	dropped := 0
	for client := range h.clients {
		if !client.wants(out.pageID) {
			continue
		}
		select {
		case client.Send <- out.message:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Realtime().Warn("Canvas clients too slow, frames dropped", "dropped", dropped)
	}
}

// Register queues a client for registration. It reports false once the hub
// has stopped.
func (h *CanvasHub) Register(client *CanvasClient) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister queues a client for unregistration.
func (h *CanvasHub) Unregister(client *CanvasClient) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of registered clients.
func (h *CanvasHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ComponentUpdated broadcasts the stored state of c after a patch.
func (h *CanvasHub) ComponentUpdated(c *component.Component, patch component.Patch) {
	h.publish(CanvasEvent{
		Event:       EventComponentUpdated,
		ComponentID: c.ID,
		PageID:      c.PageID,
		Component:   c,
		Buckets:     patch.Buckets(),
		At:          time.Now().UTC(),
	})
}

// ComponentDeleted broadcasts the removal of a component.
func (h *CanvasHub) ComponentDeleted(id, pageID string) {
	h.publish(CanvasEvent{
		Event:       EventComponentDeleted,
		ComponentID: id,
		PageID:      pageID,
		At:          time.Now().UTC(),
	})
}

func (h *CanvasHub) publish(event CanvasEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.LogError(logging.ChannelRealtime, "canvas_publish", err, map[string]any{"componentId": event.ComponentID})
		return
	}
	select {
	case h.broadcast <- outbound{pageID: event.PageID, message: message}:
	default:
		h.logger.Realtime().Warn("Canvas broadcast queue full, event dropped", "event", event.Event, "componentId", event.ComponentID)
	}
}

// WritePump drains client.Send to the socket and keeps the connection alive
// with pings. It returns when Send is closed or a write fails.
func (h *CanvasHub) WritePump(client *CanvasClient) {
	ticker := time.NewTicker(config.CanvasPingInterval)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(config.CanvasWriteTimeout))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Realtime().Debug("Canvas write failed", "error", err)
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(config.CanvasWriteTimeout))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump consumes client frames until the connection closes, then
// unregisters the client. Canvas clients only send pongs and close frames.
func (h *CanvasHub) ReadPump(client *CanvasClient) {
	defer h.Unregister(client)

	pongWait := config.CanvasPingInterval * 2
	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Realtime().Warn("Canvas connection closed unexpectedly", "error", err)
			}
			return
		}
	}
}
