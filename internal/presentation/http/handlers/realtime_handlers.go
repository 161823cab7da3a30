package handlers

import (
	"net/http"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RealtimeHandlers upgrades canvas previews to websocket subscribers
type RealtimeHandlers struct {
	hub      *messaging.CanvasHub
	upgrader websocket.Upgrader
	logger   *logging.ChanneledLogger
}

// NewRealtimeHandlers creates realtime handlers. Browser origins outside
// allowedOrigins are refused; requests without an Origin header pass.
func NewRealtimeHandlers(hub *messaging.CanvasHub, allowedOrigins []string, logger *logging.ChanneledLogger) *RealtimeHandlers {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &RealtimeHandlers{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// GetCanvasSocket handles GET /api/v1/canvas/ws?pageId=...
func (h *RealtimeHandlers) GetCanvasSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Realtime().Warn("Canvas websocket upgrade failed", "error", err.Error())
		return
	}

	client := messaging.NewCanvasClient(conn, c.Query("pageId"))
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go h.hub.WritePump(client)
	h.hub.ReadPump(client)
}
