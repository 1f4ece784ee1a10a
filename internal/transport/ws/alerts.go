// Package ws exposes the low-stock alert feed over WebSocket. Each
// connection gets its own broker subscription; slow consumers miss
// messages instead of blocking the sale pipeline.
package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/calegria/bookstore-backend/internal/config"
	"github.com/calegria/bookstore-backend/internal/notify"
)

// subscriber is the receive side of the notification broker.
type subscriber interface {
	Subscribe(topic string) (<-chan string, func())
}

// AlertsHandler upgrades connections and streams low-stock alerts.
type AlertsHandler struct {
	log      *slog.Logger
	broker   subscriber
	cfg      config.NotifyConfig
	upgrader websocket.Upgrader
}

// NewAlertsHandler creates an AlertsHandler. Allowed origins follow the
// CORS configuration; "*" admits any origin.
func NewAlertsHandler(logger *slog.Logger, broker subscriber, cfg config.NotifyConfig, cors config.CORSConfig) *AlertsHandler {
	origins := strings.Split(cors.AllowedOrigins, ",")

	return &AlertsHandler{
		log:    logger.With("handler", "ws.alerts"),
		broker: broker,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, a := range origins {
					a = strings.TrimSpace(a)
					if a == "*" || a == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

func (h *AlertsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	msgs, cancel := h.broker.Subscribe(notify.TopicLowStock)
	defer cancel()

	h.log.Info("alert subscriber connected", "remote", r.RemoteAddr)

	// Read pump: the client never sends data, but reading is required to
	// process control frames and notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				h.writeClose(conn, websocket.CloseGoingAway)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				h.log.Debug("alert write failed", "remote", r.RemoteAddr, "error", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			h.log.Info("alert subscriber disconnected", "remote", r.RemoteAddr)
			return
		}
	}
}

func (h *AlertsHandler) writeClose(conn *websocket.Conn, code int) {
	deadline := time.Now().Add(h.cfg.WriteTimeout)
	conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
		websocket.FormatCloseMessage(code, ""), deadline)
}
