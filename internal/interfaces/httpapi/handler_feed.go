package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// StreamMatchFeed upgrades to a websocket and forwards the match's change
// events as JSON text frames until the client goes away or the feed closes.
// The match must exist before the upgrade so lookup failures still get the
// JSON error envelope.
func (h *Handler) StreamMatchFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.StreamMatchFeed")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	log := h.log(ctx).With("match_id", matchID)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub, err := h.matchService.Subscribe(ctx, matchID)
	if err != nil {
		log.WarnContext(ctx, "subscribe match feed failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.WarnContext(ctx, "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// The reader only drains control frames; a read error means the peer left.
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	delivered := 0
	log.DebugContext(ctx, "match feed opened")
	defer func() { log.DebugContext(ctx, "match feed closed", "delivered", delivered) }()

	for {
		select {
		case <-ctx.Done():
			writeClose(conn, websocket.CloseGoingAway, "")
			return
		case event, ok := <-sub.Events():
			if !ok {
				writeClose(conn, websocket.CloseNormalClosure, "feed closed")
				return
			}
			payload, err := sonic.Marshal(event)
			if err != nil {
				log.ErrorContext(ctx, "encode match event failed", "event_type", event.Type, "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.DebugContext(ctx, "match feed write failed", "error", err)
				return
			}
			delivered++
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(feedWriteWait))
}
