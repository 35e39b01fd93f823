package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/quintet-io/matchforge/pkg/domain/common"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
)

// pollInterval mirrors the tick cadence closely enough that a delivered
// match is seen within roughly one tick of being formed.
const pollInterval = 200 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamController serves a single-consumer polling stream per player,
// distinct from a pub/sub broadcast hub: one connection drains exactly one
// player's delivery outbox and closes once it has a match.
type StreamController struct {
	queries in.QueueQueryHandler
}

func NewStreamController(queries in.QueueQueryHandler) *StreamController {
	return &StreamController{queries: queries}
}

// Stream handles GET /queue/{player_id}/stream, upgrading to a WebSocket
// and polling the player's delivery buffer until a match arrives or the
// client disconnects.
func (c *StreamController) Stream(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["player_id"]

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "websocket upgrade failed", "error", err, "player_id", playerID, "request_id", common.RequestIDFromContext(r.Context()))
		return
	}
	defer conn.Close()

	// The client never sends frames; a read error means it disconnected.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := r.Context()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-disconnected:
			return
		case <-ticker.C:
			matches := c.queries.Drain(ctx, playerID)
			if len(matches) == 0 {
				continue
			}

			for _, m := range matches {
				if err := conn.WriteJSON(m); err != nil {
					slog.WarnContext(ctx, "websocket write failed, closing stream", "error", err, "player_id", playerID, "request_id", common.RequestIDFromContext(ctx))
					return
				}
			}
			return
		}
	}
}
