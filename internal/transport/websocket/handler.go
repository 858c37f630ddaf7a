package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/othello/internal/domain"
	"github.com/iamasit07/othello/internal/service/game"
	"github.com/iamasit07/othello/pkg/uid"
	"github.com/rs/zerolog/log"
)

// StateSource is the read side of the game controller.
type StateSource interface {
	Snapshot() (game.State, error)
}

type clientMessage struct {
	Type string `json:"type"`
}

// Handler serves the read-only spectator feed
type Handler struct {
	ConnManager *ConnectionManager
	Game        StateSource
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, src StateSource) *Handler {
	return &Handler{
		ConnManager: cm,
		Game:        src,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "ws").Msg("upgrade failed")
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	id := uid.NewConnectionID()
	h.ConnManager.AddConnection(id, conn)
	log.Info().Str("component", "ws").Str("conn", id).Msg("spectator joined")

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.RemoveConnection(id)
		log.Info().Str("component", "ws").Str("conn", id).Msg("spectator left")
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// keep-alive pinger
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := h.ConnManager.Ping(id); err != nil {
					return
				}
			}
		}
	}()

	h.sendState(id)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("component", "ws").Str("conn", id).Msg("read error")
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.ConnManager.SendMessage(id, ServerMessage{Type: "error", Message: "invalid message"})
			continue
		}
		switch msg.Type {
		case "state":
			h.sendState(id)
		case "ping":
			h.ConnManager.SendMessage(id, ServerMessage{Type: "pong"})
		default:
			h.ConnManager.SendMessage(id, ServerMessage{Type: "error", Message: "spectators are read-only"})
		}
	}
}

// sendState sends the current board, or a waiting notice before the first game.
func (h *Handler) sendState(id string) {
	s, err := h.Game.Snapshot()
	if errors.Is(err, domain.ErrGameNotStarted) {
		h.ConnManager.SendMessage(id, ServerMessage{Type: "waiting", Message: err.Error()})
		return
	}
	if err != nil {
		h.ConnManager.SendMessage(id, ServerMessage{Type: "error", Message: err.Error()})
		return
	}
	h.ConnManager.SendMessage(id, ServerMessage{Type: "state", State: &s})
}
