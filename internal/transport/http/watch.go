package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/othello/internal/domain"
	"github.com/iamasit07/othello/internal/transport/websocket"
)

type WatchHandler struct {
	Game        websocket.StateSource
	ConnManager *websocket.ConnectionManager
}

func NewWatchHandler(src websocket.StateSource, cm *websocket.ConnectionManager) *WatchHandler {
	return &WatchHandler{Game: src, ConnManager: cm}
}

type stateResponse struct {
	GameID     string   `json:"gameId"`
	Size       int      `json:"size"`
	Rows       []string `json:"rows"`
	Black      int      `json:"black"`
	White      int      `json:"white"`
	Turn       string   `json:"turn"`
	Status     string   `json:"status"`
	Frozen     []string `json:"frozen"`
	Spectators int      `json:"spectators"`
	Opponent   string   `json:"opponent"`
	Difficulty string   `json:"difficulty,omitempty"`
	Tick       uint64   `json:"tick"`
}

// GetState returns the board being played, one string per row
func (h *WatchHandler) GetState(c *gin.Context) {
	s, err := h.Game.Snapshot()
	if errors.Is(err, domain.ErrGameNotStarted) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := make([]string, 0, s.Size)
	for y := 0; y < s.Size && (y+1)*s.Size <= len(s.Board); y++ {
		rows = append(rows, s.Board[y*s.Size:(y+1)*s.Size])
	}
	frozen := make([]string, 0, len(s.Frozen))
	for _, f := range s.Frozen {
		frozen = append(frozen, f.String())
	}

	c.JSON(http.StatusOK, stateResponse{
		GameID:     s.GameID,
		Size:       s.Size,
		Rows:       rows,
		Black:      s.Black,
		White:      s.White,
		Turn:       s.Turn,
		Status:     string(s.Status),
		Frozen:     frozen,
		Spectators: h.ConnManager.Count(),
		Opponent:   s.Opponent,
		Difficulty: string(s.Difficulty),
		Tick:       s.Tick,
	})
}
