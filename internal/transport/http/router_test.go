package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/othello/internal/domain"
	"github.com/iamasit07/othello/internal/service/game"
	"github.com/iamasit07/othello/internal/transport/websocket"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	state *game.State
}

func (f *fakeSource) Snapshot() (game.State, error) {
	if f.state == nil {
		return game.State{}, domain.ErrGameNotStarted
	}
	return *f.state, nil
}

func serve(t *testing.T, router *gin.Engine, method, path, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	src := &fakeSource{}
	router := NewRouter(src, websocket.NewConnectionManager(), nil)

	t.Run("health", func(t *testing.T) {
		w := serve(t, router, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no game yet", func(t *testing.T) {
		w := serve(t, router, http.MethodGet, "/api/state", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("state rows", func(t *testing.T) {
		src.state = &game.State{
			GameID: "abc",
			Size:   6,
			Board:  "000000" + "000000" + "00WB00" + "00BK00" + "000000" + "000000",
			Black:  3,
			White:  1,
			Turn:   "[player 1] [BLACK]",
			Status: domain.StatusAwaitingMove,
			Frozen: []domain.Coord{{X: 3, Y: 3}},
		}
		w := serve(t, router, http.MethodGet, "/api/state", "http://anywhere")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "http://anywhere", w.Header().Get("Access-Control-Allow-Origin"))

		var body stateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "abc", body.GameID)
		require.Len(t, body.Rows, 6)
		require.Equal(t, "00BK00", body.Rows[3])
		require.Equal(t, []string{"d4"}, body.Frozen)
		require.Equal(t, 0, body.Spectators)
	})
}

func TestRouterOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(&fakeSource{}, websocket.NewConnectionManager(), []string{"http://localhost:5173"})

	w := serve(t, router, http.MethodGet, "/healthz", "http://evil.example")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, router, http.MethodOptions, "/api/state", "http://localhost:5173")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
