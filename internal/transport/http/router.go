package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/othello/internal/transport/http/middleware"
	"github.com/iamasit07/othello/internal/transport/websocket"
)

// NewRouter wires the spectator endpoints.
func NewRouter(src websocket.StateSource, cm *websocket.ConnectionManager, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	watch := NewWatchHandler(src, cm)
	wsHandler := websocket.NewHandler(cm, src)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/state", watch.GetState)
	router.GET("/ws", func(c *gin.Context) {
		wsHandler.HandleWebSocket(c.Writer, c.Request)
	})

	return router
}
