package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/othello/internal/service/game"
	"github.com/rs/zerolog/log"
)

var (
	errConnectionGone = errors.New("connection closed")
	errSlowConsumer   = errors.New("spectator is not keeping up")
)

// ServerMessage is everything sent to a spectator.
type ServerMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	State   *game.State `json:"state,omitempty"`
}

// sendBuffer is how many messages may wait for a slow spectator before it
// is dropped.
const sendBuffer = 64

// client is one spectator socket. Only its writer goroutine calls WriteJSON,
// so messages reach the socket in the order they were queued.
type client struct {
	conn *websocket.Conn
	send chan ServerMessage
}

// ConnectionManager handles spectator connections thread-safely
type ConnectionManager struct {
	clients map[string]*client

	mu sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]*client),
	}
}

// AddConnection registers a new connection and starts its writer
func (cm *ConnectionManager) AddConnection(id string, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan ServerMessage, sendBuffer)}

	cm.mu.Lock()
	if old, exists := cm.clients[id]; exists {
		close(old.send)
	}
	cm.clients[id] = c
	cm.mu.Unlock()

	go cm.writePump(id, c)
}

// writePump drains the queue in order. The connection is closed once the
// queue is closed and empty, or on the first failed write.
func (cm *ConnectionManager) writePump(id string, c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteJSON(msg); err != nil {
			cm.drop(id, c)
			for range c.send {
			}
			return
		}
	}
}

// drop forgets c if it is still the connection registered under id.
func (cm *ConnectionManager) drop(id string, c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cur, exists := cm.clients[id]; exists && cur == c {
		delete(cm.clients, id)
		close(c.send)
	}
}

// RemoveConnection forgets a connection; it is closed after the messages
// already queued for it are written
func (cm *ConnectionManager) RemoveConnection(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if c, exists := cm.clients[id]; exists {
		delete(cm.clients, id)
		close(c.send)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// SendMessage queues a JSON message for one spectator
func (cm *ConnectionManager) SendMessage(id string, message ServerMessage) error {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	c, exists := cm.clients[id]
	if !exists {
		return nil // disconnected, ignore
	}
	return c.enqueue(message)
}

// enqueue never blocks; the caller holds the manager's read lock so send
// cannot be closed underneath it.
func (c *client) enqueue(message ServerMessage) error {
	select {
	case c.send <- message:
		return nil
	default:
		return errSlowConsumer
	}
}

// Ping writes a keep-alive control frame. WriteControl may run alongside
// the writer goroutine.
func (cm *ConnectionManager) Ping(id string) error {
	cm.mu.RLock()
	c, exists := cm.clients[id]
	cm.mu.RUnlock()

	if !exists {
		return errConnectionGone
	}
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
}

// BroadcastMessage queues a message for every spectator
func (cm *ConnectionManager) BroadcastMessage(message ServerMessage) {
	var slow []string

	cm.mu.RLock()
	for id, c := range cm.clients {
		if err := c.enqueue(message); err != nil {
			slow = append(slow, id)
		}
	}
	cm.mu.RUnlock()

	for _, id := range slow {
		log.Warn().Str("component", "ws").Str("conn", id).Msg("dropping slow spectator")
		cm.RemoveConnection(id)
	}
}

// OnStateChange pushes every game update to the spectators.
func (cm *ConnectionManager) OnStateChange(s game.State) {
	cm.BroadcastMessage(ServerMessage{Type: "state", State: &s})
}

// CloseAll says goodbye to every spectator and drops the connections.
func (cm *ConnectionManager) CloseAll(reason string) {
	cm.mu.RLock()
	ids := make([]string, 0, len(cm.clients))
	for id := range cm.clients {
		ids = append(ids, id)
	}
	cm.mu.RUnlock()

	// queued ahead of the close, so the goodbye is the last frame written
	for _, id := range ids {
		_ = cm.SendMessage(id, ServerMessage{Type: "closing", Message: reason})
		cm.RemoveConnection(id)
	}
}
