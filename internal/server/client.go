package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendQueueSize  = 64
)

// Envelope frames every websocket message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outEnvelope is the outbound frame before marshaling.
type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// client is one websocket session. Outbound events go through the send
// channel so room broadcasts never block on a slow socket; the write
// pump preserves per-socket order.
type client struct {
	id   string
	srv  *Server
	conn *websocket.Conn
	send chan outEnvelope

	mu   sync.Mutex
	room string // joined room id, empty before join
	user string
}

// Send queues one event for the client. A full queue means the consumer
// stopped draining; the connection is closed rather than stalling the
// room.
func (c *client) Send(event string, data any) {
	select {
	case c.send <- outEnvelope{Event: event, Data: data}:
	default:
		log.Warningf("session %s: send queue full, dropping connection", c.id)
		c.conn.Close()
	}
}

func (c *client) roomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *client) username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *client) setRoom(room, user string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room, c.user = room, user
}

// readPump owns the socket's read side and drives the event dispatch.
// It exits on any read error and tears the session down: the session
// layer is told about the disconnect before the send channel closes, so
// no broadcast can race the close.
func (c *client) readPump() {
	defer c.drop()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf("session %s: read: %v", c.id, err)
			}
			return
		}
		c.srv.dispatch(c, msg)
	}
}

func (c *client) drop() {
	c.conn.Close()
	if room := c.roomID(); room != "" {
		c.srv.sessions.Disconnect(room, c.id)
	}
	close(c.send)
	log.Infof("session %s disconnected", c.id)
}

// writePump owns the socket's write side: queued events in order, plus
// the keepalive pings that hold the read deadline open on the peer.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case env, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
