package ws

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Conn is one live listener, attached to exactly one channel for its whole
// lifetime.
type Conn struct {
	hub       *Hub
	sock      *websocket.Conn
	channelID uuid.UUID
	userID    uuid.UUID

	send chan []byte
	done chan struct{}
}

func NewConn(hub *Hub, sock *websocket.Conn, channelID, userID uuid.UUID) *Conn {
	return &Conn{
		hub:       hub,
		sock:      sock,
		channelID: channelID,
		userID:    userID,
		send:      make(chan []byte, sendBufSize),
		done:      make(chan struct{}),
	}
}

// ReadPump consumes inbound frames until the transport drops. Whatever the
// client sends is re-emitted to the channel as an opaque echo event; writes go
// through the REST surface, never through here. Detach runs unconditionally on
// the way out so the registry cannot leak connections.
func (c *Conn) ReadPump() {
	defer func() {
		c.hub.Detach(c, c.channelID)
		close(c.done)
		c.sock.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, data, err := c.sock.Read(context.Background())
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("ws: connection to channel %s closed", c.channelID)
			} else {
				log.Printf("ws: read error on channel %s: %v", c.channelID, err)
			}
			return
		}

		evt, err := NewEvent(EventTypeEcho, &c.channelID, EchoPayload{Data: string(data)})
		if err != nil {
			continue
		}
		c.hub.Broadcast(evt, c.channelID)
	}
}

// WritePump drains the send buffer onto the socket and keeps the connection
// alive with pings.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.sock.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message := <-c.send:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.sock.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("ws: write error on channel %s: %v", c.channelID, err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.sock.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("ws: ping error on channel %s: %v", c.channelID, err)
				return
			}

		case <-c.done:
			return
		}
	}
}
