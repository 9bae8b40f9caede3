package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub keeps the per-channel registry of live connections. Each channel entry
// has its own lock, so attach/detach/broadcast on one channel never serializes
// traffic on another; the outer lock only guards the map itself.
type Hub struct {
	mu       sync.RWMutex
	channels map[uuid.UUID]*channelEntry
}

// channelEntry holds a channel's subscribers in registration order.
type channelEntry struct {
	mu    sync.Mutex
	conns []*Conn
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[uuid.UUID]*channelEntry),
	}
}

// Attach registers the connection under the channel, creating the entry if
// this is the channel's first listener. The map lock is held across the append
// so a concurrent Detach cannot drop the entry between lookup and insert.
func (h *Hub) Attach(c *Conn, channelID uuid.UUID) {
	h.mu.Lock()
	entry, ok := h.channels[channelID]
	if !ok {
		entry = &channelEntry{}
		h.channels[channelID] = entry
	}
	entry.mu.Lock()
	entry.conns = append(entry.conns, c)
	n := len(entry.conns)
	entry.mu.Unlock()
	h.mu.Unlock()

	log.Printf("ws hub: connection attached to channel %s (%d listening)", channelID, n)
}

// Detach removes the connection from the channel's entry; the entry itself is
// dropped once empty so the map only holds active channels.
func (h *Hub) Detach(c *Conn, channelID uuid.UUID) {
	h.mu.Lock()
	entry, ok := h.channels[channelID]
	if !ok {
		h.mu.Unlock()
		return
	}

	entry.mu.Lock()
	for i, conn := range entry.conns {
		if conn == c {
			entry.conns = append(entry.conns[:i], entry.conns[i+1:]...)
			break
		}
	}
	empty := len(entry.conns) == 0
	entry.mu.Unlock()

	if empty {
		delete(h.channels, channelID)
	}
	h.mu.Unlock()

	log.Printf("ws hub: connection detached from channel %s", channelID)
}

// Broadcast delivers a serialized copy of the event to every connection
// attached to the channel at call time, in registration order. A slow
// connection just misses the event; it never blocks the others or the caller.
func (h *Hub) Broadcast(event *Event, channelID uuid.UUID) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	entry, ok := h.channels[channelID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	entry.mu.Lock()
	targets := make([]*Conn, len(entry.conns))
	copy(targets, entry.conns)
	entry.mu.Unlock()

	for _, c := range targets {
		select {
		case c.send <- data:
		default:
			// Buffer full: drop for this connection rather than stall the rest.
		}
	}
}

// ListenerCount reports how many connections are attached to a channel.
func (h *Hub) ListenerCount(channelID uuid.UUID) int {
	h.mu.RLock()
	entry, ok := h.channels[channelID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return len(entry.conns)
}
