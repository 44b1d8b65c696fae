// Package hub fans simulation output out to connected websocket spectators.
package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Message is one outbound broadcast frame
type Message struct {
	Type     string          `json:"type"` // "week_result", "news"
	LeagueID string          `json:"league_id"`
	Payload  json.RawMessage `json:"payload"`
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	log.Println("[hub] started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.clientsMu.Unlock()
			log.Printf("[hub] client %s connected (total: %d)", c.ID, n)

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			n := len(h.clients)
			h.clientsMu.Unlock()
			log.Printf("[hub] client %s disconnected (total: %d)", c.ID, n)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast queues a message for all connected clients. Drops when the
// buffer is full: spectators are best effort.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		log.Println("[hub] broadcast buffer full, dropping message")
	}
}

// BroadcastJSON marshals a payload and broadcasts it
func (h *Hub) BroadcastJSON(msgType, leagueID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[hub] marshaling broadcast payload: %v", err)
		return
	}
	h.Broadcast(Message{Type: msgType, LeagueID: leagueID, Payload: data})
}

func (h *Hub) broadcastMessage(msg Message) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			// slow client: skip rather than block the hub
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
	log.Println("[hub] shut down")
}
