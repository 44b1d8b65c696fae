package handlers

import (
	"log"
	"net/http"

	"github.com/XavierBriggs/gridiron/internal/hub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// spectators connect from the game client; origin checks are its problem
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades a spectator connection and attaches it to the hub
// GET /ws
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "broadcasting disabled", nil)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[handlers] websocket upgrade failed: %v", err)
		return
	}

	client := hub.NewClient(uuid.NewString(), conn, h.hub)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
