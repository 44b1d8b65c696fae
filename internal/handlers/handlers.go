package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/XavierBriggs/gridiron/internal/cache"
	"github.com/XavierBriggs/gridiron/internal/history"
	"github.com/XavierBriggs/gridiron/internal/hub"
	"github.com/XavierBriggs/gridiron/internal/league"
	"github.com/XavierBriggs/gridiron/internal/publisher"
	"github.com/XavierBriggs/gridiron/internal/season"
	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	registry   *league.Registry
	engine     *sim.Engine
	controller *season.Controller
	collab     contracts.Collaborators

	cache     *cache.RedisWriter
	publisher *publisher.StreamPublisher
	history   *history.Store // nil when persistence is disabled
	hub       *hub.Hub
}

// NewHandler creates a new handler with dependencies
func NewHandler(
	registry *league.Registry,
	engine *sim.Engine,
	controller *season.Controller,
	collab contracts.Collaborators,
	cacheWriter *cache.RedisWriter,
	streamPublisher *publisher.StreamPublisher,
	historyStore *history.Store,
	h *hub.Hub,
) *Handler {
	return &Handler{
		registry:   registry,
		engine:     engine,
		controller: controller,
		collab:     collab.WithDefaults(),
		cache:      cacheWriter,
		publisher:  streamPublisher,
		history:    historyStore,
		hub:        h,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "gridiron-sim",
		"leagues":   len(h.registry.IDs()),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[handlers] encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("[handlers] %s: %v", message, err)
	}
	respondJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
