package handler

import (
	"net/http"

	"hotelres/internal/inventory"
	httputil "hotelres/pkg/http"
	"hotelres/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Inventory string `json:"inventory,omitempty"`
	Rooms     int    `json:"rooms,omitempty"`
}

type HealthHandler struct {
	inventory *inventory.Inventory
	log       *logger.Logger
}

func NewHealthHandler(inv *inventory.Inventory, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		inventory: inv,
		log:       log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.inventory == nil || h.inventory.Len() == 0 {
		h.log.Error("Readiness check failed: room inventory is empty", "path", r.URL.Path)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unavailable",
			Inventory: "empty",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Inventory: "ok",
		Rooms:     h.inventory.Len(),
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
