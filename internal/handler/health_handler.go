package handler

import (
	"net/http"

	"github.com/sadieom/BiblioMatch/internal/service"
)

type HealthHandler struct {
	store service.Snapshotter
}

func NewHealthHandler(store service.Snapshotter) *HealthHandler {
	return &HealthHandler{store: store}
}

// @Summary Healthcheck
// @Description status ok siempre que el proceso responda; modelLoaded indica si ya hay modelo en memoria
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok", "modelLoaded": false}
	if m := h.store.Current(); m != nil {
		resp["modelLoaded"] = true
		resp["modelVersion"] = m.Version
		resp["titles"] = m.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}
