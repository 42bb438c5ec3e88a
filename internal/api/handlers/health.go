package handlers

import (
	"net/http"

	"gazetteer-service/internal/gazetteer"
)

// HealthHandler reports liveness and the size of the serving catalog.
type HealthHandler struct {
	G *gazetteer.Gazetteer
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	res := map[string]any{"status": "ok", "settlements": h.G.Len()}
	writeJSON(w, r, http.StatusOK, res)
}
