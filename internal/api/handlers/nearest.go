package handlers

import (
	"fmt"
	"net/http"

	"gazetteer-service/internal/api/dto"
	"gazetteer-service/internal/services"
)

const (
	defaultNearestK = 5
	maxNearestK     = 100
)

// NearestHandler answers nearest-neighbour queries, through the cache when one is configured.
type NearestHandler struct {
	Finder *services.NearestFinder
}

func (h *NearestHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	lat, err := queryFloat(r, "lat")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lng, err := queryFloat(r, "lng")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	k, err := queryIntDefault(r, "k", defaultNearestK)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if k > maxNearestK {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("k must be at most %d", maxNearestK))
		return
	}

	res, err := h.Finder.Find(r.Context(), lat, lng, k)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewNearestResponse(lat, lng, k, res))
}
